/* ****************************************************************************
 * Copyright 2020 51 Degrees Mobile Experts Limited (51degrees.com)
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations
 * under the License.
 * ***************************************************************************/

package owid

// cspell:ignore awserr dynamodbattribute
import (
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
)

// AWSStore is a Store backed by Amazon DynamoDB. A single table holds one
// item per signer, with the key list embedded directly in the item.
type AWSStore struct {
	storeBase
	svc *dynamodb.DynamoDB
}

// NewAWSStore connects using credentials and region from the environment
// or ~/.aws, creating the signers table if it does not already exist.
func NewAWSStore() (*AWSStore, error) {
	var a AWSStore

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	if sess == nil {
		return nil, fmt.Errorf("owid: AWS session is nil")
	}
	a.svc = dynamodb.New(sess)

	if _, err := a.createSignersTable(); err != nil {
		return nil, fmt.Errorf("create signers table: %w", err)
	}

	a.mutex = &sync.Mutex{}
	if err := a.refresh(); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetSigner returns domain's signer, refreshing from DynamoDB on a miss.
func (a *AWSStore) GetSigner(domain string) (*Signer, error) {
	s, err := a.getSigner(domain)
	if err != nil {
		return nil, err
	}
	if s == nil {
		if err := a.refresh(); err != nil {
			return nil, err
		}
		s, err = a.getSigner(domain)
	}
	return s, err
}

// SetSigner writes s as a single item and updates the in-memory map.
func (a *AWSStore) SetSigner(s *Signer) error {
	av, err := dynamodbattribute.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("MarshalMap: %w", err)
	}
	_, err = a.svc.PutItem(&dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(signersTableName),
	})
	if err != nil {
		return fmt.Errorf("PutItem: %s %w", signersTableName, err)
	}
	a.mutex.Lock()
	a.signers[s.Domain] = s
	a.mutex.Unlock()
	return nil
}

func (a *AWSStore) createSignersTable() (*dynamodb.CreateTableOutput, error) {
	o, err := a.svc.CreateTable(&dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("Domain"),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("Domain"),
				KeyType:       aws.String("HASH"),
			},
		},
		BillingMode: aws.String("PAY_PER_REQUEST"),
		TableName:   aws.String(signersTableName),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case dynamodb.ErrCodeTableAlreadyExistsException,
				dynamodb.ErrCodeResourceInUseException:
				return o, nil
			}
		}
		return o, err
	}
	for {
		result, err := a.svc.DescribeTable(&dynamodb.DescribeTableInput{
			TableName: aws.String(signersTableName),
		})
		if err != nil {
			return nil, err
		}
		if *result.Table.TableStatus == "ACTIVE" {
			break
		}
	}
	return o, nil
}

func (a *AWSStore) refresh() error {
	signers, err := a.fetchSigners()
	if err != nil {
		return err
	}
	a.mutex.Lock()
	a.signers = signers
	a.mutex.Unlock()
	return nil
}

func (a *AWSStore) fetchSigners() (map[string]*Signer, error) {
	signers := make(map[string]*Signer)

	expr, err := expression.NewBuilder().Build()
	if err != nil {
		return nil, fmt.Errorf("building signers expression: %w", err)
	}
	result, err := a.svc.Scan(&dynamodb.ScanInput{
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		FilterExpression:          expr.Filter(),
		ProjectionExpression:      expr.Projection(),
		TableName:                 aws.String(signersTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("scanning signers: %w", err)
	}

	for _, i := range result.Items {
		var s Signer
		if err := dynamodbattribute.UnmarshalMap(i, &s); err != nil {
			return nil, fmt.Errorf("unmarshalling signer: %w", err)
		}
		s.sortKeys()
		signers[s.Domain] = &s
	}

	return signers, nil
}
