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

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/storage"
)

const azureTimeout = 2

// AzureStore is a Store backed by Azure Table Storage. Each signer's key
// lists are stored JSON-encoded in a single entity property, since Table
// Storage entities are flat and a signer's keys are a variable-length list.
type AzureStore struct {
	timestamp    time.Time
	signersTable *storage.Table
	storeBase
}

// NewAzureStore connects to account using accessKey, creating the signers
// table if it does not already exist.
func NewAzureStore(account, accessKey string) (*AzureStore, error) {
	var a AzureStore
	c, err := storage.NewBasicClient(account, accessKey)
	if err != nil {
		return nil, err
	}
	ts := c.GetTableService()
	a.mutex = &sync.Mutex{}
	a.signersTable = ts.GetTableReference(signersTableName)
	if err := azureCreateSignersTable(a.signersTable); err != nil {
		return nil, err
	}
	if err := a.refresh(); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetSigner returns domain's signer, refreshing from Azure on a miss.
func (a *AzureStore) GetSigner(domain string) (*Signer, error) {
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

// SetSigner upserts s as an entity and updates the in-memory map.
func (a *AzureStore) SetSigner(s *Signer) error {
	e := a.signersTable.GetEntityReference(signersTablePartitionKey, s.Domain)
	public, err := json.Marshal(s.PublicKeys)
	if err != nil {
		return err
	}
	private, err := json.Marshal(s.PrivateKeys)
	if err != nil {
		return err
	}
	e.Properties = map[string]interface{}{
		nameFieldName:        s.Name,
		emailFieldName:       s.Email,
		termsURLFieldName:    s.TermsURL,
		publicKeysFieldName:  string(public),
		privateKeysFieldName: string(private),
	}
	if err := e.InsertOrReplace(nil); err != nil {
		return err
	}
	a.mutex.Lock()
	a.signers[s.Domain] = s
	a.mutex.Unlock()
	return nil
}

func azureCreateSignersTable(t *storage.Table) error {
	err := t.Create(azureTimeout, storage.FullMetadata, nil)
	if err != nil {
		if e, ok := err.(storage.AzureStorageServiceError); ok {
			if e.Code == "TableAlreadyExists" {
				return nil
			}
		}
		return err
	}
	return nil
}

func (a *AzureStore) refresh() error {
	signers, err := a.fetchSigners()
	if err != nil {
		return err
	}
	a.mutex.Lock()
	a.signers = signers
	a.mutex.Unlock()
	return nil
}

func (a *AzureStore) fetchSigners() (map[string]*Signer, error) {
	signers := make(map[string]*Signer)

	result, err := a.signersTable.QueryEntities(azureTimeout, storage.FullMetadata, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range result.Entities {
		s := &Signer{
			Domain:   e.RowKey,
			Name:     e.Properties[nameFieldName].(string),
			Email:    e.Properties[emailFieldName].(string),
			TermsURL: e.Properties[termsURLFieldName].(string),
			Version:  owidVersion1,
		}
		if v, ok := e.Properties[publicKeysFieldName].(string); ok && v != "" {
			if err := json.Unmarshal([]byte(v), &s.PublicKeys); err != nil {
				return nil, err
			}
		}
		if v, ok := e.Properties[privateKeysFieldName].(string); ok && v != "" {
			if err := json.Unmarshal([]byte(v), &s.PrivateKeys); err != nil {
				return nil, err
			}
		}
		s.sortKeys()
		signers[s.Domain] = s
	}
	return signers, nil
}
