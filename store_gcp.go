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
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
)

// FirestoreStore is a Store backed by Google Cloud Firestore.
type FirestoreStore struct {
	timestamp time.Time
	client    *firestore.Client
	storeBase
}

// NewFirestoreStore connects to project's default Firestore database.
func NewFirestoreStore(project string) (*FirestoreStore, error) {
	var f FirestoreStore
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: project})
	if err != nil {
		return nil, err
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}
	f.client = client
	f.mutex = &sync.Mutex{}
	if err := f.refresh(); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetSigner returns domain's signer, refreshing from Firestore on a miss.
func (f *FirestoreStore) GetSigner(domain string) (*Signer, error) {
	s, err := f.getSigner(domain)
	if err != nil {
		return nil, err
	}
	if s == nil {
		if err := f.refresh(); err != nil {
			return nil, err
		}
		s, err = f.getSigner(domain)
	}
	return s, err
}

// SetSigner upserts s as a single document and updates the in-memory map.
func (f *FirestoreStore) SetSigner(s *Signer) error {
	ctx := context.Background()
	_, err := f.client.Collection(signersTableName).Doc(s.Domain).Set(ctx, s)
	if err != nil {
		return err
	}
	f.mutex.Lock()
	f.signers[s.Domain] = s
	f.mutex.Unlock()
	return nil
}

func (f *FirestoreStore) refresh() error {
	signers, err := f.fetchSigners()
	if err != nil {
		return err
	}
	f.mutex.Lock()
	f.signers = signers
	f.mutex.Unlock()
	f.timestamp = time.Now()
	return nil
}

func (f *FirestoreStore) fetchSigners() (map[string]*Signer, error) {
	ctx := context.Background()
	signers := make(map[string]*Signer)

	iter := f.client.Collection(signersTableName).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var s Signer
		if err := doc.DataTo(&s); err != nil {
			return nil, err
		}
		s.sortKeys()
		signers[s.Domain] = &s
	}
	return signers, nil
}
