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
	"fmt"
	"log"
	"os"
)

const (
	signersTableName             = "owidsigners"
	signersTablePartitionKey     = "signer"
	signersTablePartitionKeyName = "OwidSigner"
	domainFieldName              = "domain"
	nameFieldName                = "name"
	emailFieldName               = "email"
	termsURLFieldName            = "termsURL"
	publicKeysFieldName          = "publicKeys"
	privateKeysFieldName         = "privateKeys"
)

// Store is the persistence interface for Signer Authority state: every
// known Signer, keyed on domain, addressable for reads and updated on
// registration or key rotation.
type Store interface {

	// GetSigner returns the signer for domain, or nil if none is known.
	GetSigner(domain string) (*Signer, error)

	// GetSigners returns every known signer, keyed on domain.
	GetSigners() map[string]*Signer

	// SetSigner inserts or replaces the stored record for s.Domain.
	SetSigner(s *Signer) error
}

// NewStore returns the Store implementation selected by environment
// variables, checked in this order: Azure (AZURE_STORAGE_ACCOUNT /
// AZURE_STORAGE_ACCESS_KEY), GCP (GCP_PROJECT), local file (OWID_FILE),
// then AWS (AWS_ENABLED). If OWID_STORE is set, only the backend it names
// ("azure", "gcp", "local" or "aws") is considered.
func NewStore(config Configuration) Store {
	var store Store
	var err error

	azureAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT")
	azureAccountKey := os.Getenv("AZURE_STORAGE_ACCESS_KEY")
	gcpProject := os.Getenv("GCP_PROJECT")
	owidFile := os.Getenv("OWID_FILE")
	awsEnabled := os.Getenv("AWS_ENABLED")
	which := os.Getenv("OWID_STORE")

	switch {
	case (azureAccountName != "" || azureAccountKey != "") &&
		(which == "" || which == "azure"):
		if azureAccountName == "" || azureAccountKey == "" {
			panic(fmt.Errorf("owid: AZURE_STORAGE_ACCOUNT and " +
				"AZURE_STORAGE_ACCESS_KEY must both be set"))
		}
		log.Printf("owid: using Azure Table Storage")
		store, err = NewAzureStore(azureAccountName, azureAccountKey)
	case gcpProject != "" && (which == "" || which == "gcp"):
		log.Printf("owid: using GCP Firestore")
		store, err = NewFirestoreStore(gcpProject)
	case owidFile != "" && (which == "" || which == "local"):
		log.Printf("owid: using local file storage")
		store, err = NewLocalStore(owidFile)
	case awsEnabled != "" && (which == "" || which == "aws"):
		log.Printf("owid: using AWS DynamoDB")
		store, err = NewAWSStore()
	}
	if err != nil {
		panic(err)
	}
	if store == nil {
		panic(fmt.Errorf("owid: no store configured; set one of " +
			"AZURE_STORAGE_ACCOUNT/AZURE_STORAGE_ACCESS_KEY, GCP_PROJECT, " +
			"OWID_FILE, or AWS_ENABLED"))
	}

	if config.Debug {
		for _, s := range store.GetSigners() {
			log.Printf("owid: loaded signer %s", s.Domain)
		}
	}

	return store
}
