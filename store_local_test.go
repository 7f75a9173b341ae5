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
	"path/filepath"
	"testing"
)

func TestLocalStoreSetAndGet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "signers.json")
	store, err := NewLocalStore(file)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestSigner(t)
	if err := store.SetSigner(s); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSigner(testDomain)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected to find the signer just stored")
	}
	if got.Domain != s.Domain || got.Name != s.Name {
		t.Fatalf("got %+v, want %+v", got, s)
	}
}

func TestLocalStorePersistsAcrossInstances(t *testing.T) {
	file := filepath.Join(t.TempDir(), "signers.json")
	first, err := NewLocalStore(file)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSigner(t)
	if err := first.SetSigner(s); err != nil {
		t.Fatal(err)
	}

	second, err := NewLocalStore(file)
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.GetSigner(testDomain)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected the second store instance to load the persisted signer")
	}
}

func TestLocalStoreMissingDomainReturnsNil(t *testing.T) {
	file := filepath.Join(t.TempDir(), "signers.json")
	store, err := NewLocalStore(file)
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.GetSigner("unknown.example")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil for a domain that was never registered")
	}
}
