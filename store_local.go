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
	"os"
	"path"
	"sync"
	"time"
)

// LocalStore is a Store backed by a single JSON file on disk, intended for
// development and single-instance deployments.
type LocalStore struct {
	timestamp time.Time
	file      string
	storeBase
}

// NewLocalStore opens (creating if necessary) file and loads its contents.
func NewLocalStore(file string) (*LocalStore, error) {
	var l LocalStore
	l.file = file
	l.mutex = &sync.Mutex{}
	if err := l.refresh(); err != nil {
		return nil, err
	}
	return &l, nil
}

// SetSigner persists s and updates the in-memory map.
func (l *LocalStore) SetSigner(s *Signer) error {
	l.mutex.Lock()
	l.signers[s.Domain] = s
	l.mutex.Unlock()

	data, err := json.MarshalIndent(l.signers, "", "\t")
	if err != nil {
		return err
	}
	return writeLocalStoreFile(l.file, data)
}

// GetSigner returns domain's signer, refreshing from disk on a miss.
func (l *LocalStore) GetSigner(domain string) (*Signer, error) {
	s, err := l.getSigner(domain)
	if err != nil {
		return nil, err
	}
	if s == nil {
		if err := l.refresh(); err != nil {
			return nil, err
		}
		s, err = l.getSigner(domain)
	}
	return s, err
}

func (l *LocalStore) refresh() error {
	signers, err := l.fetchSigners()
	if err != nil {
		return err
	}
	l.mutex.Lock()
	l.signers = signers
	l.mutex.Unlock()
	l.timestamp = time.Now()
	return nil
}

func (l *LocalStore) fetchSigners() (map[string]*Signer, error) {
	data, err := readLocalStoreFile(l.file)
	if err != nil {
		return nil, err
	}
	signers := make(map[string]*Signer)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &signers); err != nil {
			return nil, err
		}
	}
	return signers, nil
}

func readLocalStoreFile(file string) ([]byte, error) {
	if err := createLocalStoreFile(file); err != nil {
		return nil, err
	}
	return os.ReadFile(file)
}

func writeLocalStoreFile(file string, data []byte) error {
	if err := createLocalStoreFile(file); err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func createLocalStoreFile(file string) error {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		if _, err := os.Stat(path.Dir(file)); os.IsNotExist(err) {
			if err := os.MkdirAll(path.Dir(file), 0700); err != nil {
				return err
			}
		}
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		return f.Close()
	}
	return nil
}
