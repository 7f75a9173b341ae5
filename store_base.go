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

import "sync"

// storeBase is a partial Store implementation shared by every concrete
// backend: an in-memory map of the last-known signers, refreshed wholesale
// from the backing store rather than per key.
type storeBase struct {
	signers map[string]*Signer
	mutex   *sync.Mutex
}

func (s *storeBase) init() {
	s.signers = make(map[string]*Signer)
	s.mutex = &sync.Mutex{}
}

// GetSigners returns the signers map as it stood after the last refresh.
func (s *storeBase) GetSigners() map[string]*Signer {
	return s.signers
}

// getSigner returns domain's signer from the in-memory map without
// triggering a refresh.
func (s *storeBase) getSigner(domain string) (*Signer, error) {
	return s.signers[domain], nil
}
