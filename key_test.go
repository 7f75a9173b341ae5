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
	"testing"
	"time"
)

func TestNewKeyPair(t *testing.T) {
	created := time.Now().UTC()
	pub, priv, err := NewKeyPair(created)
	if err != nil {
		t.Fatal(err)
	}
	if !pub.Created.Equal(created) || !priv.Created.Equal(created) {
		t.Fatal("both halves of the pair should carry the given creation time")
	}
	if _, err := pub.crypto(); err != nil {
		t.Fatal(err)
	}
	if _, err := priv.crypto(); err != nil {
		t.Fatal(err)
	}
}

func TestKeyEligibleAt(t *testing.T) {
	now := time.Now().UTC()
	k := Key{Created: now}

	if !k.eligibleAt(now) {
		t.Fatal("a key should be eligible at its own creation time")
	}
	if !k.eligibleAt(now.Add(-keyTolerance)) {
		t.Fatal("a key should be eligible within the tolerance window before its creation")
	}
	if k.eligibleAt(now.Add(-keyTolerance - time.Minute)) {
		t.Fatal("a key should not be eligible before the tolerance window")
	}
	if !k.eligibleAt(now.Add(time.Hour * 24)) {
		t.Fatal("a key should remain eligible long after its creation")
	}
}

func TestKeyCryptoIsCached(t *testing.T) {
	_, priv, err := NewKeyPair(time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	c1, err := priv.crypto()
	if err != nil {
		t.Fatal(err)
	}
	c2, err := priv.crypto()
	if err != nil {
		t.Fatal(err)
	}
	if c1 != c2 {
		t.Fatal("crypto() should return the same cached instance on repeated calls")
	}
}
