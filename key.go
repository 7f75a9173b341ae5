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
	"sync"
	"time"
)

// Key is a single PEM-encoded key with the time it was created. Public
// keys and private keys are both represented with this type; a Signer
// keeps separate lists of each (see signer.go). Key values are copied
// freely (returned from NewKeyPair, reordered by sort.Slice, appended and
// ranged over in slices), so the lazily-materialized crypto value is held
// behind a pointer indirection rather than an embedded lock - copying a
// Key only copies the pointer, never a mutex.
type Key struct {
	PEM     string    `json:"pem"`
	Created time.Time `json:"created"`

	cache *keyCache
}

// keyCache holds the parsed representation of a Key's PEM, materialized
// lazily on first use and cached, mirroring the teacher's own
// lazy-materialize-and-cache pattern for key handling.
type keyCache struct {
	mu sync.Mutex
	c  *crypto
}

// keyCacheInitMu guards the one-time allocation of a Key's cache pointer.
// Kept as a single package-level lock rather than per-Key so that Key
// itself never embeds a mutex value.
var keyCacheInitMu sync.Mutex

// NewKeyPair generates a fresh ECDSA P-256 key pair, returning the public
// and private Key halves with the same Created timestamp.
func NewKeyPair(created time.Time) (public Key, private Key, err error) {
	c, err := newCryptoKeyPair()
	if err != nil {
		return Key{}, Key{}, err
	}
	pub, err := c.publicPEM()
	if err != nil {
		return Key{}, Key{}, err
	}
	priv, err := c.privatePEM()
	if err != nil {
		return Key{}, Key{}, err
	}
	return Key{PEM: pub, Created: created, cache: &keyCache{c: &crypto{public: c.public}}},
		Key{PEM: priv, Created: created, cache: &keyCache{c: c}},
		nil
}

// crypto returns (and caches) the parsed representation of k.PEM.
func (k *Key) crypto() (*crypto, error) {
	keyCacheInitMu.Lock()
	if k.cache == nil {
		k.cache = &keyCache{}
	}
	cache := k.cache
	keyCacheInitMu.Unlock()

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.c != nil {
		return cache.c, nil
	}
	c, err := newCrypto(k.PEM)
	if err != nil {
		return nil, err
	}
	cache.c = c
	return cache.c, nil
}

// eligibleAt reports whether k should be considered for verification at
// the given time: k must have been created at or before t, adjusted
// forward by keyTolerance to absorb clock skew between signer and
// verifier.
func (k *Key) eligibleAt(t time.Time) bool {
	return !k.Created.After(t.Add(keyTolerance))
}
