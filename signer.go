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
	"net/mail"
	"net/url"
	"sort"
	"time"
)

// Signer describes an organization that can create and verify OWIDs for a
// given (Version, Domain) pair. PublicKeys is published to requesters;
// PrivateKeys never leaves the signer's own process.
type Signer struct {
	Version    byte      `json:"version"`
	Domain     string    `json:"domain"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TermsURL   string    `json:"termsURL"`
	PublicKeys []Key     `json:"publicKeys"`
	PrivateKeys []Key    `json:"-"`
}

// NewSigner validates and constructs a Signer with no keys. AddKeyPair
// must be called at least once before the signer can sign anything.
func NewSigner(version byte, domain, name, email, termsURL string) (*Signer, error) {
	if err := validateSignerVersion(version); err != nil {
		return nil, err
	}
	if domain == "" {
		return nil, ErrNoDomain
	}
	if len(name) < minNameLength || len(name) > maxNameLength {
		return nil, ErrOutOfRange
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, err
	}
	if len(termsURL) > maxTermsURLLength {
		return nil, ErrTooLong
	}
	if _, err := url.ParseRequestURI(termsURL); err != nil {
		return nil, ErrOutOfRange
	}
	return &Signer{
		Version:  version,
		Domain:   domain,
		Name:     name,
		Email:    email,
		TermsURL: termsURL,
	}, nil
}

func validateSignerVersion(v byte) error {
	for _, s := range owidVersions {
		if s == v {
			return nil
		}
	}
	return ErrUnsupportedVersion
}

// AddKeyPair generates a new ECDSA P-256 key pair created at t, appends it
// to the signer's key lists, and returns the new public Key.
func (s *Signer) AddKeyPair(t time.Time) (Key, error) {
	pub, priv, err := NewKeyPair(t)
	if err != nil {
		return Key{}, err
	}
	s.PublicKeys = append(s.PublicKeys, pub)
	s.PrivateKeys = append(s.PrivateKeys, priv)
	s.sortKeys()
	return pub, nil
}

// sortKeys orders both key lists newest-first.
func (s *Signer) sortKeys() {
	sort.Slice(s.PublicKeys, func(i, j int) bool {
		return s.PublicKeys[i].Created.After(s.PublicKeys[j].Created)
	})
	sort.Slice(s.PrivateKeys, func(i, j int) bool {
		return s.PrivateKeys[i].Created.After(s.PrivateKeys[j].Created)
	})
}

// SigningKey returns the most recently created private key, which is
// always the one used to sign new OWIDs.
func (s *Signer) SigningKey() (*Key, error) {
	if len(s.PrivateKeys) == 0 {
		return nil, ErrNoPrivateKey
	}
	best := 0
	for i := range s.PrivateKeys {
		if s.PrivateKeys[i].Created.After(s.PrivateKeys[best].Created) {
			best = i
		}
	}
	return &s.PrivateKeys[best], nil
}

// VerifyingKeyAt returns the first public key, in published list order,
// that was eligible (created at or before t, within keyTolerance) at
// time t - trust list order, not recency. Keys created strictly after
// the tolerance window are never selected, even if no other key
// matches - the caller sees KeyNotFound rather than a false match.
func (s *Signer) VerifyingKeyAt(t time.Time) (*Key, error) {
	for i := range s.PublicKeys {
		k := &s.PublicKeys[i]
		if k.eligibleAt(t) {
			return k, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Public returns a copy of s with PrivateKeys cleared, suitable for
// publishing to requesters over HTTP.
func (s *Signer) Public() *Signer {
	pub := *s
	pub.PrivateKeys = nil
	return &pub
}

// cacheKey returns the structural key used to address this signer in a
// Cache: "v{version}|{domain}". Deliberately a value type, not the
// *Signer pointer itself - see SPEC_FULL.md's Open Question decision on
// why the cache must not key on object identity.
func (s *Signer) cacheKey() string {
	return signerCacheKey(s.Version, s.Domain)
}
