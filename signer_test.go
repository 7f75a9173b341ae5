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

const (
	testDomain   = "example.com"
	testName     = "Example Organization"
	testEmail    = "owid@example.com"
	testTermsURL = "https://example.com/terms"
)

// newTestSigner builds a signer with one key pair, ready to sign.
func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(owidVersion1, testDomain, testName, testEmail, testTermsURL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddKeyPair(time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSignerValidation(t *testing.T) {
	if _, err := NewSigner(owidVersion1, "", testName, testEmail, testTermsURL); err != ErrNoDomain {
		t.Fatalf("expected ErrNoDomain, got %v", err)
	}
	if _, err := NewSigner(owidVersion1, testDomain, "x", testEmail, testTermsURL); err == nil {
		t.Fatal("expected error for too-short name")
	}
	if _, err := NewSigner(owidVersion1, testDomain, testName, "not-an-email", testTermsURL); err == nil {
		t.Fatal("expected error for invalid email")
	}
	if _, err := NewSigner(99, testDomain, testName, testEmail, testTermsURL); err != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestSignerAddKeyPairOrdersNewestFirst(t *testing.T) {
	s := newTestSigner(t)
	older := s.PublicKeys[0].Created

	if _, err := s.AddKeyPair(older.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	if !s.PublicKeys[0].Created.After(older) {
		t.Fatal("most recently added key should sort first")
	}
}

func TestSignerSigningKeyIsNewest(t *testing.T) {
	s := newTestSigner(t)
	t0 := s.PrivateKeys[0].Created

	newer, err := s.AddKeyPair(t0.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	k, err := s.SigningKey()
	if err != nil {
		t.Fatal(err)
	}
	if k.PEM != s.PrivateKeys[0].PEM {
		t.Fatal("signing key should be the most recently added private key")
	}
	_ = newer
}

func TestSignerVerifyingKeyAtRespectsTolerance(t *testing.T) {
	s := newTestSigner(t)
	created := s.PublicKeys[0].Created

	if _, err := s.VerifyingKeyAt(created); err != nil {
		t.Fatal(err)
	}
	if _, err := s.VerifyingKeyAt(created.Add(-keyTolerance)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.VerifyingKeyAt(created.Add(-keyTolerance - time.Minute)); err != ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSignerPublicHidesPrivateKeys(t *testing.T) {
	s := newTestSigner(t)
	pub := s.Public()
	if len(pub.PrivateKeys) != 0 {
		t.Fatal("Public() should not expose private keys")
	}
	if len(pub.PublicKeys) != len(s.PublicKeys) {
		t.Fatal("Public() should retain public keys")
	}
}

func TestSignerCacheKeyIsStructural(t *testing.T) {
	a := newTestSigner(t)
	b := newTestSigner(t)
	if a.cacheKey() != b.cacheKey() {
		t.Fatal("two signers for the same version and domain should share a cache key")
	}
}
