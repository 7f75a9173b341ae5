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
	"testing"
)

var testTarget = BytesTarget("the payload these OWIDs protect")

// testOWIDCreateAndVerify signs a fresh OWID with a fresh signer and checks
// it verifies, returning both for further assertions.
func testOWIDCreateAndVerify(t *testing.T) (*Signer, *OWID) {
	t.Helper()
	s := newTestSigner(t)
	o, err := NewOWID(testDomain, testTarget)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.SignWith(s); err != nil {
		t.Fatal(err)
	}
	status, err := o.VerifyWithPublicKeys(s)
	if err != nil {
		t.Fatal(err)
	}
	if status != Valid {
		t.Fatalf("expected Valid, got %s", status)
	}
	return s, o
}

func TestOWIDVerify(t *testing.T) {
	testOWIDCreateAndVerify(t)
}

func TestOWIDDomainMismatchOnSign(t *testing.T) {
	s := newTestSigner(t)
	o, err := NewOWID("other.com", testTarget)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.SignWith(s); err != ErrDomainMismatch {
		t.Fatalf("expected ErrDomainMismatch, got %v", err)
	}
}

func TestOWIDByteArrayRoundTrip(t *testing.T) {
	_, o := testOWIDCreateAndVerify(t)
	b, err := o.AsByteArray()
	if err != nil {
		t.Fatal(err)
	}
	a, err := FromByteArray(b)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Equal(a) {
		t.Fatal("decoded OWID should equal the original")
	}
}

func TestOWIDBase64RoundTrip(t *testing.T) {
	_, o := testOWIDCreateAndVerify(t)
	s, err := o.AsBase64()
	if err != nil {
		t.Fatal(err)
	}
	a, err := FromBase64(s)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Equal(a) {
		t.Fatal("decoded OWID should equal the original")
	}
}

func TestOWIDBase64Corrupt(t *testing.T) {
	_, o := testOWIDCreateAndVerify(t)
	s, err := o.AsBase64()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromBase64(s[:len(s)-2]); err == nil {
		t.Fatal("truncated base64 should fail to decode")
	}
}

func TestOWIDJSONRoundTrip(t *testing.T) {
	signer, o := testOWIDCreateAndVerify(t)
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	var a OWID
	if err := json.Unmarshal(b, &a); err != nil {
		t.Fatal(err)
	}
	a.Target = testTarget
	status, err := a.VerifyWithPublicKeys(signer)
	if err != nil {
		t.Fatal(err)
	}
	if status != Valid {
		t.Fatalf("deserialized OWID should still verify, got %s", status)
	}
}

func TestOWIDCorruptedSignatureFailsVerification(t *testing.T) {
	signer, o := testOWIDCreateAndVerify(t)
	o.Signature[0] ^= 0xff
	status, err := o.VerifyWithPublicKeys(signer)
	if err != nil {
		t.Fatal(err)
	}
	if status != NotValid {
		t.Fatalf("expected NotValid after corrupting the signature, got %s", status)
	}
}

func TestOWIDKeyNotFoundWhenTooNew(t *testing.T) {
	signer := newTestSigner(t)
	o, err := NewOWID(testDomain, testTarget)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.SignWith(signer); err != nil {
		t.Fatal(err)
	}

	// Replace the signer's only key with one created well after the OWID's
	// timestamp - nothing is eligible to verify it.
	pub, _, err := NewKeyPair(o.TimeStamp.Add(keyTolerance * 2))
	if err != nil {
		t.Fatal(err)
	}
	signer.PublicKeys = []Key{pub}

	status, err := o.VerifyWithPublicKeys(signer)
	if err != nil {
		t.Fatal(err)
	}
	if status != KeyNotFound {
		t.Fatalf("expected KeyNotFound, got %s", status)
	}
}

func TestOWIDVerifyDomainMismatch(t *testing.T) {
	signer, o := testOWIDCreateAndVerify(t)
	o.Domain = "other.com"
	if _, err := o.VerifyWithPublicKeys(signer); err != ErrDomainMismatch {
		t.Fatalf("expected ErrDomainMismatch, got %v", err)
	}
}
