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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"time"
)

// VerifiedStatus describes the outcome of a verification attempt. The zero
// value, NotStarted, is what a freshly decoded OWID has before Verify is
// called.
type VerifiedStatus int

const (
	NotStarted VerifiedStatus = iota
	Processing
	Valid
	NotValid
	SignerNotFound
	KeyNotFound
	Exception
)

func (s VerifiedStatus) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Processing:
		return "Processing"
	case Valid:
		return "Valid"
	case NotValid:
		return "NotValid"
	case SignerNotFound:
		return "SignerNotFound"
	case KeyNotFound:
		return "KeyNotFound"
	case Exception:
		return "Exception"
	default:
		return "Unknown"
	}
}

// OWID is a self-verifying signed identifier binding a Target's bytes to a
// version, domain, and timestamp via a signature.
type OWID struct {
	Version   byte      `json:"version"`
	Domain    string    `json:"domain"`
	TimeStamp time.Time `json:"timestamp"`
	Signature []byte    `json:"signature"`

	// Target is never serialized as part of the OWID itself - it is the
	// payload the OWID is attached to, supplied by the caller both when
	// signing and when verifying.
	Target Target `json:"-"`

	status VerifiedStatus
}

// NewOWID constructs an unsigned OWID for target, stamped with the given
// domain and the current time. Call SignWith to populate Signature.
func NewOWID(domain string, target Target) (*OWID, error) {
	if domain == "" {
		return nil, ErrNoDomain
	}
	if target == nil {
		return nil, ErrNoTarget
	}
	return &OWID{
		Version:   owidVersion1,
		Domain:    domain,
		TimeStamp: FromTimestamp(ToTimestamp(time.Now())),
		Target:    target,
	}, nil
}

// Status returns the result of the most recent verification attempt.
func (o *OWID) Status() VerifiedStatus {
	return o.status
}

// message assembles the canonical byte sequence that is signed and
// verified: the target's own bytes first, then version, domain, and
// timestamp, in that order. Sign and Verify must build this identically
// or every signature will appear invalid.
func (o *OWID) message() ([]byte, error) {
	if o.Target == nil {
		return nil, ErrNoTarget
	}
	w := NewWriter()
	if err := o.Target.AddOwidData(w); err != nil {
		return nil, err
	}
	if err := w.WriteByte(int(o.Version)); err != nil {
		return nil, err
	}
	if err := w.WriteString(o.Domain); err != nil {
		return nil, err
	}
	if err := w.WriteDate(ToTimestamp(o.TimeStamp)); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SignWith signs o using signer's current signing key. signer.Domain must
// match o.Domain.
func (o *OWID) SignWith(signer *Signer) error {
	if signer.Domain != o.Domain {
		return ErrDomainMismatch
	}
	key, err := signer.SigningKey()
	if err != nil {
		return err
	}
	c, err := key.crypto()
	if err != nil {
		return err
	}
	msg, err := o.message()
	if err != nil {
		return err
	}
	sig, err := c.sign(msg)
	if err != nil {
		return err
	}
	o.Signature = sig
	return nil
}

// VerifyWithPublicKeys checks o's signature against signer's published
// public keys, selecting the first key, in published list order, that was
// eligible at o.TimeStamp (within keyTolerance). It sets and returns
// o.Status().
//
// If signer has no key eligible at o.TimeStamp, the result is KeyNotFound
// rather than NotValid - the OWID's claim could not be checked at all, as
// distinct from having been checked and found wrong. See SPEC_FULL.md's
// Open Question decision on this point.
func (o *OWID) VerifyWithPublicKeys(signer *Signer) (VerifiedStatus, error) {
	o.status = Processing
	if signer.Domain != o.Domain {
		o.status = Exception
		return o.status, ErrDomainMismatch
	}
	key, err := signer.VerifyingKeyAt(o.TimeStamp)
	if err != nil {
		o.status = KeyNotFound
		return o.status, nil
	}
	c, err := key.crypto()
	if err != nil {
		o.status = Exception
		return o.status, err
	}
	msg, err := o.message()
	if err != nil {
		o.status = Exception
		return o.status, err
	}
	ok, err := c.verify(msg, o.Signature)
	if err != nil {
		o.status = Exception
		return o.status, err
	}
	if ok {
		o.status = Valid
	} else {
		o.status = NotValid
	}
	return o.status, nil
}

// Resolver fetches the Signer responsible for an OWID's (version, domain)
// pair. Cache implements this, via its HTTP-backed variant HTTPCache, or a
// caller may pass a Signer Authority's own lookup directly.
type Resolver interface {
	Get(ctx context.Context, version byte, domain string) (*Signer, error)
}

// Verify resolves o's signer via resolver and then verifies o against it.
// SignerNotFound is reported (not an error) when resolver cannot find a
// signer for (o.Version, o.Domain).
func (o *OWID) Verify(ctx context.Context, resolver Resolver) (VerifiedStatus, error) {
	o.status = Processing
	signer, err := resolver.Get(ctx, o.Version, o.Domain)
	if err != nil {
		o.status = Exception
		return o.status, err
	}
	if signer == nil {
		o.status = SignerNotFound
		return o.status, nil
	}
	return o.VerifyWithPublicKeys(signer)
}

// AsByteArray returns the wire encoding of o: version, domain, timestamp,
// signature. The target is not included - it travels alongside the OWID,
// not inside it.
func (o *OWID) AsByteArray() ([]byte, error) {
	w := NewWriter()
	if err := w.WriteByte(int(o.Version)); err != nil {
		return nil, err
	}
	if err := w.WriteString(o.Domain); err != nil {
		return nil, err
	}
	if err := w.WriteDate(ToTimestamp(o.TimeStamp)); err != nil {
		return nil, err
	}
	if err := w.WriteSignature(o.Signature); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// AsBase64 returns AsByteArray, base64-encoded with the standard alphabet.
func (o *OWID) AsBase64() (string, error) {
	b, err := o.AsByteArray()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// FromByteArray decodes the wire form written by AsByteArray. The
// returned OWID has status NotStarted and a nil Target - callers must set
// Target before verifying.
func FromByteArray(b []byte) (*OWID, error) {
	r := NewReader(b)
	version, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if err := validateSignerVersion(version); err != nil {
		return nil, err
	}
	domain, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	ts, err := r.ReadDate()
	if err != nil {
		return nil, err
	}
	sig, err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	return &OWID{
		Version:   version,
		Domain:    domain,
		TimeStamp: FromTimestamp(ts),
		Signature: sig,
	}, nil
}

// FromBase64 decodes a standard-base64 string produced by AsBase64.
func FromBase64(s string) (*OWID, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return FromByteArray(b)
}

// MarshalJSON renders o using the same field names as the struct tags,
// with Signature as base64 rather than a raw byte array, matching the
// JSON form used across the HTTP surface.
func (o *OWID) MarshalJSON() ([]byte, error) {
	type alias struct {
		Version   byte   `json:"version"`
		Domain    string `json:"domain"`
		TimeStamp uint32 `json:"timestamp"`
		Signature string `json:"signature"`
	}
	return json.Marshal(alias{
		Version:   o.Version,
		Domain:    o.Domain,
		TimeStamp: ToTimestamp(o.TimeStamp),
		Signature: base64.StdEncoding.EncodeToString(o.Signature),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (o *OWID) UnmarshalJSON(data []byte) error {
	var alias struct {
		Version   byte   `json:"version"`
		Domain    string `json:"domain"`
		TimeStamp uint32 `json:"timestamp"`
		Signature string `json:"signature"`
	}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	sig, err := base64.StdEncoding.DecodeString(alias.Signature)
	if err != nil {
		return err
	}
	o.Version = alias.Version
	o.Domain = alias.Domain
	o.TimeStamp = FromTimestamp(alias.TimeStamp)
	o.Signature = sig
	return nil
}

// Equal reports whether two OWIDs have identical version, domain,
// timestamp, and signature. Target is not compared.
func (o *OWID) Equal(other *OWID) bool {
	if other == nil {
		return false
	}
	return o.Version == other.Version &&
		o.Domain == other.Domain &&
		o.TimeStamp.Equal(other.TimeStamp) &&
		bytes.Equal(o.Signature, other.Signature)
}
