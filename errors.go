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

import "errors"

// Fatal error kinds. Signature mismatch and a genuine cache miss are NOT
// represented here — those are normal outcomes reported via
// VerifiedStatus, never returned as errors. ErrKeyNotFound is returned by
// Signer.VerifyingKeyAt only; OWID.VerifyWithPublicKeys turns it into the
// KeyNotFound status rather than returning it.
var (
	ErrOutOfRange         = errors.New("owid: value out of range")
	ErrEmptyString        = errors.New("owid: empty string")
	ErrTooLong            = errors.New("owid: value too long")
	ErrBadSignatureLength = errors.New("owid: signature must be exactly 64 bytes")
	ErrTruncated          = errors.New("owid: unexpected end of buffer")
	ErrUnsupportedVersion = errors.New("owid: unsupported version")
	ErrNoTarget           = errors.New("owid: no target set")
	ErrNoDomain           = errors.New("owid: no domain set")
	ErrNoPrivateKey       = errors.New("owid: signer has no private keys")
	ErrKeyMisuse          = errors.New("owid: key does not support this operation")
	ErrDomainMismatch     = errors.New("owid: signer domain does not match OWID domain")
	ErrSignerFetchFailed  = errors.New("owid: failed to fetch signer")
	ErrCancelled          = errors.New("owid: operation cancelled")
	ErrKeyNotFound        = errors.New("owid: no public key eligible at this time")
)
