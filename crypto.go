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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"math/big"
)

const pemPublicBlockType = "PUBLIC KEY"
const pemPrivateBlockType = "PRIVATE KEY"

// crypto wraps an ECDSA P-256 key pair and knows how to produce and check
// raw r||s signatures. A crypto value holds either only a public key or
// both keys: every constructor that loads a private key also sets the
// matching public key.
type crypto struct {
	public  *ecdsa.PublicKey
	private *ecdsa.PrivateKey
}

// newCrypto builds a crypto from a PEM block. The block's header
// determines whether it is imported as a public or private key.
func newCrypto(p string) (*crypto, error) {
	block, _ := pem.Decode([]byte(p))
	if block == nil {
		return nil, ErrTruncated
	}
	switch block.Type {
	case pemPrivateBlockType:
		k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		priv, ok := k.(*ecdsa.PrivateKey)
		if !ok {
			return nil, ErrKeyMisuse
		}
		return &crypto{public: &priv.PublicKey, private: priv}, nil
	case pemPublicBlockType:
		k, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		pub, ok := k.(*ecdsa.PublicKey)
		if !ok {
			return nil, ErrKeyMisuse
		}
		return &crypto{public: pub}, nil
	default:
		return nil, ErrKeyMisuse
	}
}

// newCryptoKeyPair generates a fresh ECDSA P-256 key pair.
func newCryptoKeyPair() (*crypto, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &crypto{public: &priv.PublicKey, private: priv}, nil
}

// publicPEM returns the public key SPKI-encoded as PEM.
func (c *crypto) publicPEM() (string, error) {
	if c.public == nil {
		return "", ErrKeyMisuse
	}
	b, err := x509.MarshalPKIXPublicKey(c.public)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemPublicBlockType, Bytes: b})), nil
}

// privatePEM returns the private key PKCS#8-encoded as PEM.
func (c *crypto) privatePEM() (string, error) {
	if c.private == nil {
		return "", ErrNoPrivateKey
	}
	b, err := x509.MarshalPKCS8PrivateKey(c.private)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: pemPrivateBlockType, Bytes: b})), nil
}

// sign produces a raw r||s signature over the SHA-256 digest of message.
// The signature is always exactly signatureLength bytes: r and s are each
// left-padded with zeros to halfSignatureLength bytes via big.Int.FillBytes
// so the encoding is fixed-width regardless of leading zero bytes in
// either value.
func (c *crypto) sign(message []byte) ([]byte, error) {
	if c.private == nil {
		return nil, ErrNoPrivateKey
	}
	digest := sha256.Sum256(message)
	r, s, err := ecdsa.Sign(rand.Reader, c.private, digest[:])
	if err != nil {
		return nil, err
	}
	sig := make([]byte, signatureLength)
	r.FillBytes(sig[:halfSignatureLength])
	s.FillBytes(sig[halfSignatureLength:])
	return sig, nil
}

// verify checks sig against the SHA-256 digest of message.
func (c *crypto) verify(message []byte, sig []byte) (bool, error) {
	if c.public == nil {
		return false, ErrKeyMisuse
	}
	if len(sig) != signatureLength {
		return false, ErrBadSignatureLength
	}
	r := new(big.Int).SetBytes(sig[:halfSignatureLength])
	s := new(big.Int).SetBytes(sig[halfSignatureLength:])
	digest := sha256.Sum256(message)
	return ecdsa.Verify(c.public, digest[:], r, s), nil
}
