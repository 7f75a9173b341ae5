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
	"encoding/binary"
)

// The length in bytes of an OWID signature. Raw r||s P-256 values, 32 bytes
// each, with no ASN.1 framing.
const signatureLength = 64
const halfSignatureLength = signatureLength / 2

// Writer builds the canonical little-endian byte encoding used both on the
// wire and as the message fed to the signature primitive. Strings are
// written as real UTF-8 - see SPEC_FULL.md's "string encoding" Open
// Question decision for why this diverges from the source behaviour the
// specification describes.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer ready for use.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated byte sequence.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteByte writes a single byte. v is taken as an int so that callers
// assembling a value (e.g. a version number) can be rejected with
// ErrOutOfRange rather than silently truncating.
func (w *Writer) WriteByte(v int) error {
	if v < 0 || v > 0xff {
		return ErrOutOfRange
	}
	return w.buf.WriteByte(byte(v))
}

// WriteUint16 writes v as two little-endian bytes.
func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.buf.Write(b[:])
	return err
}

// WriteUint32 writes v as four little-endian bytes.
func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.buf.Write(b[:])
	return err
}

// WriteDate is an alias for WriteUint32, used where the value is already a
// timestamp in minutes-since-epoch-base form. See time.go for the
// conversion from time.Time.
func (w *Writer) WriteDate(v uint32) error {
	return w.WriteUint32(v)
}

// WriteString writes s followed by a single 0x00 terminator. An empty
// string is invalid.
func (w *Writer) WriteString(s string) error {
	if s == "" {
		return ErrEmptyString
	}
	if _, err := w.buf.WriteString(s); err != nil {
		return err
	}
	return w.buf.WriteByte(0)
}

// WriteStrings writes a uint16 count followed by each string in list. An
// empty list writes a count of zero and nothing else.
func (w *Writer) WriteStrings(list []string) error {
	if len(list) > 0xffff {
		return ErrTooLong
	}
	if err := w.WriteUint16(uint16(len(list))); err != nil {
		return err
	}
	for _, s := range list {
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteByteArray writes a uint32 length prefix followed by a.
func (w *Writer) WriteByteArray(a []byte) error {
	if err := w.WriteUint32(uint32(len(a))); err != nil {
		return err
	}
	return w.WriteByteArrayNoLength(a)
}

// WriteByteArrayNoLength writes a with no length prefix.
func (w *Writer) WriteByteArrayNoLength(a []byte) error {
	_, err := w.buf.Write(a)
	return err
}

// WriteSignature writes sig, which must be exactly signatureLength bytes.
func (w *Writer) WriteSignature(sig []byte) error {
	if len(sig) != signatureLength {
		return ErrBadSignatureLength
	}
	return w.WriteByteArrayNoLength(sig)
}

// Reader consumes a byte sequence produced by Writer, advancing a cursor as
// it goes. Any read that runs past the end of the buffer fails Truncated.
type Reader struct {
	buf *bytes.Buffer
}

// NewReader wraps b for reading.
func NewReader(b []byte) *Reader {
	return &Reader{buf: bytes.NewBuffer(b)}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return r.buf.Len()
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	d := r.buf.Next(1)
	if len(d) != 1 {
		return 0, ErrTruncated
	}
	return d[0], nil
}

// ReadUint16 reads two little-endian bytes.
func (r *Reader) ReadUint16() (uint16, error) {
	d := r.buf.Next(2)
	if len(d) != 2 {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint16(d), nil
}

// ReadUint32 reads four little-endian bytes.
func (r *Reader) ReadUint32() (uint32, error) {
	d := r.buf.Next(4)
	if len(d) != 4 {
		return 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(d), nil
}

// ReadDate is an alias for ReadUint32.
func (r *Reader) ReadDate() (uint32, error) {
	return r.ReadUint32()
}

// ReadString reads until a 0x00 terminator, advancing past it.
func (r *Reader) ReadString() (string, error) {
	s, err := r.buf.ReadBytes(0)
	if err != nil {
		return "", ErrTruncated
	}
	return string(s[:len(s)-1]), nil
}

// ReadStrings reads a uint16 count followed by that many strings.
func (r *Reader) ReadStrings() ([]string, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, n)
	for i := uint16(0); i < n; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// ReadByteArray reads a uint32 length prefix followed by that many bytes.
func (r *Reader) ReadByteArray() ([]byte, error) {
	l, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	d := r.buf.Next(int(l))
	if len(d) != int(l) {
		return nil, ErrTruncated
	}
	return d, nil
}

// ReadSignature reads exactly signatureLength bytes.
func (r *Reader) ReadSignature() ([]byte, error) {
	d := r.buf.Next(signatureLength)
	if len(d) != signatureLength {
		return nil, ErrTruncated
	}
	return d, nil
}
