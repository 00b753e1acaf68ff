// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format implements the scryptbox container format.
//
// A container is a fixed-size binary header, the ciphertext, and a
// trailing authentication tag:
//
//	magic   [4]byte  "sbox"
//	version uint8    0x01
//	logN    uint8    log2 of the cost parameter N
//	r       uint32   big-endian block size parameter
//	p       uint32   big-endian parallelism parameter
//	salt    [32]byte
//	ciphertext       same length as the plaintext
//	tag     [32]byte HMAC-SHA256 over header || ciphertext
//
// Storing log2(N) makes a non-power-of-two N unrepresentable on the wire.
// The codec treats ciphertext and tag as opaque bytes; callers verify the
// tag before the ciphertext is interpreted in any way.
package format

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	// Version1 is the only container version this package writes.
	Version1 = 0x01

	// SaltSize is the length of the per-encryption salt.
	SaltSize = 32

	// TagSize is the length of the trailing authentication tag.
	TagSize = 32

	// HeaderSize is the length of the marshaled header.
	HeaderSize = 4 + 1 + 1 + 4 + 4 + SaltSize
)

var magic = [4]byte{'s', 'b', 'o', 'x'}

var (
	ErrBadMagic           = errors.New("format: not a scryptbox file")
	ErrUnsupportedVersion = errors.New("format: unsupported container version")
	ErrTruncated          = errors.New("format: truncated container")
)

// Header carries the key derivation parameters and salt for one container.
type Header struct {
	Version byte
	LogN    uint8
	R, P    uint32
	Salt    [SaltSize]byte
}

// Marshal returns the wire encoding of the header. The same bytes are the
// associated data the authentication tag covers.
func (h *Header) Marshal() []byte {
	b := make([]byte, 0, HeaderSize)
	b = append(b, magic[:]...)
	b = append(b, h.Version, h.LogN)
	b = binary.BigEndian.AppendUint32(b, h.R)
	b = binary.BigEndian.AppendUint32(b, h.P)
	b = append(b, h.Salt[:]...)
	return b
}

// Encode assembles a complete container from the header, the opaque
// ciphertext, and the tag.
func Encode(h *Header, ciphertext, tag []byte) []byte {
	out := make([]byte, 0, HeaderSize+len(ciphertext)+len(tag))
	out = append(out, h.Marshal()...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out
}

// Decode splits a container into its header, ciphertext, and tag. The
// ciphertext and tag alias data; nothing is copied and nothing about the
// ciphertext is interpreted.
func Decode(data []byte) (h *Header, ciphertext, tag []byte, err error) {
	if len(data) < len(magic) {
		return nil, nil, nil, ErrTruncated
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, nil, nil, ErrBadMagic
	}
	if len(data) < len(magic)+1 {
		return nil, nil, nil, ErrTruncated
	}
	if data[4] != Version1 {
		return nil, nil, nil, ErrUnsupportedVersion
	}
	if len(data) < HeaderSize+TagSize {
		return nil, nil, nil, ErrTruncated
	}

	h = &Header{
		Version: data[4],
		LogN:    data[5],
		R:       binary.BigEndian.Uint32(data[6:10]),
		P:       binary.BigEndian.Uint32(data[10:14]),
	}
	copy(h.Salt[:], data[14:HeaderSize])

	body := data[HeaderSize:]
	return h, body[:len(body)-TagSize], body[len(body)-TagSize:], nil
}
