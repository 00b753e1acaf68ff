// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ctrhmac seals container payloads with AES-256-CTR and
// HMAC-SHA256 in an encrypt-then-MAC composition. The counter starts at
// zero: the encryption key is derived fresh from a unique salt for every
// container, so the keystream is never reused.
//
// Open verifies the tag before a single byte is decrypted. On a tag
// mismatch it returns ErrAuthentication and no plaintext, whether the
// cause is a wrong password, corruption, or tampering.
package ctrhmac

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

const (
	// KeySize is the size of each of the two keys Seal and Open take.
	KeySize = 32

	// TagSize is the size of the authentication tag.
	TagSize = sha256.Size
)

// ErrAuthentication is returned when a container fails tag verification.
var ErrAuthentication = errors.New("ctrhmac: message authentication failed")

// Seal encrypts plaintext under encKey and returns the ciphertext along
// with a tag over header and ciphertext keyed by macKey. The ciphertext
// has the same length as the plaintext.
func Seal(encKey, macKey, header, plaintext []byte) (ciphertext, tag []byte) {
	ciphertext = make([]byte, len(plaintext))
	keystream(encKey).XORKeyStream(ciphertext, plaintext)
	return ciphertext, computeTag(macKey, header, ciphertext)
}

// Open verifies the tag over header and ciphertext and, only on success,
// decrypts and returns the plaintext.
func Open(encKey, macKey, header, ciphertext, tag []byte) ([]byte, error) {
	if !hmac.Equal(tag, computeTag(macKey, header, ciphertext)) {
		return nil, ErrAuthentication
	}

	plaintext := make([]byte, len(ciphertext))
	keystream(encKey).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

func keystream(encKey []byte) cipher.Stream {
	b, err := aes.NewCipher(encKey)
	if err != nil {
		panic("ctrhmac: bad AES key size: " + err.Error())
	}
	return cipher.NewCTR(b, make([]byte, aes.BlockSize))
}

// The header is fixed-length for a given container version, so the plain
// header || ciphertext concatenation is unambiguous.
func computeTag(macKey, header, ciphertext []byte) []byte {
	h := hmac.New(sha256.New, macKey)
	h.Write(header)
	h.Write(ciphertext)
	return h.Sum(nil)
}
