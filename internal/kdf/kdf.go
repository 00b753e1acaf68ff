// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kdf implements the memory-hard password-based key derivation
// function and the cost-parameter selection that tunes it to a time and
// memory budget.
//
// The construction is scrypt as published by Percival: a single-iteration
// PBKDF2-HMAC-SHA256 pass expands the password and salt into p rows of
// 128·r bytes, each row is mixed by the sequential memory-hard core, and a
// second single-iteration PBKDF2 pass over the mixed rows produces the
// requested key length. Derivation is bit-compatible with RFC 7914, so the
// published test vectors pin every layer of the implementation.
package kdf

import (
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/pbkdf2"

	"scryptbox/internal/romix"
	"scryptbox/internal/wipe"
)

var (
	// ErrInvalidParams is returned when a cost parameter triple violates
	// the parameter invariants. It is reported before any derivation work
	// starts.
	ErrInvalidParams = errors.New("kdf: invalid cost parameters")

	// ErrMemoryLimit is returned when a derivation would need more memory
	// than the caller's ceiling allows.
	ErrMemoryLimit = errors.New("kdf: derivation would exceed the memory limit")
)

const maxInt = int(^uint(0) >> 1)

// CheckParams reports whether the cost triple satisfies the parameter
// invariants: N a power of two greater than one, r and p positive, r·p
// below 2³⁰, and the working table addressable on this platform.
func CheckParams(n, r, p int) error {
	if n <= 1 || n&(n-1) != 0 {
		return ErrInvalidParams
	}
	if r <= 0 || p <= 0 {
		return ErrInvalidParams
	}
	if uint64(r)*uint64(p) >= 1<<30 {
		return ErrInvalidParams
	}
	if r > maxInt/256 || r > maxInt/128/p || n > maxInt/128/r {
		return ErrInvalidParams
	}
	return nil
}

// MemoryRequired returns the size in bytes of the lookup table one
// memory-hard instance needs, 128·N·r. The p instances run one at a time
// and share the table, so this is also the derivation's peak usage.
func MemoryRequired(n, r int) int64 {
	return 128 * int64(n) * int64(r)
}

// Key derives keyLen bytes from the password and salt under the cost
// parameters (n, r, p). All intermediate buffers are zeroed before Key
// returns; the caller owns password, salt, and the returned key.
func Key(password, salt []byte, n, r, p, keyLen int) ([]byte, error) {
	if err := CheckParams(n, r, p); err != nil {
		return nil, err
	}

	b := pbkdf2.Key(password, salt, 1, p*romix.RowSize(r), sha256.New)
	defer wipe.Bytes(b)

	v := make([]byte, n*romix.RowSize(r))
	defer wipe.Bytes(v)
	xy := make([]byte, 2*romix.RowSize(r))
	defer wipe.Bytes(xy)

	// The p instances share no state and are defined to be independent,
	// but running them in sequence over one table keeps peak memory at
	// 128·N·r regardless of p, which is what the parameter selector
	// assumes when it trades p for N under a memory ceiling.
	for i := 0; i < p; i++ {
		romix.Smix(b[i*romix.RowSize(r):(i+1)*romix.RowSize(r)], r, n, v, xy)
	}

	return pbkdf2.Key(password, b, 1, keyLen, sha256.New), nil
}
