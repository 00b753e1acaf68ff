// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package romix implements the sequential memory-hard mixing core of the
// key derivation function: BlockMix diffuses state across a 2·r-block
// buffer with the Salsa20/8 core, and Smix expands a buffer into a large
// lookup table and then re-reads it at data-dependent indices.
//
// The table indices in the second phase of Smix are derived from
// intermediate state on purpose: the unpredictable reads are what makes
// the function memory-hard. Constant-time rules apply to the Salsa20/8
// layer below and to tag comparison above, not here.
package romix

import (
	"encoding/binary"

	"scryptbox/internal/salsa"
)

// RowSize returns the size in bytes of one working row, 128·r.
func RowSize(r int) int { return 2 * r * salsa.BlockSize }

// BlockMix mixes the 2·r contiguous 64-byte blocks in b, using y as
// scratch of the same length. A running block is XORed with each input
// block and permuted; the resulting blocks are de-interleaved, with
// even-indexed outputs in the first half of b and odd-indexed outputs in
// the second.
//
// BlockMix panics if b and y are not the same non-zero multiple of 128
// bytes. That is a contract violation by the caller, not a runtime
// condition.
func BlockMix(b, y []byte, r int) {
	if r <= 0 || len(b) != RowSize(r) || len(y) != RowSize(r) {
		panic("romix: BlockMix buffer does not hold an even, non-zero block count")
	}

	var x [salsa.BlockSize]byte
	copy(x[:], b[(2*r-1)*salsa.BlockSize:])

	for i := 0; i < 2*r; i++ {
		blockXOR(x[:], b[i*salsa.BlockSize:], salsa.BlockSize)
		salsa.Core8(&x)
		copy(y[i*salsa.BlockSize:], x[:])
	}

	for i := 0; i < r; i++ {
		copy(b[i*salsa.BlockSize:], y[(i*2)*salsa.BlockSize:(i*2+1)*salsa.BlockSize])
	}
	for i := 0; i < r; i++ {
		copy(b[(i+r)*salsa.BlockSize:], y[(i*2+1)*salsa.BlockSize:(i*2+2)*salsa.BlockSize])
	}
}

// Smix runs the two memory-hard phases over the 128·r-byte row b: N
// BlockMix applications whose intermediate states fill the table v of N
// rows, then N rounds that each XOR in a pseudorandomly selected table row
// and mix again. v must hold 128·r·N bytes and xy twice RowSize(r) of
// scratch. N must be a power of two; callers validate parameters before
// allocating the table.
func Smix(b []byte, r, n int, v, xy []byte) {
	x := xy[:RowSize(r)]
	y := xy[RowSize(r):]

	copy(x, b)
	for i := 0; i < n; i++ {
		copy(v[i*RowSize(r):], x)
		BlockMix(x, y, r)
	}

	for i := 0; i < n; i++ {
		j := int(integerify(x, r) & uint64(n-1))
		blockXOR(x, v[j*RowSize(r):], RowSize(r))
		BlockMix(x, y, r)
	}

	copy(b, x)
}

// integerify interprets the last 64-byte block of the row as a
// little-endian integer. Only the low bits survive the masking in Smix.
func integerify(b []byte, r int) uint64 {
	return binary.LittleEndian.Uint64(b[(2*r-1)*salsa.BlockSize:])
}

func blockXOR(dst, src []byte, n int) {
	for i, v := range src[:n] {
		dst[i] ^= v
	}
}
