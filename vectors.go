// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scryptbox

import (
	"fmt"
	"io"

	"scryptbox/internal/kdf"
)

// A vector is one fixed known-answer tuple for the key derivation
// function. The fixture table is immutable; WriteVectors iterates it
// afresh on every call.
type vector struct {
	password, salt string
	n, r, p        int
	keyLen         int
}

// The RFC 7914 scrypt test vectors that fit in a test memory budget. The
// fourth published vector (N=2²⁰) needs a 1 GiB table and is exercised
// manually, not here.
var vectors = []vector{
	{"", "", 16, 1, 1, 64},
	{"password", "NaCl", 1024, 8, 16, 64},
	{"pleaseletmein", "SodiumChloride", 16384, 8, 1, 64},
}

// WriteVectors derives every fixture tuple and writes one line per tuple
// in a stable format. Any difference from the checked-in reference output
// signals a regression in the derivation function.
func WriteVectors(w io.Writer) error {
	for _, v := range vectors {
		dk, err := kdf.Key([]byte(v.password), []byte(v.salt), v.n, v.r, v.p, v.keyLen)
		if err != nil {
			return fmt.Errorf("deriving vector (%q, %q): %w", v.password, v.salt, err)
		}
		if _, err := fmt.Fprintf(w, "scrypt(%q, %q, %d, %d, %d, %d) = %x\n",
			v.password, v.salt, v.n, v.r, v.p, v.keyLen, dk); err != nil {
			return err
		}
	}
	return nil
}
