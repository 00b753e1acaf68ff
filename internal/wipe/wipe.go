// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wipe zeroes buffers that held secret material.
package wipe

import "runtime"

// Bytes overwrites b with zeros. The KeepAlive prevents the write from
// being elided when b is about to go out of scope.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
