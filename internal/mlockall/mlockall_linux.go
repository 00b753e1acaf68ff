// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux && mlock

// Package mlockall locks the process address space into RAM, so
// passwords and derived keys can't be written out to swap. It is opt-in
// via the mlock build tag because locking requires CAP_IPC_LOCK or a
// generous RLIMIT_MEMLOCK, and the working table of a tuned derivation
// can be large.
package mlockall

import (
	"log"

	"golang.org/x/sys/unix"
)

func init() {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		log.Fatalf("scryptbox: can't lock memory pages in RAM: %v", err)
	}
}
