// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scryptbox

import (
	"errors"

	"scryptbox/internal/ctrhmac"
	"scryptbox/internal/format"
	"scryptbox/internal/kdf"
)

// The package's error taxonomy. Failures are typed and carry no secret
// material; an authentication failure looks the same whether the password
// was wrong or the container was tampered with.
var (
	// ErrInvalidParams reports a cost parameter triple that violates the
	// parameter invariants, rejected before any derivation work.
	ErrInvalidParams = kdf.ErrInvalidParams

	// ErrMemoryLimit reports that a derivation would exceed the
	// applicable memory ceiling.
	ErrMemoryLimit = kdf.ErrMemoryLimit

	// ErrTimeLimit reports that decryption was refused because the
	// recorded parameters would take longer than the caller allows.
	ErrTimeLimit = errors.New("scryptbox: parameters exceed the decryption time limit")

	// ErrCalibration reports that parameter tuning could not complete
	// within its time budget.
	ErrCalibration = kdf.ErrCalibration

	// ErrBadMagic, ErrUnsupportedVersion, and ErrTruncated report a
	// malformed container.
	ErrBadMagic           = format.ErrBadMagic
	ErrUnsupportedVersion = format.ErrUnsupportedVersion
	ErrTruncated          = format.ErrTruncated

	// ErrAuthentication reports a tag mismatch. No plaintext is produced.
	ErrAuthentication = ctrhmac.ErrAuthentication
)
