// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scryptbox implements password-based encryption of whole files.
//
// A key is stretched from the password with a sequential memory-hard
// derivation function (scrypt), the plaintext is sealed with AES-256-CTR
// and HMAC-SHA256, and the cost parameters and salt are recorded in a
// small binary container header so decryption re-derives the identical
// key. Encrypt tunes the cost parameters to a wall-clock and memory
// budget; Decrypt uses the recorded parameters verbatim and never
// recomputes them.
//
// Passwords and plaintexts are held in caller-owned buffers; the package
// does not retain references to them, zeroes every internal copy of key
// material before returning, and never includes secret bytes in an error.
package scryptbox

import (
	"crypto/rand"
	"math/bits"
	"time"

	"scryptbox/internal/ctrhmac"
	"scryptbox/internal/format"
	"scryptbox/internal/kdf"
	"scryptbox/internal/wipe"
)

// Params pins explicit key derivation cost parameters: N = 1<<LogN, the
// block size r, and the parallelism p. Most callers should let Encrypt
// tune parameters instead.
type Params struct {
	LogN uint8
	R, P int
}

// Limits bounds the resources a derivation may consume. For Encrypt, zero
// fields select DefaultMaxTime and DefaultMaxMemory. For
// DecryptWithLimits, a zero MaxMemory selects DefaultDecryptMemory, a
// negative MaxMemory disables the memory check, and a zero MaxTime
// disables the time check.
type Limits struct {
	MaxTime   time.Duration
	MaxMemory int64
}

const (
	// DefaultMaxTime is the encryption time budget when none is given.
	DefaultMaxTime = 1 * time.Second

	// DefaultMaxMemory is the encryption memory ceiling when none is
	// given.
	DefaultMaxMemory = 1 << 28 // 256 MiB

	// DefaultDecryptMemory is how much memory Decrypt is willing to spend
	// on a container's recorded parameters before refusing. Containers
	// produced with a larger ceiling need DecryptWithLimits.
	DefaultDecryptMemory = 1 << 30 // 1 GiB
)

const derivedKeyLen = 2 * ctrhmac.KeySize

// Encrypt seals plaintext under the password and returns the container
// bytes. Cost parameters are tuned by a short calibration run so that
// derivation approaches limits.MaxTime without exceeding limits.MaxMemory;
// the chosen parameters and a fresh random salt are recorded in the
// container header.
func Encrypt(password, plaintext []byte, limits Limits) ([]byte, error) {
	if limits.MaxTime <= 0 {
		limits.MaxTime = DefaultMaxTime
	}
	if limits.MaxMemory <= 0 {
		limits.MaxMemory = DefaultMaxMemory
	}

	perf, err := kdf.Calibrate(calibrationBudget(limits.MaxTime))
	if err != nil {
		return nil, err
	}
	n, r, p, err := kdf.Pick(perf, limits.MaxTime, limits.MaxMemory)
	if err != nil {
		return nil, err
	}
	return seal(password, plaintext, n, r, p)
}

// EncryptWithParams seals plaintext under the password with pinned cost
// parameters, skipping calibration. The salt is still fresh per call, so
// two encryptions of the same plaintext produce different containers.
func EncryptWithParams(password, plaintext []byte, params Params) ([]byte, error) {
	if params.LogN == 0 || params.LogN >= 63 {
		return nil, ErrInvalidParams
	}
	return seal(password, plaintext, 1<<params.LogN, params.R, params.P)
}

func seal(password, plaintext []byte, n, r, p int) ([]byte, error) {
	if err := kdf.CheckParams(n, r, p); err != nil {
		return nil, err
	}

	hdr := &format.Header{
		Version: format.Version1,
		LogN:    uint8(bits.TrailingZeros(uint(n))),
		R:       uint32(r),
		P:       uint32(p),
	}
	if _, err := rand.Read(hdr.Salt[:]); err != nil {
		return nil, err
	}

	keys, err := kdf.Key(password, hdr.Salt[:], n, r, p, derivedKeyLen)
	if err != nil {
		return nil, err
	}
	defer wipe.Bytes(keys)

	header := hdr.Marshal()
	ciphertext, tag := ctrhmac.Seal(keys[:ctrhmac.KeySize], keys[ctrhmac.KeySize:], header, plaintext)
	return format.Encode(hdr, ciphertext, tag), nil
}

// Decrypt opens a container with the password, re-deriving the key from
// the recorded parameters and salt. The authentication tag is verified
// before any ciphertext is decrypted. Containers whose parameters need
// more than DefaultDecryptMemory are refused; see DecryptWithLimits.
func Decrypt(password, data []byte) ([]byte, error) {
	return open(password, data, Limits{MaxMemory: DefaultDecryptMemory})
}

// DecryptWithLimits is Decrypt with explicit resource ceilings. A
// container whose recorded parameters would exceed limits.MaxMemory is
// refused with ErrMemoryLimit; one whose estimated derivation time would
// exceed a non-zero limits.MaxTime is refused with ErrTimeLimit. The
// estimate comes from a short calibration run, never from the container.
func DecryptWithLimits(password, data []byte, limits Limits) ([]byte, error) {
	if limits.MaxMemory == 0 {
		limits.MaxMemory = DefaultDecryptMemory
	}
	return open(password, data, limits)
}

func open(password, data []byte, limits Limits) ([]byte, error) {
	hdr, ciphertext, tag, err := format.Decode(data)
	if err != nil {
		return nil, err
	}

	if hdr.LogN == 0 || hdr.LogN >= 63 || hdr.R >= 1<<30 || hdr.P >= 1<<30 {
		return nil, ErrInvalidParams
	}
	n, r, p := 1<<hdr.LogN, int(hdr.R), int(hdr.P)
	if err := kdf.CheckParams(n, r, p); err != nil {
		return nil, err
	}

	if limits.MaxMemory > 0 && kdf.MemoryRequired(n, r) > limits.MaxMemory {
		return nil, ErrMemoryLimit
	}
	if limits.MaxTime > 0 {
		perf, err := kdf.Calibrate(calibrationBudget(limits.MaxTime))
		if err != nil {
			return nil, err
		}
		if kdf.EstimateTime(perf, n, r, p) > limits.MaxTime {
			return nil, ErrTimeLimit
		}
	}

	keys, err := kdf.Key(password, hdr.Salt[:], n, r, p, derivedKeyLen)
	if err != nil {
		return nil, err
	}
	defer wipe.Bytes(keys)

	return ctrhmac.Open(keys[:ctrhmac.KeySize], keys[ctrhmac.KeySize:], hdr.Marshal(), ciphertext, tag)
}

// calibrationBudget caps how much of the caller's time budget the tuning
// measurement itself may burn.
func calibrationBudget(maxTime time.Duration) time.Duration {
	budget := maxTime / 10
	if budget > 100*time.Millisecond {
		budget = 100 * time.Millisecond
	}
	if budget < time.Millisecond {
		budget = time.Millisecond
	}
	return budget
}
