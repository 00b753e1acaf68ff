// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"time"

	"scryptbox"
	"scryptbox/armor"
	"scryptbox/internal/wipe"
)

type encryptCmd struct {
	Input  string `arg:"" help:"Path to the plaintext file, or \"-\" for standard input."`
	Output string `arg:"" help:"Path for the container, or \"-\" for standard output."`

	MaxTime   time.Duration `default:"1s" help:"Time budget for key derivation."`
	MaxMemory int64         `default:"256" help:"Memory ceiling for key derivation, in MiB."`
	LogN      uint8         `name:"logn" help:"Pin the work parameter to N=2^logn instead of tuning."`
	R         int           `name:"r" default:"8" help:"Block size parameter when pinning."`
	P         int           `name:"p" default:"1" help:"Parallelism parameter when pinning."`
	Armor     bool          `short:"a" help:"Write an ASCII-armored container."`
}

func (cmd *encryptCmd) Run() error {
	plaintext, err := readInput(cmd.Input)
	if err != nil {
		return err
	}

	passphrase, err := getPassphraseWithConfirm("Enter passphrase: ", "Confirm passphrase: ")
	if err != nil {
		return err
	}
	defer wipe.Bytes(passphrase)

	var container []byte
	if cmd.LogN > 0 {
		container, err = scryptbox.EncryptWithParams(passphrase, plaintext, scryptbox.Params{
			LogN: cmd.LogN, R: cmd.R, P: cmd.P,
		})
	} else {
		container, err = scryptbox.Encrypt(passphrase, plaintext, scryptbox.Limits{
			MaxTime: cmd.MaxTime, MaxMemory: cmd.MaxMemory << 20,
		})
	}
	if err != nil {
		return err
	}

	if cmd.Armor {
		var buf bytes.Buffer
		w := armor.NewWriter(&buf)
		if _, err := w.Write(container); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		container = buf.Bytes()
	}

	return writeOutput(cmd.Output, container)
}
