// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"time"

	"scryptbox"
	"scryptbox/armor"
	"scryptbox/internal/wipe"
)

type decryptCmd struct {
	Input  string `arg:"" help:"Path to the container, or \"-\" for standard input."`
	Output string `arg:"" help:"Path for the plaintext, or \"-\" for standard output."`

	MaxTime   time.Duration `default:"0" help:"Refuse containers whose parameters would take longer than this; 0 disables the check."`
	MaxMemory int64         `default:"1024" help:"Refuse containers whose parameters need more than this much memory, in MiB."`
	Armor     bool          `short:"a" help:"Read an ASCII-armored container."`
}

func (cmd *decryptCmd) Run() error {
	container, err := readInput(cmd.Input)
	if err != nil {
		return err
	}

	if cmd.Armor {
		container, err = io.ReadAll(armor.NewReader(bytes.NewReader(container)))
		if err != nil {
			return err
		}
	}

	passphrase, err := getPassphrase("Enter passphrase: ")
	if err != nil {
		return err
	}
	defer wipe.Bytes(passphrase)

	plaintext, err := scryptbox.DecryptWithLimits(passphrase, container, scryptbox.Limits{
		MaxTime: cmd.MaxTime, MaxMemory: cmd.MaxMemory << 20,
	})
	if err != nil {
		return err
	}

	return writeOutput(cmd.Output, plaintext)
}
