// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command scryptbox encrypts and decrypts files with a passphrase,
// stretching it through a memory-hard key derivation function tuned to a
// time and memory budget.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"scryptbox/internal/wipe"
)

// PassphraseEnvVar overrides the interactive passphrase prompt, for
// scripts and tests.
const PassphraseEnvVar = "SCRYPTBOX_PASSPHRASE"

type cli struct {
	Encrypt encryptCmd `cmd:"" help:"Encrypt a file with a passphrase."`
	Decrypt decryptCmd `cmd:"" help:"Decrypt a scryptbox container."`
	Vectors vectorsCmd `cmd:"" help:"Print the known-answer vectors of the key derivation function."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli,
		kong.Name("scryptbox"),
		kong.Description("Encrypt and decrypt files with a memory-hard passphrase KDF."))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func getPassphrase(prompt string) ([]byte, error) {
	if env := os.Getenv(PassphraseEnvVar); env != "" {
		return []byte(env), nil
	}
	return readPassphrase(prompt)
}

func getPassphraseWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	if env := os.Getenv(PassphraseEnvVar); env != "" {
		return []byte(env), nil
	}

	passphrase, err := readPassphrase(prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := readPassphrase(confirmPrompt)
	if err != nil {
		wipe.Bytes(passphrase)
		return nil, err
	}
	defer wipe.Bytes(confirm)

	if !bytes.Equal(passphrase, confirm) {
		wipe.Bytes(passphrase)
		return nil, errors.New("passphrases didn't match")
	}
	return passphrase, nil
}

// readPassphrase reads from the controlling terminal so passphrases never
// mix with piped standard input.
func readPassphrase(prompt string) ([]byte, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("could not open the terminal for the passphrase prompt (set $%s to pass one in): %v",
			PassphraseEnvVar, err)
	}
	defer tty.Close()

	defer fmt.Fprintln(tty)
	fmt.Fprint(tty, prompt)

	return term.ReadPassword(int(tty.Fd()))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
