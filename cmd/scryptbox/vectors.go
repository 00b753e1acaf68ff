// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"scryptbox"
)

type vectorsCmd struct{}

func (cmd *vectorsCmd) Run() error {
	return scryptbox.WriteVectors(os.Stdout)
}
