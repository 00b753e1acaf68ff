// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armor

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, payload []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := io.ReadAll(NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip = %x, want %x", got, payload)
	}
	return buf.String()
}

func TestRoundTrip(t *testing.T) {
	// 48 payload bytes encode to exactly one full 64 column line, 49 to a
	// full line plus a short one.
	for _, size := range []int{0, 1, 47, 48, 49, 100, 1000} {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i)
		}
		armored := roundTrip(t, payload)

		if !strings.HasPrefix(armored, Header+"\n") {
			t.Errorf("size %d: missing header line", size)
		}
		if !strings.HasSuffix(armored, Footer+"\n") {
			t.Errorf("size %d: missing footer line", size)
		}
		for _, line := range strings.Split(strings.TrimSuffix(armored, "\n"), "\n") {
			if len(line) > columnsPerLine {
				t.Errorf("size %d: %d column line", size, len(line))
			}
		}
	}
}

func TestWriteAfterClose(t *testing.T) {
	w := NewWriter(io.Discard)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("Write after Close succeeded")
	}
	if err := w.Close(); err == nil {
		t.Error("second Close succeeded")
	}
}

func TestReaderRejectsMalformedInput(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write(bytes.Repeat([]byte{0x42}, 100))
	w.Close()
	good := buf.String()

	for _, tt := range []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing header", strings.TrimPrefix(good, Header+"\n")},
		{"wrong header type", strings.Replace(good, "SCRYPTBOX FILE", "PGP MESSAGE", 1)},
		{"missing footer", strings.TrimSuffix(good, Footer+"\n")},
		{"trailing data", good + "extra"},
		{"long line", Header + "\n" + strings.Repeat("A", 68) + "\n" + Footer + "\n"},
		{"short line before a body line", Header + "\nQUJD\nQUJD\n" + Footer + "\n"},
		{"bad base64", Header + "\n!!!!\n" + Footer + "\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := io.ReadAll(NewReader(strings.NewReader(tt.input))); err == nil {
				t.Error("ReadAll succeeded on malformed armor")
			}
		})
	}
}

func TestReaderAcceptsTrailingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write([]byte("payload"))
	w.Close()

	got, err := io.ReadAll(NewReader(strings.NewReader(buf.String() + " \t\r\n\n")))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("payload")) {
		t.Errorf("round trip = %q, want %q", got, "payload")
	}
}
