// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleHeader() *Header {
	h := &Header{Version: Version1, LogN: 14, R: 8, P: 2}
	for i := range h.Salt {
		h.Salt[i] = byte(i)
	}
	return h
}

func TestRoundTrip(t *testing.T) {
	h := sampleHeader()
	ciphertext := []byte("opaque bytes, never interpreted here")
	tag := bytes.Repeat([]byte{0xAB}, TagSize)

	data := Encode(h, ciphertext, tag)
	if len(data) != HeaderSize+len(ciphertext)+TagSize {
		t.Fatalf("container is %d bytes, want %d", len(data), HeaderSize+len(ciphertext)+TagSize)
	}

	gotH, gotC, gotT, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(h, gotH); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if !bytes.Equal(gotC, ciphertext) {
		t.Errorf("ciphertext = %q, want %q", gotC, ciphertext)
	}
	if !bytes.Equal(gotT, tag) {
		t.Errorf("tag = %x, want %x", gotT, tag)
	}
}

func TestRoundTripEmptyCiphertext(t *testing.T) {
	h := sampleHeader()
	tag := make([]byte, TagSize)

	_, gotC, _, err := Decode(Encode(h, nil, tag))
	if err != nil {
		t.Fatal(err)
	}
	if len(gotC) != 0 {
		t.Errorf("ciphertext = %x, want empty", gotC)
	}
}

func TestDecodeErrors(t *testing.T) {
	good := Encode(sampleHeader(), []byte("data"), make([]byte, TagSize))

	badMagic := append([]byte(nil), good...)
	badMagic[0] = 'X'

	badVersion := append([]byte(nil), good...)
	badVersion[4] = 0x02

	for _, tt := range []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short magic", []byte("sb"), ErrTruncated},
		{"magic only", []byte("sbox"), ErrTruncated},
		{"header cut short", good[:HeaderSize-1], ErrTruncated},
		{"tag cut short", good[:HeaderSize+TagSize-1], ErrTruncated},
		{"bad magic", badMagic, ErrBadMagic},
		{"bad version", badVersion, ErrUnsupportedVersion},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := Decode(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Decode = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMarshalIsDecodeInput(t *testing.T) {
	h := sampleHeader()
	if got := h.Marshal(); len(got) != HeaderSize {
		t.Errorf("Marshal returned %d bytes, want %d", len(got), HeaderSize)
	}
}
