// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armor provides a strict ASCII armoring of scryptbox containers.
//
// It's PEM with type "SCRYPTBOX FILE", 64 character columns, no headers,
// and strict base64 decoding. Containers are small enough that the reader
// buffers the whole body before serving it.
package armor

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	Header = "-----BEGIN SCRYPTBOX FILE-----"
	Footer = "-----END SCRYPTBOX FILE-----"
)

const columnsPerLine = 64

type armoredWriter struct {
	closed bool
	dst    io.Writer
	buf    bytes.Buffer
}

// NewWriter returns a WriteCloser that armors everything written to it
// and flushes the framed result to dst on Close.
func NewWriter(dst io.Writer) io.WriteCloser {
	return &armoredWriter{dst: dst}
}

func (a *armoredWriter) Write(p []byte) (int, error) {
	if a.closed {
		return 0, errors.New("armor: write after close")
	}
	return a.buf.Write(p)
}

func (a *armoredWriter) Close() error {
	if a.closed {
		return errors.New("armor: already closed")
	}
	a.closed = true

	if _, err := io.WriteString(a.dst, Header+"\n"); err != nil {
		return err
	}
	body := base64.StdEncoding.EncodeToString(a.buf.Bytes())
	for len(body) > 0 {
		line := body
		if len(line) > columnsPerLine {
			line = line[:columnsPerLine]
		}
		body = body[len(line):]
		if _, err := io.WriteString(a.dst, line+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(a.dst, Footer+"\n")
	return err
}

type armoredReader struct {
	src    *bufio.Reader
	unread []byte
	err    error
}

// NewReader returns a Reader that decodes an armored container from src.
// Framing is strict: the header line comes first, body lines are 64
// columns except the last, and nothing but whitespace may follow the
// footer.
func NewReader(src io.Reader) io.Reader {
	return &armoredReader{src: bufio.NewReader(src)}
}

func (r *armoredReader) Read(p []byte) (int, error) {
	if len(r.unread) > 0 {
		n := copy(p, r.unread)
		r.unread = r.unread[n:]
		return n, nil
	}
	if r.err == nil {
		r.unread, r.err = r.decode()
		if len(r.unread) > 0 {
			n := copy(p, r.unread)
			r.unread = r.unread[n:]
			return n, nil
		}
	}
	return 0, r.err
}

func (r *armoredReader) decode() ([]byte, error) {
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if line != Header {
		return nil, fmt.Errorf("armor: first line does not begin with %q", Header)
	}

	var body bytes.Buffer
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == Footer {
			break
		}
		if len(line) > columnsPerLine {
			return nil, errors.New("armor: column limit exceeded")
		}
		if len(line) < columnsPerLine {
			// Only the final body line may be short.
			body.WriteString(line)
			if line, err = r.readLine(); err != nil {
				return nil, err
			}
			if line != Footer {
				return nil, errors.New("armor: invalid closing line")
			}
			break
		}
		body.WriteString(line)
	}

	if err := r.expectTrailingWhitespace(); err != nil {
		return nil, err
	}

	out, err := base64.StdEncoding.Strict().DecodeString(body.String())
	if err != nil {
		return nil, fmt.Errorf("armor: invalid base64: %v", err)
	}
	return out, io.EOF
}

func (r *armoredReader) readLine() (string, error) {
	line, err := r.src.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", io.ErrUnexpectedEOF
	} else if err != nil && err != io.EOF {
		return "", err
	}
	line = trimEOL(line)
	return line, nil
}

func (r *armoredReader) expectTrailingWhitespace() error {
	for {
		b, err := r.src.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
		default:
			return errors.New("armor: trailing data after closing line")
		}
	}
}

func trimEOL(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
