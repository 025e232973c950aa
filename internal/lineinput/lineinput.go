// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lineinput prints the prompt and reads one line of input at a time.
//
// End of input is reported as io.EOF. Any other failure of the underlying
// stream is wrapped with ErrRead so the caller can tell the two apart.
package lineinput

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrRead is returned when the input stream fails for a reason other than end of input.
var ErrRead = errors.New("read failure")

// Reader reads one line per call after writing the prompt.
type Reader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

var _ Reader = (*Bufio)(nil)

// Bufio is a Reader over any byte stream. It is used for pipes, files and scripts.
type Bufio struct {
	r   *bufio.Reader
	w   io.Writer
	eof bool
}

// NewBufio returns a Reader that writes prompts to w and reads lines from r.
func NewBufio(r io.Reader, w io.Writer) *Bufio {
	return &Bufio{
		r: bufio.NewReader(r),
		w: w,
	}
}

// ReadLine writes prompt and returns the next line including its newline.
// A last line without a newline is still returned, so a session runs it as a command
// rather than dropping it; io.EOF follows on the next call.
func (b *Bufio) ReadLine(prompt string) (string, error) {
	if prompt != "" && b.w != nil {
		_, _ = io.WriteString(b.w, prompt) //nolint:errcheck
	}

	if b.eof {
		return "", io.EOF
	}

	line, err := b.r.ReadString('\n')

	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, io.EOF):
		b.eof = true

		if line == "" {
			return "", io.EOF
		}

		return line, nil
	default:
		return "", errors.Join(ErrRead, err)
	}
}

// Close is a no-op; the underlying stream belongs to the caller.
func (b *Bufio) Close() error {
	return nil
}

// IsTerminal reports whether both files are attached to a terminal.
func IsTerminal(in, out *os.File) bool {
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
