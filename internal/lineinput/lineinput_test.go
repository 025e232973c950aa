// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lineinput

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufio_ReadLine(t *testing.T) {
	var out bytes.Buffer

	r := NewBufio(strings.NewReader("echo hello\n\ncat < out.txt"), &out)

	line, err := r.ReadLine("cssh$ ")
	require.NoError(t, err)
	assert.Equal(t, "echo hello\n", line)

	line, err = r.ReadLine("cssh$ ")
	require.NoError(t, err)
	assert.Equal(t, "\n", line)

	line, err = r.ReadLine("cssh$ ")
	require.NoError(t, err)
	assert.Equal(t, "cat < out.txt", line, "unterminated last line is still delivered")

	_, err = r.ReadLine("cssh$ ")
	assert.ErrorIs(t, err, io.EOF)
	assert.NotErrorIs(t, err, ErrRead)

	assert.Equal(t, strings.Repeat("cssh$ ", 4), out.String(), "prompt is written before every read")
	assert.NoError(t, r.Close())
}

func TestBufio_EmptyInput(t *testing.T) {
	r := NewBufio(strings.NewReader(""), nil)

	_, err := r.ReadLine("")
	assert.ErrorIs(t, err, io.EOF)

	_, err = r.ReadLine("")
	assert.ErrorIs(t, err, io.EOF, "EOF is sticky")
}

func TestBufio_ReadFailure(t *testing.T) {
	boom := errors.New("device gone")
	r := NewBufio(iotest.ErrReader(boom), io.Discard)

	_, err := r.ReadLine("cssh$ ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestLinerResult(t *testing.T) {
	boom := errors.New("tty lost")

	tests := []struct {
		name     string
		line     string
		err      error
		wantLine string
		wantErr  error
	}{
		{name: "line", line: "ls -l", wantLine: "ls -l"},
		{name: "ctrl-c gives an empty line", err: liner.ErrPromptAborted},
		{name: "ctrl-d is end of input", err: io.EOF, wantErr: io.EOF},
		{name: "other errors are read failures", err: boom, wantErr: ErrRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := linerResult(tt.line, tt.err)
			assert.Equal(t, tt.wantLine, line)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
