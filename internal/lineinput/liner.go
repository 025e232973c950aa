// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lineinput

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

var _ Reader = (*Liner)(nil)

// Liner is a Reader for interactive terminals with line editing.
// No history is kept.
type Liner struct {
	state *liner.State
}

// NewLiner takes over the controlling terminal until Close is called.
func NewLiner() *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &Liner{state: state}
}

// ReadLine prompts on the terminal. Ctrl+C abandons the line and yields an empty one.
func (l *Liner) ReadLine(prompt string) (string, error) {
	return linerResult(l.state.Prompt(prompt))
}

// Close restores the terminal mode.
func (l *Liner) Close() error {
	return l.state.Close()
}

func linerResult(line string, err error) (string, error) {
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, liner.ErrPromptAborted):
		return "", nil
	case errors.Is(err, io.EOF):
		return "", io.EOF
	default:
		return "", errors.Join(ErrRead, err)
	}
}
