// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package redirect

import (
	"context"
	"errors"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/spf13/afero"
)

// DefaultPerm is the mode of files created by '>' and '>>': owner read/write.
const DefaultPerm os.FileMode = 0o600

// ErrOpen is returned when a redirection target cannot be opened.
var ErrOpen = errors.New("cannot open redirection target")

// Opener opens redirection targets on a filesystem.
type Opener struct {
	Fs   afero.Fs
	Perm os.FileMode
}

// NewOpener returns an Opener on the operating system's filesystem.
func NewOpener(perm os.FileMode) *Opener {
	return &Opener{
		Fs:   afero.NewOsFs(),
		Perm: perm,
	}
}

// Streams are the opened targets of one command. Nil fields keep the default stream.
type Streams struct {
	Stdin  afero.File
	Stdout afero.File
}

// Close closes every opened target and reports all failures.
func (s *Streams) Close() error {
	if s == nil {
		return nil
	}

	var result *multierror.Error

	for _, f := range []afero.File{s.Stdin, s.Stdout} {
		if f == nil {
			continue
		}

		if err := f.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// Open opens the plan's targets in order. If one fails, those already opened are
// closed and the error wraps ErrOpen and the system reason.
func (o *Opener) Open(ctx context.Context, plan *Plan) (*Streams, error) {
	logger := ctxlog.Logger(ctx)
	streams := &Streams{}

	perm := o.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	for _, d := range plan.Directives {
		logger.Debug("opening redirection target", "operator", d.Kind.String(), "path", d.Path)

		f, err := o.Fs.OpenFile(d.Path, d.Kind.Flags(), perm)
		if err != nil {
			return nil, errors.Join(ErrOpen, err, streams.Close())
		}

		if d.Kind == Input {
			streams.Stdin = f
		} else {
			streams.Stdout = f
		}
	}

	return streams, nil
}
