// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
)

// ErrRepeatedSignal is the cancellation cause when a signal arrives twice in one cycle.
var ErrRepeatedSignal = errors.New("received the same signal twice")

type watchdogKey struct{}

// Watchdog counts termination signals per command cycle.
// A second signal of one kind within a cycle cancels the context given to Watch.
type Watchdog struct {
	reset chan struct{}
	done  chan struct{}
}

// NewWatchdog returns a Watchdog that is not yet watching.
func NewWatchdog() *Watchdog {
	return &Watchdog{
		reset: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// NewContext stores w in ctx.
func NewContext(ctx context.Context, w *Watchdog) context.Context {
	return context.WithValue(ctx, watchdogKey{}, w)
}

// FromContext returns the Watchdog stored by NewContext, if any.
func FromContext(ctx context.Context) (*Watchdog, bool) {
	w, ok := ctx.Value(watchdogKey{}).(*Watchdog)
	return w, ok && w != nil
}

// Reset forgets the signals seen so far. It returns once Watch has done so, or
// immediately if Watch has returned.
func (w *Watchdog) Reset() {
	select {
	case w.reset <- struct{}{}:
	case <-w.done:
	}
}

// Watch monitors the signal channel until it is closed, ctx is done, or a signal is
// received twice between two calls to Reset. In the last case cancel is called with a
// cause wrapping ErrRepeatedSignal. Watch must only be called once.
func (w *Watchdog) Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelCauseFunc) {
	defer close(w.done)

	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.reset:
			clear(seen)
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Logger(ctx).Info("watchdog",
					"detail", "received second signal of type, ending session",
					"signal", sig.String())
				cancel(fmt.Errorf("%w: %s", ErrRepeatedSignal, sig))

				return
			}

			ctxlog.Logger(ctx).Debug("watchdog",
				"detail", "received first signal of type, left to the foreground child",
				"signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
