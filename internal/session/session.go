// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/cssh/internal/color"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
	"github.com/matt-FFFFFF/cssh/internal/launcher"
	"github.com/matt-FFFFFF/cssh/internal/lineinput"
	"github.com/matt-FFFFFF/cssh/internal/redirect"
	"github.com/matt-FFFFFF/cssh/internal/tokenize"
)

const (
	// DefaultPrompt is written before each line is read.
	DefaultPrompt = "cssh$ "
	// DefaultExitCommand ends the session when it is the first token of a line.
	DefaultExitCommand = "exit"
	// DiagnosticPrefix starts every diagnostic line.
	DiagnosticPrefix = "cssh:"
)

// SignalCounter forgets the termination signals counted so far.
// signalbroker.Watchdog implements it.
type SignalCounter interface {
	Reset()
}

// Options configure a Session. Zero fields take the defaults documented on New.
type Options struct {
	Reader      lineinput.Reader
	Prompt      string
	NoPrompt    bool
	ExitCommand string
	Opener      *redirect.Opener
	Launcher    *launcher.Launcher
	Stderr      io.Writer
	// Signals, if set, is reset at the start of every cycle so that repeated
	// signals are only counted against the current command.
	Signals SignalCounter
}

// Session is one run of the interpreter. It is not safe for concurrent use.
type Session struct {
	reader      lineinput.Reader
	prompt      string
	exitCommand string
	opener      *redirect.Opener
	launcher    *launcher.Launcher
	stderr      io.Writer
	signals     SignalCounter
	state       State
	lastStatus  int
}

// New builds a Session. Defaults: a plain reader on stdin, DefaultPrompt (unless
// NoPrompt), DefaultExitCommand, an OS opener with redirect.DefaultPerm, a launcher on
// the process's standard streams and diagnostics to stderr.
func New(opts Options) *Session {
	s := &Session{
		reader:      opts.Reader,
		prompt:      opts.Prompt,
		exitCommand: opts.ExitCommand,
		opener:      opts.Opener,
		launcher:    opts.Launcher,
		stderr:      opts.Stderr,
		signals:     opts.Signals,
	}

	if s.stderr == nil {
		s.stderr = os.Stderr
	}

	if s.reader == nil {
		s.reader = lineinput.NewBufio(os.Stdin, os.Stdout)
	}

	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}

	if opts.NoPrompt {
		s.prompt = ""
	}

	if s.exitCommand == "" {
		s.exitCommand = DefaultExitCommand
	}

	if s.opener == nil {
		s.opener = redirect.NewOpener(redirect.DefaultPerm)
	}

	if s.launcher == nil {
		s.launcher = launcher.New()
	}

	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// LastStatus returns the exit status of the last command: the child's status, 1 for
// a command that failed before or while executing, 0 for a line that ran nothing.
func (s *Session) LastStatus() int {
	return s.lastStatus
}

// Run steps until the session ends. It returns nil at end of input or on the exit
// command, and the fatal error otherwise.
func (s *Session) Run(ctx context.Context) error {
	for {
		done, err := s.Step(ctx)
		if err != nil {
			return err
		}

		if done {
			return nil
		}
	}
}

// Step runs one cycle. done is true once the session has reached Exit.
func (s *Session) Step(ctx context.Context) (bool, error) {
	if s.state == Exit {
		return true, nil
	}

	// Reset returns only after the watchdog has either cleared its counts or cancelled
	// ctx, so the check below sees any cancellation from the previous cycle.
	if s.signals != nil {
		s.signals.Reset()
	}

	if ctx.Err() != nil {
		cause := context.Cause(ctx)
		s.diagnose("signal", cause)
		s.lastStatus = 1
		s.setState(ctx, Exit)

		return true, cause
	}

	s.setState(ctx, Reading)

	line, err := s.reader.ReadLine(s.prompt)

	switch {
	case errors.Is(err, io.EOF):
		ctxlog.Debug(ctx, "end of input")
		s.setState(ctx, Exit)

		return true, nil
	case err != nil:
		s.diagnose("read", err)
		s.lastStatus = 1
		s.setState(ctx, Exit)

		return true, err
	}

	tokens := tokenize.Split(line)
	if len(tokens) == 0 {
		s.setState(ctx, EmptyLine)
		s.setState(ctx, Idle)

		return false, nil
	}

	s.setState(ctx, Parsed)

	if tokens[0] == s.exitCommand {
		s.setState(ctx, Terminate)
		s.setState(ctx, Exit)

		return true, nil
	}

	if err := s.execute(ctx, tokens); err != nil {
		s.setState(ctx, Exit)
		return true, err
	}

	s.setState(ctx, Idle)

	return false, nil
}

// execute resolves and launches one command. Only fatal errors are returned.
func (s *Session) execute(ctx context.Context, tokens []string) error {
	plan, err := redirect.Resolve(tokens)
	if err != nil {
		s.diagnose("redirect", err)
		s.lastStatus = 1

		return nil
	}

	streams, err := s.opener.Open(ctx, plan)
	if err != nil {
		s.diagnose("open", err)
		s.lastStatus = 1

		return nil
	}

	defer func() {
		if err := streams.Close(); err != nil {
			ctxlog.Warn(ctx, "closing redirection targets", "error", err)
		}
	}()

	if len(plan.Args) == 0 {
		ctxlog.Debug(ctx, "nothing to run", "directives", len(plan.Directives))
		s.lastStatus = 0

		return nil
	}

	binding := launcher.Binding{
		OnStart: func(int) {
			s.setState(ctx, Spawned)
			s.setState(ctx, WaitingForChild)
		},
	}

	if streams.Stdin != nil {
		binding.Stdin = streams.Stdin
	}

	if streams.Stdout != nil {
		binding.Stdout = streams.Stdout
	}

	s.setState(ctx, Spawning)

	res := s.launcher.Run(ctx, plan.Args, binding)
	s.lastStatus = res.ExitCode

	switch {
	case res.Error == nil:
		return nil
	case errors.Is(res.Error, launcher.ErrExec):
		s.diagnose("exec", res.Error)
		return nil
	case errors.Is(res.Error, launcher.ErrSpawn):
		s.diagnose("spawn", res.Error)
	default:
		s.diagnose("wait", res.Error)
	}

	s.lastStatus = 1

	return res.Error
}

func (s *Session) setState(ctx context.Context, to State) {
	if s.state == to {
		return
	}

	ctxlog.Debug(ctx, "state transition", "from", s.state.String(), "to", to.String())
	s.state = to
}

// diagnose writes "cssh: <op>: <reason>" to stderr.
func (s *Session) diagnose(op string, err error) {
	fmt.Fprintf(s.stderr, "%s %s: %s\n", //nolint:errcheck
		color.Colorize(DiagnosticPrefix, color.FgRed, color.Bold), op, reason(err))
}

// reason flattens a joined error onto one line.
func reason(err error) string {
	lines := strings.FieldsFunc(err.Error(), func(r rune) bool { return r == '\n' })
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, ": ")
}
