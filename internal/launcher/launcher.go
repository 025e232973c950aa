// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
)

// ExecFailureExitCode is the status recorded when the program could not be executed.
const ExecFailureExitCode = 1

var (
	// ErrSpawn is returned when a child process could not be created.
	ErrSpawn = errors.New("could not create process")
	// ErrExec is returned when the program could not be executed.
	ErrExec = errors.New("could not execute program")
	// ErrWait is returned when waiting for the child failed.
	ErrWait = errors.New("could not wait for process")
	// ErrEmptyCommand is returned for an empty argument vector.
	ErrEmptyCommand = errors.New("empty command")
)

// lookPath resolves a program name, stubbed in tests.
var lookPath = exec.LookPath

// Binding holds the streams of one child. Nil fields fall back to the Launcher's.
type Binding struct {
	Stdin  io.Reader
	Stdout io.Writer
	// OnStart is called with the pid once the child exists, before waiting for it.
	OnStart func(pid int)
}

// Result is the outcome of one launch.
type Result struct {
	Argv     []string // Argument vector, program name first.
	Pid      int      // Process id, zero if nothing was started.
	ExitCode int      // Exit status of the child, 128+n if killed by signal n.
	Error    error    // Error, if any.
}

// Fatal reports whether the error ends the interpreter.
func (r Result) Fatal() bool {
	return errors.Is(r.Error, ErrSpawn) || errors.Is(r.Error, ErrWait)
}

// Launcher starts programs with default streams.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Environment of the child, the interpreter's own if nil.
	Dir    string   // Working directory of the child, the interpreter's own if empty.
}

// New returns a Launcher bound to the process's standard streams.
func New() *Launcher {
	return &Launcher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts argv[0] with the given arguments and waits for that child to exit.
// The child is not cancelled with ctx: the interpreter always waits for it.
func (l *Launcher) Run(ctx context.Context, argv []string, b Binding) Result {
	logger := ctxlog.Logger(ctx).With("program", firstOrEmpty(argv))

	res := Result{
		Argv: argv,
	}

	if len(argv) == 0 {
		res.ExitCode = ExecFailureExitCode
		res.Error = errors.Join(ErrExec, ErrEmptyCommand)

		return res
	}

	path, err := lookPath(argv[0])
	if err != nil && !errors.Is(err, exec.ErrDot) {
		logger.Debug("program not found", "error", err)

		res.ExitCode = ExecFailureExitCode
		res.Error = errors.Join(ErrExec, err)

		return res
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    l.Env,
		Dir:    l.Dir,
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}

	if b.Stdin != nil {
		cmd.Stdin = b.Stdin
	}

	if b.Stdout != nil {
		cmd.Stdout = b.Stdout
	}

	logger.Debug("starting process", "path", path, "args", argv[1:])

	if err := cmd.Start(); err != nil {
		res.ExitCode = ExecFailureExitCode

		if isExecError(err) {
			logger.Debug("program could not be executed", "error", err)
			res.Error = errors.Join(ErrExec, err)

			return res
		}

		res.Error = errors.Join(ErrSpawn, err)

		return res
	}

	res.Pid = cmd.Process.Pid
	logger.Debug("process started", "pid", res.Pid)

	if b.OnStart != nil {
		b.OnStart(res.Pid)
	}

	err = cmd.Wait()
	res.ExitCode = exitStatus(cmd.ProcessState)

	var exitErr *exec.ExitError

	switch {
	case err == nil, errors.As(err, &exitErr):
		logger.Debug("process finished", "pid", res.Pid, "exitCode", res.ExitCode)
	default:
		res.Error = errors.Join(ErrWait, err)
	}

	return res
}

func firstOrEmpty(argv []string) string {
	if len(argv) == 0 {
		return ""
	}

	return argv[0]
}
