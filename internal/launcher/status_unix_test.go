// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package launcher

import (
	"errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunKilledBySignal(t *testing.T) {
	defer goleak.VerifyNone(t)

	l, _, _ := newTestLauncher()

	res := l.Run(testContext(), []string{"sh", "-c", "kill -TERM $$"}, Binding{})
	require.NoError(t, res.Error)
	assert.Equal(t, signalExitBase+int(syscall.SIGTERM), res.ExitCode)
}

func TestIsExecError(t *testing.T) {
	tcs := []struct {
		name string
		err  error
		want bool
	}{
		{"not exist", &fs.PathError{Op: "fork/exec", Path: "/x", Err: syscall.ENOENT}, true},
		{"permission", &fs.PathError{Op: "fork/exec", Path: "/x", Err: syscall.EACCES}, true},
		{"exec format", &fs.PathError{Op: "fork/exec", Path: "/x", Err: syscall.ENOEXEC}, true},
		{"text busy", &fs.PathError{Op: "fork/exec", Path: "/x", Err: syscall.ETXTBSY}, true},
		{"loop", syscall.ELOOP, true},
		{"out of processes", syscall.EAGAIN, false},
		{"out of memory", syscall.ENOMEM, false},
		{"other", errors.New("boom"), false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isExecError(tc.err))
		})
	}
}

func TestExitStatusNil(t *testing.T) {
	assert.Equal(t, -1, exitStatus(nil))
}
