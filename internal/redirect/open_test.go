// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package redirect

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPlan(t *testing.T, o *Opener, tokens ...string) (*Streams, error) {
	t.Helper()

	plan, err := Resolve(tokens)
	require.NoError(t, err)

	return o.Open(context.Background(), plan)
}

func TestOpenCreatesWithDefaultPerm(t *testing.T) {
	memfs := afero.NewMemMapFs()
	o := &Opener{Fs: memfs}

	s, err := openPlan(t, o, "echo", ">", "out.txt")
	require.NoError(t, err)
	assert.Nil(t, s.Stdin)
	require.NotNil(t, s.Stdout)
	require.NoError(t, s.Close())

	fi, err := memfs.Stat("out.txt")
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, fi.Mode().Perm())
}

func TestOpenTruncateAndAppend(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "f", []byte("old contents\n"), 0o600))

	o := &Opener{Fs: memfs, Perm: 0o644}

	s, err := openPlan(t, o, "echo", ">", "f")
	require.NoError(t, err)
	_, err = io.WriteString(s.Stdout, "one\n")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = openPlan(t, o, "echo", ">>", "f")
	require.NoError(t, err)
	_, err = io.WriteString(s.Stdout, "two\n")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	got, err := afero.ReadFile(memfs, "f")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(got))
}

func TestOpenInput(t *testing.T) {
	memfs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memfs, "in", []byte("hello\n"), 0o600))

	s, err := openPlan(t, &Opener{Fs: memfs}, "cat", "<", "in")
	require.NoError(t, err)
	require.NotNil(t, s.Stdin)
	assert.Nil(t, s.Stdout)

	got, err := io.ReadAll(s.Stdin)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
	require.NoError(t, s.Close())
}

func TestOpenMissingInput(t *testing.T) {
	memfs := afero.NewMemMapFs()

	s, err := openPlan(t, &Opener{Fs: memfs}, "cat", "<", "nope", ">", "out")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// the output target comes after the failed input, so it is never created
	_, statErr := memfs.Stat("out")
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestOpenFailureClosesEarlierTargets(t *testing.T) {
	dir := t.TempDir()
	o := NewOpener(DefaultPerm)

	s, err := openPlan(t, o, "cmd", ">", filepath.Join(dir, "out"), "<", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Nil(t, s)

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, filepath.Join(dir, "missing"), pathErr.Path)

	fi, err := os.Stat(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, fi.Mode().Perm())
}

func TestStreamsCloseNil(t *testing.T) {
	var s *Streams
	require.NoError(t, s.Close())
	require.NoError(t, (&Streams{}).Close())
}

func TestStreamsCloseAggregates(t *testing.T) {
	osfs := afero.NewOsFs()
	dir := t.TempDir()

	in, err := osfs.Create(filepath.Join(dir, "a"))
	require.NoError(t, err)
	out, err := osfs.Create(filepath.Join(dir, "b"))
	require.NoError(t, err)

	s := &Streams{Stdin: in, Stdout: out}
	require.NoError(t, s.Close())

	err = s.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Contains(t, err.Error(), "2 errors occurred")
}
