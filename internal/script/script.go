// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script retrieves command scripts from local paths or remote sources.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/cssh/internal/ctxlog"
)

var (
	// ErrFetch is returned when a script cannot be retrieved.
	ErrFetch = errors.New("cannot fetch script")
	// ErrNotAFile is returned when the named script is a directory.
	ErrNotAFile = errors.New("script is a directory")
	// ErrBinary is returned when the script contains a NUL byte.
	ErrBinary = errors.New("script is not text")
)

// Fetch retrieves the script at url with go-getter and returns its content.
// Local paths are relative to the working directory. Remote sources name the file
// after the '//' subdirectory separator, e.g. git::https://example.com/repo.git//scripts/setup.cssh?ref=v1.
// A script that is a directory or contains a NUL byte is rejected.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrFetch)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	req := &getter.Request{
		Src:     url,
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	// go-getter fetches directories, so the script's parent is fetched and the script
	// read from it. https://github.com/hashicorp/go-getter/issues/98
	var name string

	local, err := getter.Detect(req, &getter.FileGetter{})
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	if local {
		req.Src, name = filepath.Dir(url), filepath.Base(url)
	} else {
		var ok bool
		if req.Src, name, ok = splitRemote(url); !ok {
			return nil, fmt.Errorf("%w: no script named after '//' in %s", ErrFetch, url)
		}
	}

	tmpDir, err := os.MkdirTemp("", "cssh-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	req.Dst = filepath.Join(tmpDir, "g")

	ctxlog.Debug(ctx, "fetching script", "src", req.Src, "script", name)

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return readScript(filepath.Join(res.Dst, name), name, req.Src)
}

// readScript reads a fetched script. from names where it was fetched from and is only
// used in errors.
func readScript(p, name, from string) ([]byte, error) {
	fi, err := os.Stat(p)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %q not found in %s", ErrFetch, name, from)
	case err != nil:
		return nil, errors.Join(ErrFetch, err)
	case fi.IsDir():
		return nil, fmt.Errorf("%w: %w: %q in %s", ErrFetch, ErrNotAFile, name, from)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	if i := bytes.IndexByte(b, 0); i >= 0 {
		return nil, fmt.Errorf("%w: %w: %q has a NUL byte at offset %d", ErrFetch, ErrBinary, name, i)
	}

	return b, nil
}

// splitRemote separates the script named after the last '//' of a remote source from
// the source go-getter should fetch. The query, such as ref=v1, stays on the source.
func splitRemote(src string) (string, string, bool) {
	src, query, _ := strings.Cut(src, "?")

	start := 0
	if i := strings.Index(src, "://"); i >= 0 {
		start = i + len("://")
	}

	i := strings.LastIndex(src[start:], "//")
	if i < 0 {
		return "", "", false
	}

	root, sub := src[:start+i], src[start+i+len("//"):]
	if strings.HasSuffix(sub, "/") {
		return "", "", false
	}

	sub = path.Clean(sub)
	if sub == "." || sub == "/" {
		return "", "", false
	}

	dir, name := path.Split(sub)
	if dir = strings.TrimSuffix(dir, "/"); dir != "" {
		root += "//" + dir
	}

	if query != "" {
		root += "?" + query
	}

	return root, name, true
}
