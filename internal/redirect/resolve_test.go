// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package redirect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tcs := []struct {
		name       string
		tokens     []string
		args       []string
		directives []Directive
	}{
		{
			name:   "no redirection",
			tokens: []string{"ls", "-l"},
			args:   []string{"ls", "-l"},
		},
		{
			name:       "output truncate",
			tokens:     []string{"echo", "hello", ">", "out.txt"},
			args:       []string{"echo", "hello"},
			directives: []Directive{{Kind: OutputTruncate, Path: "out.txt"}},
		},
		{
			name:       "output append",
			tokens:     []string{"echo", "hi", ">>", "log"},
			args:       []string{"echo", "hi"},
			directives: []Directive{{Kind: OutputAppend, Path: "log"}},
		},
		{
			name:   "input and output in the middle",
			tokens: []string{"sort", "<", "in", "-r", ">", "out", "-u"},
			args:   []string{"sort", "-r", "-u"},
			directives: []Directive{
				{Kind: Input, Path: "in"},
				{Kind: OutputTruncate, Path: "out"},
			},
		},
		{
			name:       "redirection only",
			tokens:     []string{">", "out.txt"},
			args:       []string{},
			directives: []Directive{{Kind: OutputTruncate, Path: "out.txt"}},
		},
		{
			name:   "operators are whole tokens only",
			tokens: []string{"echo", "a>b", "<<", ">>>"},
			args:   []string{"echo", "a>b", "<<", ">>>"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(tc.tokens)
			require.NoError(t, err)
			assert.Equal(t, tc.args, plan.Args)
			assert.Equal(t, tc.directives, plan.Directives)
		})
	}
}

func TestResolveDoesNotModifyInput(t *testing.T) {
	tokens := []string{"cat", "<", "in", ">", "out"}
	_, err := Resolve(tokens)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "<", "in", ">", "out"}, tokens)
}

func TestResolveErrors(t *testing.T) {
	tcs := []struct {
		name   string
		tokens []string
		err    error
	}{
		{"two inputs", []string{"cat", "<", "a", "<", "b"}, ErrDuplicateInput},
		{"two truncates", []string{"cmd", ">", "a", ">", "b"}, ErrDuplicateOutput},
		{"truncate and append", []string{"cmd", ">", "a", ">>", "b"}, ErrDuplicateOutput},
		{"append and truncate", []string{"cmd", ">>", "a", ">", "b"}, ErrDuplicateOutput},
		{"trailing input", []string{"cat", "<"}, ErrMissingTarget},
		{"trailing output", []string{"echo", "hi", ">>"}, ErrMissingTarget},
		{"operator as target", []string{"echo", ">", "<", "x"}, ErrMissingTarget},
		{"duplicate beats missing target", []string{"cat", "<", "a", "<"}, ErrDuplicateInput},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(tc.tokens)
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDuplicateErrorsShareParent(t *testing.T) {
	assert.ErrorIs(t, ErrDuplicateInput, ErrDuplicateOperator)
	assert.ErrorIs(t, ErrDuplicateOutput, ErrDuplicateOperator)
	assert.NotErrorIs(t, ErrMissingTarget, ErrDuplicateOperator)
}

func TestPlanAccessors(t *testing.T) {
	plan, err := Resolve([]string{"cat", ">>", "out", "<", "in"})
	require.NoError(t, err)

	in, ok := plan.Input()
	require.True(t, ok)
	assert.Equal(t, "< in", in.String())

	out, ok := plan.Output()
	require.True(t, ok)
	assert.Equal(t, OutputAppend, out.Kind)
	assert.Equal(t, "out", out.Path)

	empty := &Plan{}
	_, ok = empty.Input()
	assert.False(t, ok)
	_, ok = empty.Output()
	assert.False(t, ok)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "<", Input.String())
	assert.Equal(t, ">", OutputTruncate.String())
	assert.Equal(t, ">>", OutputAppend.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.False(t, Input.IsOutput())
	assert.True(t, OutputTruncate.IsOutput())
	assert.True(t, OutputAppend.IsOutput())

	for _, tok := range []string{"<", ">", ">>"} {
		k, ok := ParseOperator(tok)
		require.True(t, ok)
		assert.Equal(t, tok, k.String())
	}

	_, ok := ParseOperator("2>")
	assert.False(t, ok)
}
