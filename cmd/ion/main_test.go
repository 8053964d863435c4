// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/ion/reporter"
)

// runArgs runs the command line and returns its exit code, stdout and
// stderr.
func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr strings.Builder
	code := run(t.Context(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEval(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "eval", "2+3*4", "(2+3)*4", "--", "-7/2")
	assert.Equal(t, 0, code)
	assert.Equal(t, "14\n20\n-3\n", stdout)
	assert.Empty(t, stderr)
}

func TestEvalDefine(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runArgs(t, "eval", "-D", "x=4", "--define", "y = -1", "x*x + y")
	assert.Equal(t, 0, code)
	assert.Equal(t, "15\n", stdout)

	code, _, stderr := runArgs(t, "eval", "-D", "x", "x")
	assert.Equal(t, 1, code)
	assert.Equal(t, "ion: invalid --define \"x\": must be of the form name=value\n", stderr)

	code, _, stderr = runArgs(t, "eval", "-D", "x=abc", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --define \"x=abc\"")

	code, stdout, stderr = runArgs(t, "eval", "-D", "x=1", "-D", " x =2", "x")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "ion: invalid --define \" x =2\": x is already defined\n", stderr)
}

func TestEvalError(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "eval", "--color", "never", "1/0")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, strings.Join([]string{
		"error: division by zero",
		" --> <expr1>:1:2",
		"  |",
		"1 | 1/0",
		"  |  ^^",
		"",
	}, "\n"), stderr)
}

func TestEvalKeepGoing(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "eval", "--keep-going", "--color", "never", "(1 + ) * (2", "2")
	assert.Equal(t, 1, code)
	assert.Equal(t, "0\n2\n", stdout)
	assert.Equal(t, 2, strings.Count(stderr, "error: unexpected token"))
}

func TestEvalFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "answer.ion")
	require.NoError(t, os.WriteFile(path, []byte("6 *\n  7\n"), 0o600))

	code, stdout, stderr := runArgs(t, "eval", "--file", path)
	assert.Equal(t, 0, code)
	assert.Equal(t, path+": 42\n", stdout)
	assert.Empty(t, stderr)

	code, _, stderr = runArgs(t, "eval", "--file", filepath.Join(dir, "missing.ion"))
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "ion: open "), stderr)
}

func TestEvalYAML(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runArgs(t, "eval", "--format", "yaml", "1+1", "2*3")
	require.Equal(t, 0, code)

	var got []evalOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []evalOutput{
		{Name: "<expr1>", Value: 2},
		{Name: "<expr2>", Value: 6},
	}, got)
}

func TestEvalParallel(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runArgs(t, "eval", "--parallel", "1", "1", "2", "3")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n2\n3\n", stdout)
}

func TestTokens(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "tokens", "a + 12")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Ident\t0\t1\ta\nPunct\t2\t3\t'+'\nInt\t4\t6\t12\nEOF\t6\t6\n", stdout)
	assert.Empty(t, stderr)
}

func TestTokensYAML(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runArgs(t, "tokens", "--format=yaml", "7")
	require.Equal(t, 0, code)

	var got []tokenOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []tokenOutput{
		{Kind: "Int", Start: 0, End: 1, Payload: "7"},
		{Kind: "EOF", Start: 1, End: 1},
	}, got)
}

func TestTokensWarning(t *testing.T) {
	t.Parallel()

	code, _, stderr := runArgs(t, "tokens", "--color", "never", "1\x00")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stderr, "warning: NUL byte in input"), stderr)
}

func TestColor(t *testing.T) {
	t.Parallel()

	code, _, stderr := runArgs(t, "eval", "--color", "always", "1/0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "\x1b[")
	assert.Contains(t, stderr, "division by zero")

	code, _, stderr = runArgs(t, "eval", "--color", "sometimes", "1")
	assert.Equal(t, 1, code)
	assert.Equal(t, "ion: invalid --color \"sometimes\": must be auto, always or never\n", stderr)
}

func TestColorAuto(t *testing.T) {
	t.Parallel()

	// Only a terminal on stderr gets colors, whatever stdout is.
	code, _, stderr := runArgs(t, "eval", "--color", "auto", "1/0")
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "\x1b[")
	assert.Contains(t, stderr, "error: division by zero")

	file, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	colorize, err := colorizer("auto", file)
	require.NoError(t, err)
	assert.Nil(t, colorize)

	colorize, err = colorizer("always", file)
	require.NoError(t, err)
	require.NotNil(t, colorize)
	assert.True(t, strings.HasPrefix(colorize(reporter.LevelError, "error"), "\x1b[31;1merror\x1b["))
	assert.True(t, strings.HasPrefix(colorize(reporter.LevelWarning, "warning"), "\x1b[33;1mwarning\x1b["))
}

func TestBadFormat(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "eval", "--format", "json", "1")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "ion: invalid --format \"json\": must be text or yaml\n", stderr)
}

func TestVerbose(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runArgs(t, "eval", "-v", "1")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n", stdout)
	assert.Contains(t, stderr, "compiling")
	assert.Contains(t, stderr, "compiled")
}

func TestNoArgs(t *testing.T) {
	t.Parallel()

	code, _, stderr := runArgs(t, "eval")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "requires at least 1 arg")
}
