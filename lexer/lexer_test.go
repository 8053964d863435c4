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

package lexer_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/ion/internal/golden"
	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/lexer"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
	"github.com/bufbuild/ion/token"
)

func TestLexer(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata",
		Refresh:    "ION_REFRESH",
		Extensions: []string{"ion"},
		Outputs: []golden.Output{
			{Extension: "tokens.tsv"},
			{Extension: "stderr.txt"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		file := source.NewFile(path, text)
		var table intern.Table

		var stderr strings.Builder
		renderer := reporter.Renderer{Compact: true}
		handler := reporter.NewHandler(reporter.NewReporter(
			func(err reporter.ErrorWithPos) error {
				stderr.WriteString(renderer.RenderString(reporter.LevelError, file, err))
				return nil
			},
			func(err reporter.ErrorWithPos) {
				stderr.WriteString(renderer.RenderString(reporter.LevelWarning, file, err))
			},
		))

		var tsv strings.Builder
		for _, tok := range lexer.Lex(file, &table, handler) {
			fmt.Fprintf(&tsv, "%v\t%d:%d", tok.Kind, tok.Span.Start, tok.Span.End)
			if payload := tok.Payload(&table); payload != "" {
				fmt.Fprintf(&tsv, "\t%s", payload)
			}
			tsv.WriteByte('\n')
		}

		outputs[0] = tsv.String()
		outputs[1] = stderr.String()
	})
}

func TestTokens(t *testing.T) {
	t.Parallel()

	var table intern.Table
	file := source.NewFile("test.ion", "-12*(x\t+x)/y")
	got := lexer.Lex(file, &table, nil)

	x, y := table.Intern("x"), table.Intern("y")
	want := []token.Token{
		{Kind: token.Punct, Span: source.Span{Start: 0, End: 1}, Char: '-'},
		{Kind: token.Int, Span: source.Span{Start: 1, End: 3}, Value: 12},
		{Kind: token.Punct, Span: source.Span{Start: 3, End: 4}, Char: '*'},
		{Kind: token.Punct, Span: source.Span{Start: 4, End: 5}, Char: '('},
		{Kind: token.Ident, Span: source.Span{Start: 5, End: 6}, Name: x},
		{Kind: token.Punct, Span: source.Span{Start: 7, End: 8}, Char: '+'},
		{Kind: token.Ident, Span: source.Span{Start: 8, End: 9}, Name: x},
		{Kind: token.Punct, Span: source.Span{Start: 9, End: 10}, Char: ')'},
		{Kind: token.Punct, Span: source.Span{Start: 10, End: 11}, Char: '/'},
		{Kind: token.Ident, Span: source.Span{Start: 11, End: 12}, Name: y},
		{Kind: token.EOF, Span: source.Span{Start: 12, End: 12}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, table.Len())
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2+3*4",
		"(2+3)*4",
		"  -5 + 3\n",
		"foo_bar1 _ __x9 12345678901234",
		"a/b;c?d\x00e",
		"ünïcödé + 0",
		"a\xffb",
		"\xc3(\xe2\x82",
		"99999999999999999999 + 1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			var table intern.Table
			file := source.NewFile("test.ion", input)
			for _, tok := range lexer.Lex(file, &table, reporter.NewHandler(reporter.Collect(nil, nil))) {
				if tok.Kind == token.EOF {
					assert.Zero(t, tok.Span.Len())
					continue
				}
				require.Positive(t, tok.Span.Len())

				// Lexing the token's text on its own must reproduce it.
				alone := source.NewFile("alone.ion", tok.Span.Text(file))
				again := lexer.Lex(alone, &table, reporter.NewHandler(reporter.Collect(nil, nil)))
				require.Len(t, again, 2, "%q", tok.Span.Text(file))

				again[0].Span = tok.Span
				assert.Equal(t, tok, again[0])
				assert.Equal(t, token.EOF, again[1].Kind)
			}
		})
	}
}

func TestInvalidUTF8(t *testing.T) {
	t.Parallel()

	var table intern.Table
	file := source.NewFile("test.ion", "a\xffb")
	tokens := lexer.Lex(file, &table, nil)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.Token{
		Kind: token.Punct,
		Span: source.Span{Start: 1, End: 2},
		Char: utf8.RuneError,
	}, tokens[1])
	assert.Equal(t, "b", table.Value(tokens[2].Name))
}

func TestNext(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var table intern.Table
	l := lexer.New(source.NewFile("test.ion", "  7 "), &table, nil)

	// New primes the first token.
	tok := l.Token()
	assert.Equal(token.Int, tok.Kind)
	assert.Equal(int64(7), tok.Value)
	assert.Equal(source.Span{Start: 2, End: 3}, tok.Span)

	// Past the end, EOF is returned forever.
	for range 3 {
		tok = l.Next()
		assert.Equal(token.EOF, tok.Kind)
		assert.Equal(source.Span{Start: 4, End: 4}, tok.Span)
	}
	assert.Equal(tok, l.Token())
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	var table intern.Table
	tokens := lexer.Lex(source.NewFile("test.ion", "abc abd abc ab"), &table, nil)
	require.Len(t, tokens, 5)

	assert.Equal(t, tokens[0].Name, tokens[2].Name)
	assert.NotEqual(t, tokens[0].Name, tokens[1].Name)
	assert.NotEqual(t, tokens[0].Name, tokens[3].Name)
	assert.Equal(t, "ab", table.Value(tokens[3].Name))
}

func TestStop(t *testing.T) {
	t.Parallel()

	// The default reporter stops at the first error, after which the lexer
	// produces nothing but EOF.
	var table intern.Table
	handler := reporter.NewHandler(nil)
	file := source.NewFile("test.ion", "1 99999999999999999999 2 3")
	tokens := lexer.Lex(file, &table, handler)

	require.Len(t, tokens, 3)
	assert.Equal(t, token.Int, tokens[0].Kind)
	assert.Equal(t, token.Int, tokens[1].Kind)
	assert.Equal(t, token.EOF, tokens[2].Kind)
	assert.Equal(t, file.Len(), tokens[2].Span.Start)

	err := handler.Error()
	require.ErrorIs(t, err, lexer.ErrIntegerRange)
	assert.Equal(t, "test.ion:1:3: integer literal out of range: 99999999999999999999 does not fit in 64 bits", err.Error())
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	var table intern.Table
	tokens := lexer.Lex(source.NewFile("test.ion", "42 foo + é"), &table, nil)

	var got []string
	for _, tok := range tokens {
		got = append(got, token.Describe(tok, &table))
	}
	assert.Equal(t, []string{
		"integer 42",
		`identifier "foo"`,
		"'+'",
		"'é'",
		"end of input",
	}, got)
	assert.True(t, tokens[2].Is('+'))
	assert.False(t, tokens[2].Is('-'))
	assert.False(t, tokens[0].Is('4'))
}
