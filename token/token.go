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

// Package token defines the tokens produced by the lexer.
package token

import (
	"fmt"
	"strconv"

	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/source"
)

//go:generate go run github.com/bufbuild/ion/internal/enum kind.yaml

// Token is a single lexed token.
//
// Which payload field is meaningful depends on Kind: Value for [Int], Name
// for [Ident], and Char for [Punct]. [EOF] has no payload.
type Token struct {
	Kind Kind
	// The bytes of the source this token was lexed from. Empty only for EOF.
	Span source.Span

	Value int64
	Name  intern.ID
	Char  rune
}

// Is returns whether this is a punctuation token for the character c.
func (t Token) Is(c rune) bool {
	return t.Kind == Punct && t.Char == c
}

// String implements [fmt.Stringer].
//
// Identifiers are printed as their intern IDs; use [Describe] to resolve them
// to text.
func (t Token) String() string {
	switch t.Kind {
	case Int:
		return fmt.Sprintf("Int%v(%d)", t.Span, t.Value)
	case Ident:
		return fmt.Sprintf("Ident%v(%v)", t.Span, t.Name)
	case Punct:
		return fmt.Sprintf("Punct%v(%q)", t.Span, t.Char)
	default:
		return fmt.Sprintf("%v%v", t.Kind, t.Span)
	}
}

// Payload returns a textual rendition of this token's payload, resolving
// identifiers with table. EOF has an empty payload.
func (t Token) Payload(table *intern.Table) string {
	switch t.Kind {
	case Int:
		return strconv.FormatInt(t.Value, 10)
	case Ident:
		return table.Value(t.Name)
	case Punct:
		return strconv.QuoteRune(t.Char)
	default:
		return ""
	}
}

// Describe returns a human-readable description of t, suitable for use in
// diagnostics, e.g. `integer 42` or `identifier "foo"`.
func Describe(t Token, table *intern.Table) string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Int:
		return "integer " + strconv.FormatInt(t.Value, 10)
	case Ident:
		return "identifier " + strconv.Quote(table.Value(t.Name))
	case Punct:
		return strconv.QuoteRune(t.Char)
	default:
		return t.Kind.String()
	}
}
