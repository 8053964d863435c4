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

package parser

import (
	"fmt"

	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/lexer"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
	"github.com/bufbuild/ion/token"
)

// Parse parses and evaluates the expression in file.
//
// The returned value is always the best-effort result of evaluation, even
// when errors were reported. The returned error is the handler's error: nil
// if nothing went wrong, whatever the reporter returned if it chose to stop,
// or [reporter.ErrInvalidSource] if it swallowed every error.
func Parse(file *source.File, table *intern.Table, handler *reporter.Handler) (int64, error) {
	return ParseWithScope(file, table, nil, handler)
}

// ParseWithScope is like [Parse], but identifiers are resolved in scope.
func ParseWithScope(file *source.File, table *intern.Table, scope intern.Map[int64], handler *reporter.Handler) (int64, error) {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	p := New(lexer.New(file, table, handler), scope)
	value := p.Parse()
	return value, handler.Error()
}

// Parser is a recursive-descent evaluator reading from a [lexer.Lexer].
//
// The parser itself holds no tokens; the lexer's current token is the
// parser's single token of lookahead.
type Parser struct {
	lexer *lexer.Lexer
	scope intern.Map[int64]

	// The span of the most recently consumed token.
	last source.Span
	// The offset of the token the last diagnostic was reported on, used to
	// avoid reporting the same token twice; -1 if none.
	lastError int
	errors    int
}

// New creates a parser reading from l. scope may be nil, in which case
// identifiers are not valid expressions.
func New(l *lexer.Lexer, scope intern.Map[int64]) *Parser {
	return &Parser{lexer: l, scope: scope, lastError: -1}
}

// Parse parses a complete expression, which must be followed by the end of
// the input, and returns its value.
func (p *Parser) Parse() int64 {
	value := p.Expr()
	if tok := p.lexer.Token(); tok.Kind != token.EOF {
		p.unexpected("operator or end of input")
	}
	return value
}

// Expr parses a single expression starting at the lexer's current token and
// returns its value. Tokens after the expression are left unconsumed.
func (p *Parser) Expr() int64 {
	return p.additive()
}

func (p *Parser) additive() int64 {
	value := p.multiplicative()
	for {
		tok := p.lexer.Token()
		switch {
		case tok.Is('+'):
			p.advance()
			value += p.multiplicative()
		case tok.Is('-'):
			p.advance()
			value -= p.multiplicative()
		default:
			return value
		}
	}
}

func (p *Parser) multiplicative() int64 {
	value := p.unary()
	for {
		tok := p.lexer.Token()
		switch {
		case tok.Is('*'):
			p.advance()
			value *= p.unary()
		case tok.Is('/'):
			p.advance()
			errors := p.errors
			rhs := p.unary()
			if rhs == 0 {
				// A divisor that failed to parse has already been reported.
				if p.errors == errors {
					p.errorAt(source.Span{Start: tok.Span.Start, End: p.last.End}, ErrDivisionByZero)
				}
				value = 0
				continue
			}
			value /= rhs
		default:
			return value
		}
	}
}

func (p *Parser) unary() int64 {
	if p.lexer.Token().Is('-') {
		p.advance()
		return -p.unary()
	}
	return p.primary()
}

func (p *Parser) primary() int64 {
	tok := p.lexer.Token()
	switch {
	case tok.Kind == token.Int:
		p.advance()
		return tok.Value

	case tok.Kind == token.Ident && p.scope != nil:
		p.advance()
		value, ok := p.scope[tok.Name]
		if !ok {
			name := p.lexer.Table().Value(tok.Name)
			p.errorAt(tok.Span, fmt.Errorf("%w %q", ErrUndefinedName, name))
			return 0
		}
		return value

	case tok.Is('('):
		p.advance()
		value := p.Expr()
		if !p.expect(')') {
			return 0
		}
		return value

	default:
		if p.scope != nil {
			p.unexpected("integer, identifier or '('")
		} else {
			p.unexpected("integer or '('")
		}
		return 0
	}
}

// advance consumes the current token.
func (p *Parser) advance() {
	p.last = p.lexer.Token().Span
	p.lexer.Next()
}

// expect consumes the current token if it is the punctuation c, and reports
// an error otherwise.
func (p *Parser) expect(c rune) bool {
	if p.lexer.Token().Is(c) {
		p.advance()
		return true
	}
	p.unexpected(fmt.Sprintf("%q", c))
	return false
}

// unexpected reports that the current token is not what was wanted. The
// token is not consumed.
func (p *Parser) unexpected(want string) {
	tok := p.lexer.Token()
	p.errorAt(tok.Span, fmt.Errorf("%w: expected %s, found %s",
		ErrUnexpectedToken, want, token.Describe(tok, p.lexer.Table())))
}

func (p *Parser) errorAt(span source.Span, err error) {
	if span.Start == p.lastError {
		return
	}
	p.lastError = span.Start
	p.errors++
	_ = p.lexer.Handler().HandleErrorWithPos(p.lexer.File(), span, err)
}
