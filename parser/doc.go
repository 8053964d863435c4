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

// Package parser contains a recursive-descent parser for arithmetic
// expressions. The parser does not build a syntax tree: every grammar rule
// evaluates its production as soon as it is matched, so parsing an
// expression yields its integer value directly.
//
// The grammar, from lowest to highest precedence, is
//
//	expr           = additive
//	additive       = multiplicative ( ('+' | '-') multiplicative )*
//	multiplicative = unary ( ('*' | '/') unary )*
//	unary          = '-' unary | primary
//	primary        = Int | Ident | '(' expr ')'
//
// Binary operators associate to the left. Identifiers are only accepted when
// the parser has a scope to look them up in.
//
// # Errors
//
// Errors never unwind the parser. Each problem is sent to the
// [reporter.Handler], the production that failed evaluates to zero, and
// parsing carries on. Whether the handler's reporter chooses to stop (in
// which case the lexer stops producing tokens) determines how many problems
// are found.
//
// Arithmetic is performed on int64 and wraps on overflow. Division truncates
// toward zero; dividing by zero is reported and evaluates to zero.
package parser
