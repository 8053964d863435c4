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

// Package ion evaluates programs written in a tiny arithmetic expression
// language.
//
// Evaluating a source has three phases:
//  1. Lexing the text into tokens, interning identifiers as it goes.
//     Also see: lexer.New
//  2. Parsing the tokens with a recursive-descent parser that computes the
//     value of each production as soon as it is recognized.
//     Also see: parser.Parse
//  3. Reporting diagnostics for anything that went wrong along the way.
//     Also see: reporter.Handler
//
// There is no syntax tree: a source evaluates directly to an int64.
//
// # Resolvers
//
// A [Resolver] is how the compiler locates the text of the sources it is
// asked to evaluate. [SourceResolver] finds them through an accessor
// function, optionally trying several import paths in order. The package
// never touches the file system itself; callers that want to read files
// supply an accessor that does, and tests typically use
// [SourceAccessorFromMap].
//
// # Compiler
//
// A [Compiler] accepts a list of source names and produces one value per
// name. Every source is evaluated independently, with its own intern table,
// and sources are evaluated in parallel. Only the Resolver field is
// required:
//
//	compiler := ion.Compiler{
//		Resolver: &ion.SourceResolver{
//			Accessor: ion.SourceAccessorFromMap(map[string]string{
//				"answer.ion": "6 * 7",
//			}),
//		},
//	}
//
// This minimal Compiler uses default parallelism, equal to the number of
// CPU cores detected; it rejects identifiers, since it binds none; and it
// fails fast at the first error. All of these aspects can be customized by
// setting other fields.
package ion
