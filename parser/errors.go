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

import "errors"

var (
	// ErrUnexpectedToken is reported when the parser finds a token other than
	// the ones it expected.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUndefinedName is reported for identifiers that have no binding in
	// the parser's scope.
	ErrUndefinedName = errors.New("undefined name")

	// ErrDivisionByZero is reported when the right-hand side of a division
	// evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
)
