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

package lexer

import (
	"errors"
	"fmt"
	"math"

	"github.com/bufbuild/ion/token"
)

// ErrIntegerRange is reported when an integer literal does not fit in an
// int64. The literal's value saturates at [math.MaxInt64].
var ErrIntegerRange = errors.New("integer literal out of range")

// lexInt lexes a run of decimal digits.
func (l *Lexer) lexInt() {
	start := l.cursor
	digits := l.takeWhile(isDigit)

	var value int64
	for i := range len(digits) {
		d := int64(digits[i] - '0')
		if value > (math.MaxInt64-d)/10 {
			value = math.MaxInt64
			_ = l.handler.HandleErrorWithPos(l.file, l.spanFrom(start),
				fmt.Errorf("%w: %s does not fit in 64 bits", ErrIntegerRange, digits))
			break
		}
		value = value*10 + d
	}

	l.token.Kind = token.Int
	l.token.Value = value
}
