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

package reporter

import (
	"errors"
	"fmt"

	"github.com/bufbuild/ion/source"
)

// ErrInvalidSource is a sentinel error that is returned by parse and compile
// operations in the event that errors are encountered, but the configured
// ErrorReporter always returns nil.
var ErrInvalidSource = errors.New("parse failed: invalid source")

// ErrorWithPos is an error about a source file that includes information
// about the location in the file that caused the error.
//
// The value of Error() will contain both the position and the underlying
// error. The value of Unwrap() will only be the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() source.Pos
	// GetSpan returns the byte range that the error refers to. It may be
	// empty, e.g. for errors at the end of input.
	GetSpan() source.Span
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and span in file.
func Error(file *source.File, span source.Span, err error) ErrorWithPos {
	return errorWithSpan{pos: file.Pos(span.Start), span: span, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created using
// [fmt.Errorf].
func Errorf(file *source.File, span source.Span, format string, args ...any) ErrorWithPos {
	return Error(file, span, fmt.Errorf(format, args...))
}

// errorWithSpan is the canonical implementation of ErrorWithPos.
type errorWithSpan struct {
	underlying error
	pos        source.Pos
	span       source.Span
}

func (e errorWithSpan) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

// GetPosition implements the ErrorWithPos interface.
func (e errorWithSpan) GetPosition() source.Pos {
	return e.pos
}

// GetSpan implements the ErrorWithPos interface.
func (e errorWithSpan) GetSpan() source.Span {
	return e.span
}

// Unwrap implements the ErrorWithPos interface, supplying the underlying
// error. This error will not include location information.
func (e errorWithSpan) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSpan{}
