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

// Package reporter contains the types used for reporting errors from the
// lexer, parser and compiler. The reporter is what decides whether a
// problem aborts an operation or whether it is merely recorded.
package reporter

import (
	"sync"

	"github.com/bufbuild/ion/source"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, parsing will stop with that error. If the reporter
// returns nil, parsing will continue, allowing the parser to report as many
// errors as it can find.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. This is used
// for indicating non-error messages to the calling program for things that do
// not cause the parse to fail but are likely mistakes.
type WarningReporter func(ErrorWithPos)

// Reporter is a pair of error and warning reporters.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. Either may be nil. A nil error reporter causes the first
// error to stop the operation; nil warnings are discarded.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

// Collect returns a reporter that never stops an operation, appending every
// error and warning to the given slices instead. Either slice may be nil.
//
// The returned reporter may be used from multiple goroutines only through a
// [Handler], which serializes calls.
func Collect(errs, warnings *[]ErrorWithPos) Reporter {
	return NewReporter(
		func(err ErrorWithPos) error {
			if errs != nil {
				*errs = append(*errs, err)
			}
			return nil
		},
		func(err ErrorWithPos) {
			if warnings != nil {
				*warnings = append(*warnings, err)
			}
		},
	)
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by the lexer and parser to report problems. It remembers
// the first non-nil error the underlying reporter returns; once that happens,
// every further report is ignored and the lexer stops producing tokens.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	warnings     int
	err          error
}

// NewHandler creates a new handler wrapping rep. If rep is nil, a reporter
// that stops at the first error is used.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports a new error at span in file, and returns the error
// the reporter produced for it, if any.
func (h *Handler) HandleErrorf(file *source.File, span source.Span, format string, args ...any) error {
	return h.HandleError(Errorf(file, span, format, args...))
}

// HandleErrorWithPos reports err with the given span in file.
func (h *Handler) HandleErrorWithPos(file *source.File, span source.Span, err error) error {
	return h.HandleError(Error(file, span, err))
}

// HandleError reports err. Errors that are not [ErrorWithPos] bypass the
// reporter and become the handler's error immediately.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarningf reports a warning at span in file.
func (h *Handler) HandleWarningf(file *source.File, span source.Span, format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.warnings++
	h.reporter.Warning(Errorf(file, span, format, args...))
}

// Error returns the handler's result: the error returned by the reporter, if
// any, or [ErrInvalidSource] if errors were reported but the reporter
// swallowed all of them.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the reporter, if any. A
// non-nil result means processing should stop.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}

// Warnings returns how many warnings have been reported so far.
func (h *Handler) Warnings() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.warnings
}
