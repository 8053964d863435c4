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

package ion

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/lexer"
	"github.com/bufbuild/ion/parser"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
)

// Compiler evaluates sources located by a [Resolver].
//
// Each source is lexed, parsed and evaluated on its own: it gets a fresh
// intern table, and nothing one source defines is visible to another. All
// sources share a single [reporter.Handler], so the reporter sees every
// diagnostic of a compilation and decides once whether it should stop.
type Compiler struct {
	// Resolves names into source text. This is how the compiler loads the
	// sources to be evaluated. This field is the only required field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// Values for identifiers. If nil, identifiers are rejected by the parser;
	// if non-nil, identifiers missing from it are reported as undefined.
	Scope map[string]int64
}

// Result is the value of a single evaluated source.
type Result struct {
	Name  string
	Value int64
}

// Results is the outcome of a compilation, in the order the sources were
// requested.
type Results []Result

// Compile evaluates the sources with the given names.
//
// If a source cannot be resolved or read, or ctx is cancelled, that error is
// returned. If the reporter stops the compilation, the error it produced is
// returned. Otherwise the results are returned, along with
// [reporter.ErrInvalidSource] if errors were reported but the reporter
// chose to continue past all of them.
//
// Requesting the same name more than once evaluates it once.
func (c *Compiler) Compile(ctx context.Context, names ...string) (Results, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		results: map[string]*result{},
	}

	results := make([]*result, len(names))
	for i, name := range names {
		results[i] = e.compile(ctx, name)
	}

	values := make(Results, len(names))
	for i, r := range results {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if r.err != nil {
			return nil, r.err
		}
		values[i] = Result{Name: names[i], Value: r.value}
	}

	if err := e.h.ReporterError(); err != nil {
		return nil, err
	}
	return values, e.h.Error()
}

type result struct {
	ready chan struct{}
	value int64
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(value int64) {
	r.value = value
	close(r.ready)
}

type executor struct {
	c *Compiler
	h *reporter.Handler
	s *semaphore.Weighted

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, name string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[name]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[name] = r
	go func() {
		e.doCompile(ctx, name, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, name string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	text, err := e.load(name)
	if err != nil {
		r.fail(err)
		return
	}

	r.complete(e.eval(source.NewFile(name, text)))
}

func (e *executor) load(name string) (string, error) {
	sr, err := e.c.Resolver.FindFileByPath(name)
	if err != nil {
		return "", err
	}
	if sr.Source == nil {
		return "", fmt.Errorf("search result for %q has no source", name)
	}
	if c, ok := sr.Source.(io.Closer); ok {
		defer func() {
			_ = c.Close()
		}()
	}

	text, err := io.ReadAll(sr.Source)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", name, err)
	}
	return string(text), nil
}

func (e *executor) eval(file *source.File) int64 {
	table := new(intern.Table)
	var scope intern.Map[int64]
	if e.c.Scope != nil {
		scope = make(intern.Map[int64], len(e.c.Scope))
		for name, value := range e.c.Scope {
			scope.Add(table, name, value)
		}
	}

	p := parser.New(lexer.New(file, table, e.h), scope)
	return p.Parse()
}
