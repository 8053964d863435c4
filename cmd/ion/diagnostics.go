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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bufbuild/ion"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
)

// colorizer returns the [reporter.Renderer] Colorize hook for the given
// --color mode, where diagnostics are written to w. A nil hook disables
// colors.
func colorizer(mode string, w io.Writer) (func(reporter.Level, string) string, error) {
	switch mode {
	case "always":
	case "never":
		return nil, nil
	case "auto":
		if !isTerminal(w) {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("invalid --color %q: must be auto, always or never", mode)
	}

	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	errColor.EnableColor()
	warnColor.EnableColor()

	return func(level reporter.Level, text string) string {
		if level == reporter.LevelWarning {
			return warnColor.Sprint(text)
		}
		return errColor.Sprint(text)
	}, nil
}

// isTerminal reports whether w is a terminal that should get colors. It
// honours NO_COLOR and TERM=dumb like fatih/color does for stdout.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newReporter returns a reporter that renders every diagnostic to stderr.
// Unless --keep-going is set, the first error stops the operation.
//
// files looks up the text of the file a diagnostic points into.
func (env *rootEnv) newReporter(files func(name string) *source.File) reporter.Reporter {
	render := func(level reporter.Level, err reporter.ErrorWithPos) {
		r := env.renderer
		file := files(err.GetPosition().Filename)
		if file == nil {
			r.Compact = true
		}
		_ = r.Render(env.stderr, level, file, err)
	}

	return reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			render(reporter.LevelError, err)
			if env.keepGoing {
				return nil
			}
			return err
		},
		func(err reporter.ErrorWithPos) {
			render(reporter.LevelWarning, err)
		},
	)
}

// sourceCache remembers the text of every source the compiler loads, so
// that diagnostics can quote it.
type sourceCache struct {
	mu    sync.Mutex
	files map[string]*source.File
}

// wrap returns a resolver that records everything inner resolves.
func (c *sourceCache) wrap(inner ion.Resolver) ion.Resolver {
	return ion.ResolverFunc(func(name string) (ion.SearchResult, error) {
		res, err := inner.FindFileByPath(name)
		if err != nil || res.Source == nil {
			return res, err
		}
		if closer, ok := res.Source.(io.Closer); ok {
			defer func() {
				_ = closer.Close()
			}()
		}

		text, err := io.ReadAll(res.Source)
		if err != nil {
			return ion.SearchResult{}, fmt.Errorf("reading %q: %w", name, err)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.files == nil {
			c.files = make(map[string]*source.File)
		}
		c.files[name] = source.NewFile(name, string(text))
		return ion.SearchResult{Source: strings.NewReader(string(text))}, nil
	})
}

func (c *sourceCache) get(name string) *source.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.files[name]
}
