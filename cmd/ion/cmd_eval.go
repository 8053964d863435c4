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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/ion"
	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/reporter"
)

// evalEnv provides the environment for the eval command.
type evalEnv struct {
	*rootEnv

	files    bool
	defines  []string
	parallel int
}

// evalCommand returns the definition of the eval command.
func (env *rootEnv) evalCommand() *cobra.Command {
	e := &evalEnv{rootEnv: env}
	cmd := &cobra.Command{
		Use:   "eval [flags] EXPR...",
		Short: "Evaluate expressions and print their values",
		Long: `
Evaluates each argument as an expression and prints one value per line. With
--file, the arguments are paths of files to evaluate instead.

Expressions that begin with '-' must follow a "--" argument.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.run,
	}

	cmd.Flags().BoolVar(&e.files, "file", false, "Treat arguments as paths of files to evaluate")
	cmd.Flags().StringArrayVarP(&e.defines, "define", "D", nil, "Bind an identifier, as name=value; may be repeated")
	cmd.Flags().IntVar(&e.parallel, "parallel", 0, "Maximum number of sources to evaluate at once; 0 means one per CPU")
	return cmd
}

// run executes the eval command.
func (e *evalEnv) run(cmd *cobra.Command, args []string) error {
	scope, err := parseDefines(e.defines)
	if err != nil {
		return err
	}

	names := args
	inner := &ion.SourceResolver{
		Accessor: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
	if !e.files {
		names = make([]string, len(args))
		exprs := make(map[string]string, len(args))
		for i, arg := range args {
			names[i] = fmt.Sprintf("<expr%d>", i+1)
			exprs[names[i]] = arg
		}
		inner.Accessor = ion.SourceAccessorFromMap(exprs)
	}

	var cache sourceCache
	compiler := ion.Compiler{
		Resolver:       cache.wrap(inner),
		MaxParallelism: e.parallel,
		Reporter:       e.newReporter(cache.get),
		Scope:          scope,
	}

	e.logger.Debug("compiling",
		zap.Int("sources", len(names)),
		zap.Int("parallelism", e.parallel),
		zap.Bool("keep-going", e.keepGoing),
		zap.Int("defines", len(scope)),
	)
	start := time.Now()
	results, err := compiler.Compile(cmd.Context(), names...)
	e.logger.Debug("compiled",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("results", len(results)),
		zap.Error(err),
	)

	if results != nil {
		if err := e.print(results); err != nil {
			return err
		}
	}

	var ewp reporter.ErrorWithPos
	if errors.As(err, &ewp) || errors.Is(err, reporter.ErrInvalidSource) {
		return errDiagnosed
	}
	return err
}

type evalOutput struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

func (e *evalEnv) print(results ion.Results) error {
	if e.format == "yaml" {
		out := make([]evalOutput, len(results))
		for i, r := range results {
			out[i] = evalOutput{Name: r.Name, Value: r.Value}
		}
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, r := range results {
		var err error
		if e.files {
			_, err = fmt.Fprintf(e.stdout, "%s: %d\n", r.Name, r.Value)
		} else {
			_, err = fmt.Fprintln(e.stdout, r.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// parseDefines parses name=value pairs into a scope. It returns nil if there
// are no pairs, which leaves identifiers unbound. Each name may be defined
// only once.
func parseDefines(defines []string) (map[string]int64, error) {
	if len(defines) == 0 {
		return nil, nil
	}

	var names intern.Table
	seen := make(intern.Set, len(defines))
	scope := make(map[string]int64, len(defines))
	for _, def := range defines {
		name, text, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --define %q: must be of the form name=value", def)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --define %q: %w", def, err)
		}
		if !seen.Add(&names, name) {
			return nil, fmt.Errorf("invalid --define %q: %s is already defined", def, name)
		}
		scope[name] = value
	}
	return scope, nil
}
