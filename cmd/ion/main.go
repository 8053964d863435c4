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

// Command ion evaluates expressions from the command line.
//
//	ion eval '2 + 3 * 4'
//	ion eval -D x=5 'x * x'
//	ion eval --file a.ion b.ion
//	ion tokens '(1 + foo)'
//
// Diagnostics are written to stderr. The exit status is 1 if any error was
// reported.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bufbuild/ion/reporter"
)

// errDiagnosed is returned by commands whose errors have already been
// rendered as diagnostics.
var errDiagnosed = errors.New("errors were reported")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	env := &rootEnv{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
	cmd := env.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	_ = env.logger.Sync()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errDiagnosed) {
		fmt.Fprintf(stderr, "ion: %v\n", err)
	}
	return 1
}

// rootEnv holds the flags and outputs shared by every subcommand.
type rootEnv struct {
	stdout, stderr io.Writer

	format    string
	color     string
	verbose   bool
	keepGoing bool

	logger   *zap.Logger
	renderer reporter.Renderer
}

func (env *rootEnv) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ion",
		Short: "Evaluate integer arithmetic expressions",
		Long: `
ion lexes, parses and evaluates expressions over 64-bit integers, with the
operators + - * / and parentheses. Identifiers may be bound with --define.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: env.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&env.format, "format", "text", "Output format: text or yaml")
	flags.StringVar(&env.color, "color", "auto", "Colorize diagnostics: auto, always or never")
	flags.BoolVarP(&env.verbose, "verbose", "v", false, "Log debugging information to stderr")
	flags.BoolVar(&env.keepGoing, "keep-going", false, "Report every error instead of stopping at the first")

	cmd.AddCommand(env.evalCommand(), env.tokensCommand())
	return cmd
}

// setup validates the shared flags and builds the logger and renderer.
func (env *rootEnv) setup(*cobra.Command, []string) error {
	switch env.format {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid --format %q: must be text or yaml", env.format)
	}

	colorize, err := colorizer(env.color, env.stderr)
	if err != nil {
		return err
	}
	env.renderer = reporter.Renderer{Colorize: colorize}
	env.logger = newLogger(env.stderr, env.verbose)
	return nil
}

// newLogger returns a console logger writing to w. Only warnings and above
// are logged unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}
