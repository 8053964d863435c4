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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/ion/internal/intern"
	"github.com/bufbuild/ion/lexer"
	"github.com/bufbuild/ion/reporter"
	"github.com/bufbuild/ion/source"
	"github.com/bufbuild/ion/token"
)

// tokensCommand returns the definition of the tokens command.
func (env *rootEnv) tokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens EXPR",
		Short: "Print the tokens of an expression",
		Long: `
Lexes the argument and prints one token per line, as tab-separated kind,
start offset, end offset and payload. The last token is always EOF.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file := source.NewFile("<expr>", args[0])
			var table intern.Table
			handler := reporter.NewHandler(env.newReporter(func(string) *source.File {
				return file
			}))

			tokens := lexer.Lex(file, &table, handler)
			env.logger.Debug("lexed",
				zap.Int("tokens", len(tokens)),
				zap.Int("identifiers", table.Len()),
				zap.Int("warnings", handler.Warnings()),
			)
			if err := env.printTokens(tokens, &table); err != nil {
				return err
			}
			if handler.Error() != nil {
				return errDiagnosed
			}
			return nil
		},
	}
}

type tokenOutput struct {
	Kind    string `yaml:"kind"`
	Start   int    `yaml:"start"`
	End     int    `yaml:"end"`
	Payload string `yaml:"payload,omitempty"`
}

func (env *rootEnv) printTokens(tokens []token.Token, table *intern.Table) error {
	if env.format == "yaml" {
		out := make([]tokenOutput, len(tokens))
		for i, tok := range tokens {
			out[i] = tokenOutput{
				Kind:    tok.Kind.String(),
				Start:   tok.Span.Start,
				End:     tok.Span.End,
				Payload: tok.Payload(table),
			}
		}
		enc := yaml.NewEncoder(env.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, tok := range tokens {
		line := fmt.Sprintf("%v\t%d\t%d", tok.Kind, tok.Span.Start, tok.Span.End)
		if payload := tok.Payload(table); payload != "" {
			line += "\t" + payload
		}
		if _, err := fmt.Fprintln(env.stdout, line); err != nil {
			return err
		}
	}
	return nil
}
