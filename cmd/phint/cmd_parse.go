package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .php file and dump the result",
		Long: `Parse a .php file and dump what the tool sees.

Formats:
  model   declarations with their docblocks (default)
  tokens  the raw token stream`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			if ext := filepath.Ext(filename); ext != ".php" {
				return fmt.Errorf("expected .php file, got %s", ext)
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read php file: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			switch outputFormat {
			case "model":
				model := php.ParseFile(data, filepath.Base(filename))
				return enc.Encode(model)
			case "tokens":
				tokens := parser.Tokenize(data, filepath.Base(filename))
				out := make([]tokenDump, 0, len(tokens))
				for _, tok := range tokens {
					out = append(out, tokenDump{
						Kind:    tok.Kind.String(),
						Literal: tok.Literal,
						Line:    tok.Span.Start.Line,
						Column:  tok.Span.Start.Column,
					})
				}
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "model", "output format (model, tokens)")

	return cmd
}

type tokenDump struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}
