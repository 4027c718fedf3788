package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/phint/php/typehint"
	"github.com/spf13/cobra"
)

func newHintCmd() *cobra.Command {
	var hintOverwrite bool
	var noNullable bool

	cmd := &cobra.Command{
		Use:   "hint [path]",
		Short: "Add documented type declarations to PHP source",
		Long: `Rewrite PHP source so that parameter and return types documented
in docblocks become real declarations, printing the result to stdout.

If a file is provided, it must have a .php extension. A directory is
rewritten recursively, like "phint scan".
If no path is provided, reads PHP source from stdin.

Use -w to overwrite the file in place (requires a file argument).
Use --no-nullable for codebases that cannot use the ?type syntax;
nullable parameters then get a "= null" default instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if hintOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				filename = "stdin"
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				if info, err := os.Stat(filename); err == nil && info.IsDir() {
					return runScan(filename, typehint.Config{Nullable: !noNullable}, hintOverwrite)
				}
				ext := filepath.Ext(filename)
				if ext != ".php" {
					return fmt.Errorf("expected .php file, got %s", ext)
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			config := typehint.Config{Nullable: !noNullable}
			output, _ := typehint.RewriteStandalone(source, filepath.Base(filename), config)

			if hintOverwrite {
				return os.WriteFile(filename, []byte(output), 0644)
			}
			_, err = os.Stdout.WriteString(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&hintOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVar(&noNullable, "no-nullable", false, "avoid the ?type syntax, use = null defaults")

	return cmd
}
