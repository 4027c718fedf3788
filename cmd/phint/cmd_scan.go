package main

import (
	"fmt"
	"time"

	"github.com/dhamidi/phint/php/scanner"
	"github.com/dhamidi/phint/php/typehint"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var write bool
	var noNullable bool

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Rewrite every .php file under a directory",
		Long: `Walk a directory tree, build a project-wide symbol index, and add
documented type declarations to every .php file found.

Without --write this is a dry run that only reports what would change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], typehint.Config{Nullable: !noNullable}, write)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write rewritten files back in place")
	cmd.Flags().BoolVar(&noNullable, "no-nullable", false, "avoid the ?type syntax, use = null defaults")

	return cmd
}

func runScan(path string, config typehint.Config, write bool) error {
	s := scanner.New()
	id := s.Submit(scanner.Request{
		Path:   path,
		Config: config,
		Write:  write,
	})

	var result *scanner.Result
	for {
		r, ok := s.Get(id)
		if !ok {
			return fmt.Errorf("scan %s disappeared", id)
		}
		if r.Status == scanner.StatusCompleted || r.Status == scanner.StatusFailed {
			result = r
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	for _, f := range result.Files {
		if f.Error != "" {
			fmt.Printf("[ERROR] %s: %s\n", f.Path, f.Error)
		} else if f.Changed {
			fmt.Printf("[HINT] %s (%d declarations)\n", f.Path, len(f.Hints))
		}
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Files scanned: %d\n", len(result.Files))
	fmt.Printf("Files changed: %d\n", result.ChangedCount())
	fmt.Printf("Errors: %d\n", len(result.Errors))
	if result.Status == scanner.StatusFailed {
		return fmt.Errorf("scan failed: %s", result.Error)
	}
	if !write && result.ChangedCount() > 0 {
		fmt.Println("\nDry run: pass -w to write these changes.")
	}
	return nil
}
