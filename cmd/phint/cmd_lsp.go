package main

import (
	"github.com/dhamidi/phint/php/codebase"
	"github.com/dhamidi/phint/php/typehint"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var noNullable bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer("0.1.0", typehint.Config{Nullable: !noNullable})
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&noNullable, "no-nullable", false, "avoid the ?type syntax in suggestions")

	return cmd
}
