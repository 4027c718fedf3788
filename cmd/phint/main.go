package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "phint",
		Short: "A toasty PHP type-hinter",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newHintCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
