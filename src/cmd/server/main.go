package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "msaccount",
		Short: "Customer account service",
		Long: `msaccount manages customer accounts, deposits and withdrawals with
tiered commissions, commission rules and operational reports.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}
