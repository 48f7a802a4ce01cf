package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "costguard",
	Short: "Costguard - client-side cost control for metered AI operations",
	Long: `Costguard tracks the realized cost of paid AI operations against a
user-configured daily budget.

It provides:
  - A spend ledger with daily and monthly calendar windows
  - Admission checks that stop new paid operations once the budget is spent
  - An artifact cache so unchanged inputs never pay for regeneration
  - A journal of charged operations for history display`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "costguard.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
}
