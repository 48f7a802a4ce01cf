package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
)

var checkFlags struct {
	estimate float64
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether an estimated cost fits the remaining budget",
	Long: `Check an estimated cost against the remaining daily budget without
charging anything.

The exit code is 0 when the operation would be allowed and 1 when it
would be denied, so scripts can gate paid work on it.

Examples:
  costguard check --estimate 1.50
  costguard check --estimate 0.25 --output json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Float64VarP(&checkFlags.estimate, "estimate", "e", 0, "estimated cost in USD")
	checkCmd.MarkFlagRequired("estimate")
}

// checkResult is the check command output.
type checkResult struct {
	Allowed   bool    `json:"allowed"`
	Estimate  float64 `json:"estimate"`
	Remaining float64 `json:"remaining"`
	Reason    string  `json:"reason,omitempty"`
}

func (r checkResult) String() string {
	if r.Allowed {
		return fmt.Sprintf("allowed: $%.2f fits in $%.2f remaining", r.Estimate, r.Remaining)
	}
	return fmt.Sprintf("denied: daily budget reached ($%.2f estimated, $%.2f remaining)", r.Estimate, r.Remaining)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	manager, err := openManager(cmd.Context(), cfg, nil)
	if err != nil {
		return cli.NewCommandError("check", err)
	}
	defer manager.Close()

	decision := manager.CanAfford(checkFlags.estimate, time.Now())

	result := checkResult{
		Allowed:   decision.Allowed,
		Estimate:  checkFlags.estimate,
		Remaining: decision.Remaining,
		Reason:    string(decision.Reason),
	}
	if err := cli.NewFormatter(cli.OutputFormat(outputFormat)).FormatTo(os.Stdout, result); err != nil {
		return err
	}

	if !decision.Allowed {
		// os.Exit skips deferred calls.
		manager.Close()
		os.Exit(1)
	}
	return nil
}
