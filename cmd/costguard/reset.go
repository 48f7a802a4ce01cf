package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
)

var resetFlags struct {
	yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Zero all recorded usage",
	Long: `Zero the recorded usage for both the daily and monthly windows.

This is an explicit user action; windows otherwise only reset on
calendar boundaries. The journal of past operations is not touched.

Examples:
  costguard reset --yes`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVarP(&resetFlags.yes, "yes", "y", false, "confirm the reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetFlags.yes {
		return fmt.Errorf("reset discards all recorded usage; re-run with --yes to confirm")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	manager, err := openManager(ctx, cfg, nil)
	if err != nil {
		return cli.NewCommandError("reset", err)
	}
	defer manager.Close()

	if err := manager.ResetAll(ctx, time.Now()); err != nil {
		return cli.NewCommandError("reset", err)
	}

	fmt.Println("usage reset: daily and monthly totals are now $0.00")
	return nil
}
