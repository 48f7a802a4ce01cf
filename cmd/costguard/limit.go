package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voxlane/costguard/pkg/cli"
)

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Show or change the daily budget limit",
}

var limitGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the configured daily limit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("$%.2f\n", cfg.Budget.DailyLimit)
		return nil
	},
}

var limitSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the daily limit in the config file",
	Long: `Set the daily budget limit by rewriting the config file.

A running agent picks the change up through its config watcher, so the
new limit applies to future admission decisions without a restart.
Already-recorded usage is not rewritten.

Examples:
  costguard limit set 25.00`,
	Args: cobra.ExactArgs(1),
	RunE: runLimitSet,
}

func init() {
	rootCmd.AddCommand(limitCmd)
	limitCmd.AddCommand(limitGetCmd)
	limitCmd.AddCommand(limitSetCmd)
}

func runLimitSet(cmd *cobra.Command, args []string) error {
	limit, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}
	if limit <= 0 {
		return fmt.Errorf("daily limit must be positive, got %.2f", limit)
	}

	// Rewrite only the budget section, keeping unknown keys intact.
	// Comments in the file are not preserved.
	raw := map[string]any{}
	data, err := os.ReadFile(cfgFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cli.NewConfigError(cfgFile, fmt.Sprintf("failed to parse: %v", err))
		}
	case os.IsNotExist(err):
		// A missing file is created with just the budget section.
	default:
		return cli.NewConfigError(cfgFile, err.Error())
	}

	budget, _ := raw["budget"].(map[string]any)
	if budget == nil {
		budget = map[string]any{}
	}
	budget["daily_limit"] = limit
	raw["budget"] = budget

	out, err := yaml.Marshal(raw)
	if err != nil {
		return cli.NewCommandError("limit set", err)
	}
	if err := os.WriteFile(cfgFile, out, 0o644); err != nil {
		return cli.NewCommandError("limit set", err)
	}

	fmt.Printf("daily limit set to $%.2f\n", limit)
	return nil
}
