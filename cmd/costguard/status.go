package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current budget position",
	Long: `Show recorded spend for the current day and month, the remaining daily
budget, and the alert tier.

Examples:
  costguard status
  costguard status --output json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusResult is the status command output.
type statusResult struct {
	DailyWindow    string             `json:"daily_window"`
	DailyTotal     float64            `json:"daily_total"`
	DailyLimit     float64            `json:"daily_limit"`
	Remaining      float64            `json:"remaining"`
	Percentage     float64            `json:"percentage"`
	Tier           string             `json:"tier"`
	DailyByService map[string]float64 `json:"daily_by_service,omitempty"`
	MonthlyWindow  string             `json:"monthly_window"`
	MonthlyTotal   float64            `json:"monthly_total"`
}

func (r statusResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %s: $%.2f of $%.2f used ($%.2f remaining, %.0f%%, %s)\n",
		r.DailyWindow, r.DailyTotal, r.DailyLimit, r.Remaining, r.Percentage*100, r.Tier)
	for _, service := range sortedKeys(r.DailyByService) {
		fmt.Fprintf(&b, "  %-20s $%.2f\n", service, r.DailyByService[service])
	}
	fmt.Fprintf(&b, "Month %s: $%.2f total", r.MonthlyWindow, r.MonthlyTotal)
	return b.String()
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	manager, err := openManager(ctx, cfg, nil)
	if err != nil {
		return cli.NewCommandError("status", err)
	}
	defer manager.Close()

	now := time.Now()
	usage := manager.Usage(now)

	result := statusResult{
		DailyWindow:    string(usage.Daily.Window),
		DailyTotal:     usage.Daily.Total,
		DailyLimit:     usage.Daily.Limit,
		Remaining:      usage.Daily.Remaining,
		Percentage:     usage.Daily.Percentage,
		Tier:           string(manager.Status(now)),
		DailyByService: usage.Daily.ByService,
		MonthlyWindow:  string(usage.Monthly.Window),
		MonthlyTotal:   usage.Monthly.Total,
	}

	return cli.NewFormatter(cli.OutputFormat(outputFormat)).FormatTo(os.Stdout, result)
}

// sortedKeys returns map keys in lexical order so text output is
// stable across runs.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
