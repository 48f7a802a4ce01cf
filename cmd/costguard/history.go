package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
	"github.com/voxlane/costguard/pkg/spend/window"
)

var historyFlags struct {
	day string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show charged operations for a day",
	Long: `Show the journal of charged operations for a daily window, with
per-service totals.

Requires the journal to be enabled in configuration. The ledger stays
authoritative for budget totals; history is display only.

Examples:
  costguard history
  costguard history --day 2026-08-01 --output json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFlags.day, "day", "d", "", "daily window to show (YYYY-MM-DD, default today)")
}

// historyEntry is one charged operation in the history output.
type historyEntry struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// historyResult is the history command output.
type historyResult struct {
	Day      string             `json:"day"`
	Events   []historyEntry     `json:"events"`
	Totals   map[string]float64 `json:"totals"`
	DayTotal float64            `json:"day_total"`
}

func (r historyResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "History for %s (%d operations)\n", r.Day, len(r.Events))
	for _, ev := range r.Events {
		fmt.Fprintf(&b, "  %s  %-20s $%.4f\n", ev.Time, ev.Service, ev.Amount)
	}
	for _, service := range sortedKeys(r.Totals) {
		fmt.Fprintf(&b, "  total %-14s $%.4f\n", service, r.Totals[service])
	}
	fmt.Fprintf(&b, "  day total            $%.4f", r.DayTotal)
	return b.String()
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return cli.NewConfigError("journal.enabled", "the history command requires the journal")
	}

	ctx := cmd.Context()
	manager, err := openManager(ctx, cfg, nil)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer manager.Close()

	day := window.Window(historyFlags.day)
	if day.IsZero() {
		day = window.NewSystemResolver(time.Local).Daily(time.Now())
	}

	events, err := manager.History(ctx, day)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	totals, err := manager.Journal().ServiceTotals(ctx, day)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	result := historyResult{
		Day:    string(day),
		Events: make([]historyEntry, 0, len(events)),
		Totals: totals,
	}
	for _, ev := range events {
		result.Events = append(result.Events, historyEntry{
			Time:    ev.RecordedAt.Local().Format("15:04:05"),
			Service: ev.Service,
			Amount:  ev.Amount,
		})
	}
	for _, total := range totals {
		result.DayTotal += total
	}

	return cli.NewFormatter(cli.OutputFormat(outputFormat)).FormatTo(os.Stdout, result)
}
