package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxlane/costguard/pkg/cli"
)

var recordFlags struct {
	service string
	amount  float64
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the realized cost of a completed operation",
	Long: `Record the realized cost of a paid operation that already completed.

Recording always succeeds for valid amounts, even past the daily limit:
the operation already ran and its cost is a fact.

Examples:
  costguard record --service speech-synthesis --amount 0.25
  costguard record --service text-generation --amount 1.10`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVarP(&recordFlags.service, "service", "s", "", "service that incurred the cost")
	recordCmd.Flags().Float64VarP(&recordFlags.amount, "amount", "a", 0, "realized cost in USD")
	recordCmd.MarkFlagRequired("service")
	recordCmd.MarkFlagRequired("amount")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	manager, err := openManager(ctx, cfg, nil)
	if err != nil {
		return cli.NewCommandError("record", err)
	}
	defer manager.Close()

	now := time.Now()
	if err := manager.RecordUsage(ctx, recordFlags.service, recordFlags.amount, now); err != nil {
		return cli.NewCommandError("record", err)
	}

	usage := manager.Usage(now)
	fmt.Printf("recorded $%.2f for %s ($%.2f of $%.2f used today)\n",
		recordFlags.amount, recordFlags.service, usage.Daily.Total, usage.Daily.Limit)
	return nil
}
