// Costguard is a client-side cost-control tool for metered AI
// operations such as speech synthesis and text generation.
//
// It keeps a local ledger of realized spend in calendar windows,
// refuses new paid operations once the daily budget is exhausted, and
// caches generated artifacts so unchanged inputs never pay twice.
//
// Usage:
//
//	# Show current budget position
//	costguard status
//
//	# Check whether an estimated cost fits the remaining budget
//	costguard check --estimate 1.50
//
//	# Record the realized cost of a completed operation
//	costguard record --service speech-synthesis --amount 0.25
//
//	# Show charged operations for a day
//	costguard history --day 2026-08-23
//
//	# Run the agent: metrics endpoint, maintenance, config reload
//	costguard run --config /etc/costguard/config.yaml
package main

func main() {
	Execute()
}
