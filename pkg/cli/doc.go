/*
Package cli provides command-line interface utilities for costguard.

The cli package includes output formatters, error types, and signal
handling helpers used by the costguard command.

Output Formatting:

Commands support text and JSON output for displaying results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
