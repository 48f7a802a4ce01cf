package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context that is cancelled on SIGINT or
// SIGTERM. The agent command uses it as its run context so Ctrl-C and
// service stop flush the ledger and close the stores cleanly.
//
// The signal registration lives for the rest of the process; there is
// no way to undo it, matching the one-shot shutdown it exists for.
func SetupSignalHandler() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
