package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// watchSignals cancels the returned context on SIGINT/SIGTERM and calls
// kick on SIGUSR1 or SIGCONT. The kick signals are the daemon
// equivalent of a window regaining focus or visibility: an immediate
// opportunistic poll.
func watchSignals(ctx context.Context, kick func()) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	kickChan := make(chan os.Signal, 1)
	signal.Notify(kickChan, syscall.SIGUSR1, syscall.SIGCONT)

	go func() {
		for {
			select {
			case <-ctx.Done():
				signal.Stop(kickChan)
				return
			case <-kickChan:
				kick()
			}
		}
	}()

	return ctx, cancel
}
