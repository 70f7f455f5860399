// Package graceful ties process lifetime to OS termination signals.
package graceful

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a context that is cancelled on SIGINT or SIGTERM, giving
// long-running consumers a chance to drain and commit before exiting. After
// the first signal the handler steps aside, so a second signal falls through
// to the default disposition and ends the process immediately.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			signal.Stop(sigChan)
			return
		case <-sigChan:
			log.Println("Received termination signal, starting graceful shutdown...")
			cancel()
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
