package graceful

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestContextCancelledOnSignal(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := Context(context.Background())
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond) // give the signal handler time to get ready
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("Failed to send SIGINT: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("ctx.Err() = %v; want context.Canceled", ctx.Err())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the signal to cancel the context")
	}
}

func TestContextCancelledByCaller(t *testing.T) {
	ctx, cancel := Context(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("cancel did not propagate to the derived context")
	}
}
