package cli

import (
	"io"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"budgetapp/internal/log"
)

func TestGracefulShutdownRunsCleanup(t *testing.T) {
	logger := log.New(log.Config{
		Component: log.ComponentApp,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})

	cleaned := make(chan struct{})
	ctx, done := GracefulShutdown(logger, 5*time.Second, func() { close(cleaned) })

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send signal: %v", err)
	}

	select {
	case <-cleaned:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup not invoked after shutdown signal")
	}
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled after shutdown signal")
	}

	WaitForShutdown(ctx, done)
}
