package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals derives a context that is cancelled on SIGINT or
// SIGTERM, so an interrupted audit stops fetching and releases its data
// source instead of leaving a half-written artifact set behind.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Context returns a signal-aware root context for one CLI invocation.
func Context() (context.Context, context.CancelFunc) {
	return ContextWithSignals(context.Background())
}
