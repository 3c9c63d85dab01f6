package sigctx

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// NotifyContext is canceled on SIGINT, SIGTERM or SIGQUIT.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}

// CloseContext bounds a graceful shutdown that starts after the signal
// context is already done.
func CloseContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
