package util

import (
	"context"
	"time"
)

const (
	CONTEXT_TIMEOUT = 5 * time.Second
)

// GetContextWithTimeout bounds a single gateway call.
func GetContextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, CONTEXT_TIMEOUT)
}
