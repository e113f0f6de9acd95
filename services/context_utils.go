package services

import (
	"context"
	"time"
)

// detachedContext keeps ctx values but outlives its cancellation, bounded by
// timeout. Used for work that continues after the HTTP response is written.
func detachedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
