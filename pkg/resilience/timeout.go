package resilience

import (
	"context"
	"fmt"
	"time"
)

// WithTimeout runs fn under a context derived from ctx that expires after
// timeout. A non-positive timeout runs fn with ctx unchanged. fn must honour
// its context; the deadline error is wrapped with name for the caller's logs.
func WithTimeout(ctx context.Context, timeout time.Duration, name string, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := fn(timeoutCtx)
	if err != nil && timeoutCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return fmt.Errorf("%s: %w (limit: %v)", name, context.DeadlineExceeded, timeout)
	}
	return err
}
