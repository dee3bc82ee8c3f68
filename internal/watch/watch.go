// Package watch re-runs a function on a fixed interval until cancelled.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval indicates a non-positive interval.
var ErrInvalidInterval = errors.New("watch: interval must be positive")

// Func is invoked once per tick.
type Func func(ctx context.Context) error

// Run calls fn immediately and then once per interval. It returns nil when
// ctx is done, including when fn fails because ctx was cancelled under it.
// Any other error from fn is returned unchanged.
func Run(ctx context.Context, interval time.Duration, fn Func) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return nil
	}

	if err := call(ctx, fn); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := call(ctx, fn); err != nil {
				return err
			}
		}
	}
}

// call runs fn and drops its error once ctx is done.
func call(ctx context.Context, fn Func) error {
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
