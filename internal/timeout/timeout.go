// Package timeout provides a reusable wrapper that races an operation
// against a time ceiling, returning a tagged timeout error instead of
// ad hoc per-call races.
package timeout

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout tags results of operations that exceeded their ceiling.
var ErrTimeout = errors.New("operation timed out")

// Run executes op with the given ceiling. On expiry the named operation
// is abandoned (its context is cancelled) and ErrTimeout is returned,
// wrapped with the operation name.
func Run[T any](ctx context.Context, name string, ceiling time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T

	opCtx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := op(opCtx)
		done <- outcome{v, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return zero, fmt.Errorf("%s: %w", name, out.err)
		}
		return out.value, nil
	case <-opCtx.Done():
		if errors.Is(opCtx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%s: %w after %s", name, ErrTimeout, ceiling)
		}
		return zero, fmt.Errorf("%s: %w", name, opCtx.Err())
	}
}
