package timeout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("fast operation returns its value", func(t *testing.T) {
		got, err := Run(ctx, "fetch", time.Second, func(context.Context) (int, error) {
			return 42, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	})

	t.Run("operation error is wrapped with the name", func(t *testing.T) {
		opErr := errors.New("boom")
		_, err := Run(ctx, "fetch", time.Second, func(context.Context) (int, error) {
			return 0, opErr
		})
		if !errors.Is(err, opErr) {
			t.Fatalf("got %v, want wrapped boom", err)
		}
		if !strings.Contains(err.Error(), "fetch") {
			t.Errorf("error %q does not name the operation", err)
		}
	})

	t.Run("slow operation times out", func(t *testing.T) {
		_, err := Run(ctx, "fetch", 10*time.Millisecond, func(c context.Context) (int, error) {
			select {
			case <-time.After(5 * time.Second):
				return 1, nil
			case <-c.Done():
				return 0, c.Err()
			}
		})
		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("got %v, want ErrTimeout", err)
		}
	})

	t.Run("cancelled parent context is not a timeout", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Run(cancelled, "fetch", time.Second, func(c context.Context) (int, error) {
			<-c.Done()
			return 0, c.Err()
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrTimeout) {
			t.Errorf("cancellation mis-tagged as timeout: %v", err)
		}
	})
}
