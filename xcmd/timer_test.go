package xcmd

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodicRun(t *testing.T) {
	t.Run("executes function periodically", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer cancel()

		counter := 0
		var mu sync.Mutex

		err := PeriodicRun(ctx, func(_ context.Context) error {
			mu.Lock()
			counter++
			mu.Unlock()
			return nil
		}, 50*time.Millisecond)

		require.Error(t, err)
		assert.Equal(t, context.DeadlineExceeded, err)

		mu.Lock()
		count := counter
		mu.Unlock()

		assert.GreaterOrEqual(t, count, 3)
		assert.LessOrEqual(t, count, 6)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		counter := 0
		var mu sync.Mutex

		done := make(chan error, 1)
		go func() {
			done <- PeriodicRun(ctx, func(_ context.Context) error {
				mu.Lock()
				counter++
				mu.Unlock()
				return nil
			}, 50*time.Millisecond)
		}()

		time.Sleep(125 * time.Millisecond)
		cancel()

		err := <-done
		require.Error(t, err)
		assert.Equal(t, context.Canceled, err)

		mu.Lock()
		count := counter
		mu.Unlock()

		assert.GreaterOrEqual(t, count, 1)
		assert.LessOrEqual(t, count, 4)
	})

	t.Run("stops on execute function error", func(t *testing.T) {
		ctx := context.Background()

		counter := 0
		expectedErr := errors.New("execution error")

		err := PeriodicRun(ctx, func(_ context.Context) error {
			counter++
			if counter >= 3 {
				return expectedErr
			}
			return nil
		}, 10*time.Millisecond)

		require.Error(t, err)
		assert.Equal(t, expectedErr, err)
		assert.Equal(t, 3, counter)
	})

	t.Run("waits for first tick before execution", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		defer cancel()

		executed := false
		var mu sync.Mutex

		done := make(chan error, 1)
		go func() {
			done <- PeriodicRun(ctx, func(_ context.Context) error {
				mu.Lock()
				executed = true
				mu.Unlock()
				return nil
			}, 50*time.Millisecond)
		}()

		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		firstCheck := executed
		mu.Unlock()
		assert.False(t, firstCheck, "should not execute before first tick")

		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		secondCheck := executed
		mu.Unlock()
		assert.True(t, secondCheck, "should execute after first tick")

		<-done
	})
}
