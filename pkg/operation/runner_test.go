package operation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type funcOperation func(ctx context.Context) error

func (f funcOperation) Execute(ctx context.Context) error { return f(ctx) }

func TestOperationRunner(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	runner := NewRunner(&logger)

	t.Run("success", func(t *testing.T) {
		calls := 0
		err := runner.Run(context.Background(), funcOperation(func(ctx context.Context) error {
			calls++
			return nil
		}))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("error_is_wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		err := runner.Run(context.Background(), funcOperation(func(ctx context.Context) error {
			return boom
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "executing operation: boom")
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("cancelled_before_start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := runner.Run(ctx, funcOperation(func(ctx context.Context) error {
			t.Fatal("operation should not run")
			return nil
		}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
