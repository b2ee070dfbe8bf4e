package bulk_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-jobmarket/internal/bulk"
	"go-jobmarket/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDedupe(t *testing.T) {
	got := bulk.Dedupe([]string{" a", "b", "a", "", "c", "b "})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestRequireNotes(t *testing.T) {
	assert.True(t, apperror.HasCode(bulk.RequireNotes("  "), apperror.CodeInvalidInput))
	assert.NoError(t, bulk.RequireNotes("duplicate listing"))
}

func TestCoordinator_PartialSuccessKeepsInputOrder(t *testing.T) {
	c := bulk.NewCoordinator(3, 10, zap.NewNop())
	ids := []string{"a1", "a2", "a3", "a4", "a5"}

	res, err := c.Run(context.Background(), "ad.approve", ids, func(ctx context.Context, id string) error {
		switch id {
		case "a2":
			return apperror.InvalidTransition("ad", "DRAFT", "approve")
		case "a4":
			return apperror.New(apperror.CodeMouRequired, "employer has no valid MOU", 422)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3", "a5"}, res.Succeeded)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, bulk.Failure{ID: "a2", Code: apperror.CodeInvalidState, Reason: "cannot approve ad in status DRAFT"}, res.Failed[0])
	assert.Equal(t, "a4", res.Failed[1].ID)
	assert.Equal(t, apperror.CodeMouRequired, res.Failed[1].Code)
}

func TestCoordinator_UnknownErrorsBecomeInternal(t *testing.T) {
	c := bulk.NewCoordinator(1, 10, zap.NewNop())

	res, err := c.Run(context.Background(), "ad.approve", []string{"x"}, func(ctx context.Context, id string) error {
		return errors.New("connection reset")
	})

	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, apperror.CodeInternalError, res.Failed[0].Code)
	assert.Empty(t, res.Succeeded)
}

func TestCoordinator_DuplicatesRunOnce(t *testing.T) {
	c := bulk.NewCoordinator(2, 10, zap.NewNop())
	var mu sync.Mutex
	calls := map[string]int{}

	res, err := c.Run(context.Background(), "employer.approve", []string{"e1", "e1", "e2"}, func(ctx context.Context, id string) error {
		mu.Lock()
		calls[id]++
		mu.Unlock()
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"e1": 1, "e2": 1}, calls)
	assert.Equal(t, []string{"e1", "e2"}, res.Succeeded)
}

func TestCoordinator_Validation(t *testing.T) {
	c := bulk.NewCoordinator(2, 2, zap.NewNop())
	noop := func(ctx context.Context, id string) error { return nil }

	_, err := c.Run(context.Background(), "ad.approve", nil, noop)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))

	_, err = c.Run(context.Background(), "ad.approve", []string{" ", ""}, noop)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))

	_, err = c.Run(context.Background(), "ad.approve", []string{"a", "b", "c"}, noop)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestCoordinator_BoundsConcurrency(t *testing.T) {
	c := bulk.NewCoordinator(2, 50, zap.NewNop())
	var inFlight, peak int32

	ids := make([]string, 12)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}

	_, err := c.Run(context.Background(), "ad.approve", ids, func(ctx context.Context, id string) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestCoordinator_CancelledContext(t *testing.T) {
	c := bulk.NewCoordinator(1, 10, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := c.Run(ctx, "ad.reject", []string{"a", "b"}, func(ctx context.Context, id string) error {
		t.Error("item must not run after cancellation")
		return nil
	})

	require.NoError(t, err)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, bulk.CodeCancelled, res.Failed[0].Code)
}
