package syncer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"tradebot-dashboard-go/internal/gateway"
	"tradebot-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeOperationAPI satisfies repository.OperationAPI with a pluggable
// list function.
type fakeOperationAPI struct {
	listFn func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error)
}

func (f *fakeOperationAPI) ListForBot(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
	return f.listFn(ctx, botID, opts)
}

func (f *fakeOperationAPI) Create(ctx context.Context, op models.TradingOperation) (*models.TradingOperation, error) {
	return &op, nil
}

func (f *fakeOperationAPI) GetByID(ctx context.Context, tradeID string) (*models.TradingOperation, error) {
	return nil, gateway.ErrNotFound
}

func opsPage(symbols ...string) []models.TradingOperation {
	ops := make([]models.TradingOperation, 0, len(symbols))
	for _, s := range symbols {
		ops = append(ops, models.TradingOperation{BotID: "b1", Symbol: s, Side: models.SideBuy, Quantity: 1, Price: 100})
	}
	return ops
}

func TestBotOperations_InitialFetch(t *testing.T) {
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			assert.Equal(t, "b1", botID)
			return opsPage("BTCUSDT"), models.DerivePagination(1, 1, 1), nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{})
	c.Wait()

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Pagination.TotalCount)
}

func TestBotOperations_EmptyBotIDStaysIdle(t *testing.T) {
	var calls atomic.Int64
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			calls.Add(1)
			return nil, models.Pagination{}, nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "", models.ListOptions{})
	c.Refetch() // also a no-op while idle
	c.Wait()

	assert.Equal(t, int64(0), calls.Load())
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Items)
}

func TestBotOperations_FailureKeepsStaleData(t *testing.T) {
	var fail atomic.Bool
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			if fail.Load() {
				return nil, models.Pagination{}, &gateway.APIError{Message: "bot is archived"}
			}
			return opsPage("BTCUSDT", "ETHUSDT"), models.DerivePagination(1, 1, 2), nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{})
	c.Wait()
	assert.Len(t, c.Snapshot().Items, 2)

	// Now the backend starts failing.
	fail.Store(true)
	c.Refetch()
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, "bot is archived", snap.Err)
	// Last-known-good data stays visible next to the error.
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.Pagination.TotalCount)
}

func TestBotOperations_RefetchIsIdempotent(t *testing.T) {
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			return opsPage("BTCUSDT"), models.DerivePagination(1, 1, 1), nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{})
	c.Wait()
	once := c.Snapshot()

	c.Refetch()
	c.Refetch()
	c.Wait()
	twice := c.Snapshot()

	assert.Equal(t, once, twice)
}

func TestBotOperations_StaleResponseIsDiscarded(t *testing.T) {
	// Fetch A blocks until released; fetch B (triggered by a parameter
	// change) resolves first. A's late resolution must not overwrite B.
	release := make(chan struct{})
	var calls atomic.Int64
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			if calls.Add(1) == 1 {
				<-release
				return opsPage("STALE"), models.DerivePagination(1, 1, 1), nil
			}
			return opsPage("FRESH"), models.DerivePagination(2, 2, 4), nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{})

	// Supersede the blocked fetch with a new page.
	page := 2
	c.SetOptions(models.ListOptions{Page: &page})

	// Wait for B's result to land.
	assert.Eventually(t, func() bool {
		snap := c.Snapshot()
		return len(snap.Items) == 1 && snap.Items[0].Symbol == "FRESH"
	}, time.Second, 5*time.Millisecond)

	// Let A resolve late, then make sure it changed nothing.
	close(release)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, "FRESH", snap.Items[0].Symbol)
	assert.Equal(t, 4, snap.Pagination.TotalCount)
}

func TestBotOperations_UnchangedOptionsDoNotRefetch(t *testing.T) {
	var calls atomic.Int64
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			calls.Add(1)
			return opsPage("BTCUSDT"), models.DerivePagination(1, 1, 1), nil
		},
	}

	page := 1
	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{Page: &page})
	c.Wait()

	samePage := 1
	c.SetOptions(models.ListOptions{Page: &samePage})
	c.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestBotOperations_SwitchingToEmptyBotResets(t *testing.T) {
	repo := &fakeOperationAPI{
		listFn: func(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
			return opsPage("BTCUSDT"), models.DerivePagination(1, 1, 1), nil
		},
	}

	c := NewBotOperationsController(zap.NewNop(), repo, "b1", models.ListOptions{})
	c.Wait()
	assert.Len(t, c.Snapshot().Items, 1)

	c.SetBotID("")
	c.Wait()

	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
}
