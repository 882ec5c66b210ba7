package syncer

import (
	"context"
	"sync"
	"time"

	"tradebot-dashboard-go/internal/models"
	"tradebot-dashboard-go/internal/repository"

	"go.uber.org/zap"
)

// LiveFeedController owns the global live-feed view. It fetches once on
// Start and then re-fetches on a fixed interval until Close. A parameter
// change resets the view state and restarts the cadence from zero instead
// of waiting out the remainder of the previous interval.
type LiveFeedController struct {
	logger   *zap.Logger
	repo     repository.FeedAPI
	interval time.Duration

	mu         sync.Mutex
	opts       models.FeedOptions
	generation uint64
	state      State
	updates    chan struct{}

	kick   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLiveFeedController creates the controller. Nothing is fetched until
// Start is called.
func NewLiveFeedController(logger *zap.Logger, repo repository.FeedAPI, opts models.FeedOptions, interval time.Duration) *LiveFeedController {
	return &LiveFeedController{
		logger:   logger,
		repo:     repo,
		interval: interval,
		opts:     opts,
		updates:  make(chan struct{}, 1),
		kick:     make(chan struct{}, 1),
	}
}

// Start launches the poll loop: an immediate fetch, then one fetch per
// interval. Calling Start more than once is a no-op.
func (c *LiveFeedController) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	c.logger.Info("Starting live feed poll loop", zap.Duration("interval", c.interval))
	go c.loop(ctx)
}

// Close stops the poll loop and waits for it to exit. No fetch fires
// after Close returns.
func (c *LiveFeedController) Close() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	c.logger.Info("Live feed poll loop stopped")
}

// Snapshot returns a copy of the current view state.
func (c *LiveFeedController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Updates is a coalesced notification channel: at least one receive is
// possible after any state change.
func (c *LiveFeedController) Updates() <-chan struct{} {
	return c.updates
}

// SetOptions replaces the feed window when the options differ by value
// from the current ones. The view state resets and the cadence restarts
// with an immediate fetch.
func (c *LiveFeedController) SetOptions(opts models.FeedOptions) {
	c.mu.Lock()
	if opts.Encode() == c.opts.Encode() {
		c.mu.Unlock()
		return
	}
	c.opts = opts
	c.generation++ // discard whatever is still in flight
	c.state = State{}
	notify(c.updates)
	c.mu.Unlock()

	notify(c.kick)
}

func (c *LiveFeedController) loop(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.fetch(ctx)
	ticker.Reset(c.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.kick:
			c.fetch(ctx)
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.fetch(ctx)
			ticker.Reset(c.interval)
		}
	}
}

// fetch performs one synchronous feed refresh. The result is dropped when
// the parameters changed while the request was in flight, or when the
// controller was torn down.
func (c *LiveFeedController) fetch(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	opts := c.opts
	c.state.Loading = true
	notify(c.updates)
	c.mu.Unlock()

	items, pagination, err := c.repo.ListFeed(ctx, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || ctx.Err() != nil {
		return
	}

	c.state.Loading = false
	if err != nil {
		// Keep the stale items and pagination visible next to the error.
		c.state.Err = errorMessage(err)
		c.logger.Warn("Failed to refresh live feed", zap.Error(err))
	} else {
		c.state.Items = items
		c.state.Pagination = pagination
		c.state.Err = ""
	}
	notify(c.updates)
}
