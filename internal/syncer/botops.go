package syncer

import (
	"context"
	"sync"

	"tradebot-dashboard-go/internal/models"
	"tradebot-dashboard-go/internal/repository"

	"go.uber.org/zap"
)

// BotOperationsController owns the operation history of a single bot.
// It fetches once on construction (when a bot id is present), again on
// every parameter change, and on explicit Refetch. A parameter change
// supersedes any in-flight fetch: each fetch captures the generation at
// issue time, and a result is applied only while that generation is still
// current, so a stale response never overwrites a fresher one.
type BotOperationsController struct {
	logger *zap.Logger
	repo   repository.OperationAPI

	mu         sync.Mutex
	botID      string
	opts       models.ListOptions
	generation uint64
	state      State
	updates    chan struct{}
	wg         sync.WaitGroup
}

// NewBotOperationsController creates the controller and, when botID is
// non-empty, issues the initial fetch. With an empty botID the controller
// stays idle and issues no request.
func NewBotOperationsController(logger *zap.Logger, repo repository.OperationAPI, botID string, opts models.ListOptions) *BotOperationsController {
	c := &BotOperationsController{
		logger:  logger,
		repo:    repo,
		botID:   botID,
		opts:    opts,
		updates: make(chan struct{}, 1),
	}

	c.mu.Lock()
	if botID != "" {
		c.fetchLocked()
	}
	c.mu.Unlock()

	return c
}

// Snapshot returns a copy of the current view state.
func (c *BotOperationsController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Updates is a coalesced notification channel: at least one receive is
// possible after any state change.
func (c *BotOperationsController) Updates() <-chan struct{} {
	return c.updates
}

// SetBotID switches the controller to another bot. Switching to an empty
// id returns the controller to idle and discards any in-flight result.
func (c *BotOperationsController) SetBotID(botID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if botID == c.botID {
		return
	}
	c.botID = botID
	if botID == "" {
		c.generation++ // discard whatever is still in flight
		c.state = State{}
		notify(c.updates)
		return
	}
	c.fetchLocked()
}

// SetOptions re-fetches when the options differ by value from the current
// ones. Options are compared through their encoded query form.
func (c *BotOperationsController) SetOptions(opts models.ListOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if opts.Encode() == c.opts.Encode() {
		return
	}
	c.opts = opts
	if c.botID == "" {
		return
	}
	c.fetchLocked()
}

// Refetch re-issues the current query. No-op while idle.
func (c *BotOperationsController) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botID == "" {
		return
	}
	c.fetchLocked()
}

// Wait blocks until all outstanding fetches have completed. Intended for
// tests and for the snapshot server's request/response flow.
func (c *BotOperationsController) Wait() {
	c.wg.Wait()
}

// fetchLocked starts an async fetch for the current parameters. The
// caller must hold c.mu.
func (c *BotOperationsController) fetchLocked() {
	c.generation++
	gen := c.generation
	botID := c.botID
	opts := c.opts

	c.state.Loading = true
	c.state.Err = ""
	notify(c.updates)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		items, pagination, err := c.repo.ListForBot(context.Background(), botID, opts)

		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.generation {
			c.logger.Debug("Discarding superseded response", zap.String("bot_id", botID))
			return
		}

		c.state.Loading = false
		if err != nil {
			// Keep the stale items and pagination visible next to the error.
			c.state.Err = errorMessage(err)
			c.logger.Warn("Failed to fetch bot operations",
				zap.String("bot_id", botID),
				zap.Error(err),
			)
		} else {
			c.state.Items = items
			c.state.Pagination = pagination
			c.state.Err = ""
		}
		notify(c.updates)
	}()
}
