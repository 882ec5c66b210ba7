package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"tradebot-dashboard-go/internal/models"
	"tradebot-dashboard-go/internal/repository"
	"tradebot-dashboard-go/internal/syncer"

	"go.uber.org/zap"
)

// APIHandler serves controller snapshots to the rendering layer. It keeps
// one BotOperationsController per bot so repeated requests for the same
// bot reuse the subscription instead of rebuilding it.
type APIHandler struct {
	log    *zap.Logger
	feed   *syncer.LiveFeedController
	opRepo repository.OperationAPI

	startTime time.Time

	mu   sync.Mutex
	bots map[string]*syncer.BotOperationsController
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, feed *syncer.LiveFeedController, opRepo repository.OperationAPI) *APIHandler {
	return &APIHandler{
		log:       log,
		feed:      feed,
		opRepo:    opRepo,
		startTime: time.Now(),
		bots:      make(map[string]*syncer.BotOperationsController),
	}
}

// Routes wires up the handler's endpoints.
func (h *APIHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/feed", h.FeedHandler)
	mux.HandleFunc("/api/operations", h.OperationsHandler)
	mux.HandleFunc("/status", h.StatusHandler)
	mux.HandleFunc("/health", h.HealthHandler)
	return mux
}

// StatusHandler reports process uptime and the number of live
// subscriptions.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	subscriptions := len(h.bots)
	h.mu.Unlock()

	status := struct {
		StartTime     string `json:"start_time"`
		Uptime        string `json:"uptime"`
		Subscriptions int    `json:"subscriptions"`
	}{
		StartTime:     h.startTime.Format(time.RFC3339),
		Uptime:        time.Since(h.startTime).String(),
		Subscriptions: subscriptions,
	}
	h.writeJSON(w, status)
}

// FeedHandler returns the live-feed controller's current snapshot.
func (h *APIHandler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.feed.Snapshot())
}

// OperationsHandler returns the operation-history snapshot for one bot.
// Expects bot_id plus the optional page, limit, side, days parameters.
func (h *APIHandler) OperationsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	botID := query.Get("bot_id")
	if botID == "" {
		http.Error(w, "bot_id is required", http.StatusBadRequest)
		return
	}

	opts := models.ListOptions{
		Page:  intParam(query.Get("page")),
		Limit: intParam(query.Get("limit")),
		Days:  intParam(query.Get("days")),
	}
	if side := query.Get("side"); side != "" {
		s := models.Side(side)
		opts.Side = &s
	}

	c := h.botController(botID, opts)
	c.Wait()
	h.writeJSON(w, c.Snapshot())
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// botController returns the subscription for a bot, creating it on first
// use and pushing new options into an existing one.
func (h *APIHandler) botController(botID string, opts models.ListOptions) *syncer.BotOperationsController {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.bots[botID]
	if !ok {
		c = syncer.NewBotOperationsController(h.log.Named("bot-ops"), h.opRepo, botID, opts)
		h.bots[botID] = c
	} else {
		c.SetOptions(opts)
	}
	return c
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to write response", zap.Error(err))
	}
}

func intParam(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
