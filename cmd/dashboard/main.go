package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradebot-dashboard-go/internal/config"
	"tradebot-dashboard-go/internal/database"
	"tradebot-dashboard-go/internal/gateway"
	"tradebot-dashboard-go/internal/logger"
	"tradebot-dashboard-go/internal/models"
	"tradebot-dashboard-go/internal/repository"
	"tradebot-dashboard-go/internal/session"
	"tradebot-dashboard-go/internal/syncer"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "./configs", "path to the config directory")
	seedToken := flag.String("token", "", "store a session token and exit")
	flag.Parse()

	// Load application configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	// Initialize the local session database
	db, err := database.New(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open session database", zap.Error(err))
	}
	tokens := session.NewDBStore(db)

	// Token acquisition itself is out of scope; -token stands in for
	// sign-in by seeding the persisted store.
	if *seedToken != "" {
		if err := tokens.Set(*seedToken); err != nil {
			log.Fatal("Failed to store session token", zap.Error(err))
		}
		log.Info("Session token stored")
		return
	}

	// Gateway and repositories
	gw := gateway.New(&cfg.API, tokens, log.Named("gateway"))
	opRepo := repository.NewOperationRepository(gw, log.Named("operations"))
	feedRepo := repository.NewFeedRepository(gw, log.Named("feed"))

	// Live feed controller, polling at the configured interval
	interval := time.Duration(cfg.Sync.PollInterval) * time.Second
	feedOpts := models.FeedOptions{Limit: &cfg.Sync.PageSize}
	feed := syncer.NewLiveFeedController(log.Named("live-feed"), feedRepo, feedOpts, interval)

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	feed.Start(ctx)

	// Log feed updates as they land
	go func() {
		for range feed.Updates() {
			snap := feed.Snapshot()
			if snap.Err != "" {
				log.Warn("Live feed error", zap.String("error", snap.Err))
			} else if !snap.Loading {
				log.Info("Live feed updated",
					zap.Int("entries", len(snap.Items)),
					zap.Int("total", snap.Pagination.TotalCount),
				)
			}
		}
	}()

	// Snapshot server for the rendering layer
	handler := NewAPIHandler(log.Named("server"), feed, opRepo)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.Routes(),
	}
	go func() {
		log.Info("Starting snapshot server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("Snapshot server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Snapshot server shutdown failed", zap.Error(err))
	}
	feed.Close()

	log.Info("Dashboard sync has been shut down.")
}
