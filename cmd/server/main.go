package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playmesa/cardtable/internal/config"
	"github.com/playmesa/cardtable/internal/database"
	"github.com/playmesa/cardtable/internal/deck"
	"github.com/playmesa/cardtable/internal/game"
	"github.com/playmesa/cardtable/internal/migrations"
	"github.com/playmesa/cardtable/internal/server"
	"github.com/playmesa/cardtable/internal/session"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Card catalog (SQLite) ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	cards := deck.NewStore(db)
	if err := deck.SeedDemo(ctx, logger, cards); err != nil {
		return fmt.Errorf("seeding demo deck: %w", err)
	}

	// --- Sessions ---
	shuffle := game.NoShuffle
	if cfg.ShuffleDeals {
		shuffle = game.RandomShuffle
	}
	broker := server.NewBroker()
	registry := session.NewRegistry(logger, cards, broker, shuffle, cfg.SessionTTL)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, registry, broker, db, cfg.SPADir)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return registry.Sweep(gctx, cfg.SweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
