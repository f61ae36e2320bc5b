package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/dueljack/internal/server"
	"github.com/lox/dueljack/internal/session"
	"github.com/lox/dueljack/internal/stats"
)

// ServeCmd runs the WebSocket duel server
type ServeCmd struct {
	Config string `kong:"default='dueljack.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel, c.Debug)

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	store := stats.NewFileStore(cfg.Game.StatsFile, logger)
	manager, err := session.NewManager(store, logger,
		session.WithMaxSeats(cfg.Game.MaxSeats))
	if err != nil {
		return err
	}

	s := server.NewServer(addr, manager, logger)

	logger.Info("Starting dueljack server",
		"addr", addr,
		"max_seats", cfg.Game.MaxSeats,
		"stats_file", cfg.Game.StatsFile,
		"lobby_idle", time.Duration(cfg.Game.LobbyIdleMinutes)*time.Minute)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := manager.RunSweeper(ctx,
			time.Duration(cfg.Game.SweepEveryMinutes)*time.Minute,
			time.Duration(cfg.Game.LobbyIdleMinutes)*time.Minute)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		return s.Stop()
	})

	return g.Wait()
}
