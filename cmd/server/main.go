package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/waves-mcp/config"
	"github.com/adrianliechti/waves-mcp/pkg/otel"
	"github.com/adrianliechti/waves-mcp/server"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "", "config file (default config.yaml if present)")
	addrFlag := flag.String("addr", "", "listen address")

	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("unable to load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, config.DefaultName, version)

	if err != nil {
		panic(err)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		shutdown(ctx)
	}()

	path := *configFlag

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg, err := config.Parse(path)

	if err != nil {
		slog.Error("unable to load config", "error", err)
		os.Exit(1)
	}

	defer cfg.Close()

	if *addrFlag != "" {
		cfg.Address = *addrFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("unable to create server", "error", err)
		os.Exit(1)
	}

	go cfg.Store().Janitor(ctx, cfg.Cleanup.Interval, cfg.Cleanup.MaxAge)

	slog.Info("storing audio files", "path", cfg.Store().Path())

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
	}
}
