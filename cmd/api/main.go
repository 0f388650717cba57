// cmd/api/main.go
//
// PPGHub – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (system-wide file → .env fallback).
//
//  2. Start the daily rotating logger (tees to console in a TTY).
//
//  3. Load and validate config (.env → conf/global.yaml → PPGHUB_*),
//     resolving vault: secrets.
//
//  4. Initialize the optional GeoIP enrichment database.
//
//  5. Open the MySQL pool and ping it.
//
//  6. Serve the API router, then drain gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/ppghub/ppghub/internal/config"
	"github.com/ppghub/ppghub/internal/database"
	"github.com/ppghub/ppghub/internal/httpapi"
	"github.com/ppghub/ppghub/internal/logger"
	"github.com/ppghub/ppghub/internal/requestinfo"
)

const serverEnvPath = "/usr/local/etc/ppghub/global.env"

// loadEnv prefers the system-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Paths.Root, runningInTTY(), cfg.App.Debug)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		// Enrichment is optional; the API runs without it.
		zlog.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
	}

	db, err := database.Open(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	zlog.Infow("database online")

	srv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           httpapi.New(db, cfg).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Infow("http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zlog.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Fatalw("server exited", "err", err)
	}
	zlog.Infow("bye")
}
