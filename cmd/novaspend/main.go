package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"novaspend/internal/bus"
	"novaspend/internal/cli"
	apphttp "novaspend/internal/http"
	"novaspend/internal/notify"
	"novaspend/internal/services"
	"novaspend/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	cached := store.NewCached(cli.OpenStore(logger, cfg), time.Minute)
	defer cached.Close()

	// The notifier is optional; a missing broker degrades to local-only
	// operation instead of failing startup
	var notifier services.Notifier
	var notifyClient *notify.Client
	if cfg.AMQPURL != "" {
		client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to initialize change notifier, continuing without it", "error", err)
		} else {
			notifyClient = client
			notifier = client
			defer notifyClient.Close()
			logger.Info("Initialized change notifier", "exchange", cfg.AMQPExchange)
		}
	}

	b := bus.New()
	ledger := services.NewLedger(cached, b, notifier)
	stats := services.NewStats(cached, notifier)
	settings := services.NewSettings(cached, b, notifier)
	backup := services.NewBackup(cached, b, notifier)

	srv := apphttp.NewServer(":"+cfg.Port, cfg.RateLimitPerMinute, ledger, stats, settings, backup)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB
	defer srv.CloseLimiter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		return nil
	})

	if notifyClient != nil {
		listener := notify.NewListener(notifyClient, b, cached.Invalidate)
		g.Go(func() error {
			if err := listener.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		return
	}
	logger.Info("Server stopped gracefully")
}
