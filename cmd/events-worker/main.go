package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"venuely/internal/reservations/worker"
	"venuely/pkg/config"
)

const ServiceName = "events-worker"

const consumerGroupID = "reservation-audit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	store := worker.NewMongoAuditStore(cfg)
	auditWorker, err := worker.NewAuditWorker(cfg, store, consumerGroupID)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize audit worker", "error", err)
	}
	defer auditWorker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Starting events worker", "group", consumerGroupID)
	if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Audit worker stopped", "error", err)
		os.Exit(1)
	}

	cfg.Log.Info("Events worker stopped gracefully")
}
