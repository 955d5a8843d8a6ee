// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"card-advisor-workers/internal/common/camunda"
	"card-advisor-workers/internal/common/config"
	"card-advisor-workers/internal/common/genai"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/common/observability"
	"card-advisor-workers/internal/intake"
)

const shutdownTimeout = 30 * time.Second

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name, log)

	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: cfg.Camunda.UsePlaintext,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe connection failed", zap.Error(err))
	}

	infra, err := connectInfrastructure(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("infrastructure startup failed", zap.Error(err))
	}

	cat, err := buildCatalog(ctx, cfg, infra, log)
	if err != nil {
		zapLog.Fatal("catalog setup failed", zap.Error(err))
	}

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		zapLog.Fatal("notification clients failed", zap.Error(err))
	}

	rephraser := genai.New(genai.Config{
		BaseURL:     cfg.APIs.GenAI.BaseURL,
		Timeout:     config.GetDuration(cfg.APIs.GenAI.Timeout),
		MaxRetries:  cfg.APIs.GenAI.MaxRetries,
		MaxTokens:   cfg.APIs.GenAI.MaxTokens,
		Temperature: cfg.APIs.GenAI.Temperature,
	}, log)

	workers := registerWorkers(zeebe.GetClient(), cfg, dependencies{
		dialogue: intake.NewDialogue(rephraser),
		catalog:  cat,
		notifier: notifier,
		obs:      obs,
	}, log)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	server := newHealthServer(cfg.Server.Address, readinessChecks(zeebe, infra))
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("health server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	infra.Close(log)
	if err := zeebe.Close(); err != nil {
		log.Error("error closing zeebe client", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("worker manager stopped gracefully", nil)
}
