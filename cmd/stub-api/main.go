// cmd/stub-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"corp-onboarding/internal/common/aws"
	"corp-onboarding/internal/common/config"
	"corp-onboarding/internal/common/database"
	"corp-onboarding/internal/common/logger"
	"corp-onboarding/internal/stubapi"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting stub onboarding API...", zap.String("store", cfg.StubAPI.Store))

	ctx := context.Background()

	// --- Init Redis with retry, only when profiles are kept there ---
	var redis *database.RedisClient
	if cfg.StubAPI.Store == "redis" {
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
	}

	store, err := stubapi.NewStore(cfg.StubAPI.Store, redis, time.Duration(cfg.StubAPI.ProfileTTL)*time.Second)
	if err != nil {
		zapLog.Fatal("profile store init failed", zap.Error(err))
	}

	registry := stubapi.NewRegistry(cfg.StubAPI.ValidCorporationNumbers...)
	zapLog.Info("Corporation registry loaded", zap.Int("numbers", registry.Len()))

	handler := stubapi.NewHandler(registry, store, log)
	if arn := cfg.StubAPI.Events.SNSTopicARN; arn != "" {
		snsClient, err := aws.NewSNSClient(ctx, cfg.StubAPI.Events.Region, arn)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		handler.WithEvents(stubapi.NewSNSEvents(snsClient))
		zapLog.Info("Publishing profile events", zap.String("topic", arn))
	}
	srv := stubapi.NewServer(cfg.StubAPI.Addr, stubapi.NewRouter(handler, log))

	go func() {
		zapLog.Info("Stub API listening", zap.String("addr", cfg.StubAPI.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("stub API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping stub API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down stub API", zap.Error(err))
	}

	zapLog.Info("Stub API stopped")
}
