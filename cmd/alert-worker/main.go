// alert-worker consumes budget alert messages and records them. It is the
// delivery end of the notification pipeline; swapping the log sink for
// mail or push delivery only touches the handler below.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	applog "fintrack/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting alert-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	structured := applog.NewStructuredLogger(logger)

	err = amqpClient.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
		structured.LogBudgetAlert(ctx, msg.BudgetID, msg.Category, msg.To, msg.SpentCents)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		structured.LogError(ctx, "Message consumption failed", err,
			applog.ComponentWorker, applog.OpNotify, applog.NewFields())
		os.Exit(1)
	}

	logger.Info("Alert worker stopped gracefully")
}
