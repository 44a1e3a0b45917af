package main

import (
	"RomiioBot/internal/config"
	"RomiioBot/pkg/log"
	"RomiioBot/pkg/metrics"
	"RomiioBot/pkg/telemetry"
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.NewLogger().Warnf("No .env file loaded: %v", err)
	}
	logger := log.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validator := config.NewValidator()
	cfg, err := config.LoadBotConfig(validator)
	if err != nil {
		logger.Fatal(err)
	}

	fiberApp := config.NewFiber(logger, cfg)
	telemetryLogger := telemetry.NewWebhookLogger(logger, cfg.TelemetryURL, 10*time.Second)
	if !telemetryLogger.Enabled() {
		logger.Info("Telemetry webhook not configured, events are only logged locally")
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithConfig(cfg),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithSessionStore(),
		config.WithMiddleware(),
		config.WithMetrics(metrics.NewMetrics()),
		config.WithTelemetry(telemetryLogger),
		config.WithWhatsappClient(ctx),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	go func() {
		if err := server.Run(); err != nil {
			logger.Errorf("Error starting server: %v", err)
			stop()
		}
	}()

	go func() {
		if err := server.ConnectWhatsapp(ctx); err != nil {
			logger.Errorf("WhatsApp connection failed: %v", err)
			stop()
		}
	}()

	logger.Info("Server started successfully")

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown finished with errors: %v", err)
		return
	}
	logger.Info("Server stopped")
}
