package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"choubo/internal/amqp"
	"choubo/internal/config"
	"choubo/internal/export"
	"choubo/internal/log"
	"choubo/internal/service"
	"choubo/internal/storage"
	"choubo/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting export-worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var src export.FontSource = export.FileFontSource{}
	if cfg.FontSource == "http" {
		src = export.HTTPFontSource{Client: &http.Client{Timeout: cfg.FontFetchTimeout}}
	}
	fonts := export.NewFontLoader(src, cfg.PrimaryFontPath, cfg.SecondaryFontPath)

	svc := service.NewExportService(repo, repo, fonts)
	exportWorker := worker.NewExportWorker(svc, cfg.OutputDir, logger)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = amqpClient.ConsumeExportRequests(ctx, func(msg *amqp.ExportRequestMessage) error {
		return exportWorker.HandleExportRequest(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	slog.Info("export-worker stopped", log.FieldOperation, log.OpShutdown)
}
