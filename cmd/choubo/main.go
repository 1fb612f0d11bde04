package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"choubo/internal/config"
	"choubo/internal/core"
	"choubo/internal/export"
	"choubo/internal/service"
	"choubo/internal/storage"
	"choubo/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		fromFlag    = flag.String("from", "", "start date (2006-01-02)")
		toFlag      = flag.String("to", "", "end date (2006-01-02)")
		kindFlag    = flag.String("kind", "journal", "report kind: journal, general_ledger, trial_balance")
		formatFlag  = flag.String("format", "csv", "output format: csv, pdf, xlsx")
		accountFlag = flag.String("account", "", "account name for a single-account ledger")
		allFlag     = flag.Bool("all", false, "bundle one ledger per account into a zip")
		orgFlag     = flag.String("org", "", "organization label (default: last used)")
		outFlag     = flag.String("out", "", "output directory (default: OUTPUT_DIR)")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	from, err := time.Parse("2006-01-02", *fromFlag)
	if err != nil {
		logger.Error("Invalid -from date", "value", *fromFlag, "error", err)
		os.Exit(1)
	}
	to, err := time.Parse("2006-01-02", *toFlag)
	if err != nil {
		logger.Error("Invalid -to date", "value", *toFlag, "error", err)
		os.Exit(1)
	}
	kind, err := worker.ParseKind(*kindFlag)
	if err != nil {
		logger.Error("Invalid -kind", "error", err)
		os.Exit(1)
	}
	format, err := worker.ParseFormat(*formatFlag)
	if err != nil {
		logger.Error("Invalid -format", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	fonts := export.NewFontLoader(fontSource(cfg), cfg.PrimaryFontPath, cfg.SecondaryFontPath)
	svc := service.NewExportService(repo, repo, fonts)

	ctx := context.Background()

	organization := *orgFlag
	if organization == "" {
		organization, err = repo.LastOrganization(ctx)
		if err != nil {
			logger.Warn("Failed to read last organization label", "error", err)
		}
	}

	req := service.ExportRequest{
		From:         core.Date{Time: from},
		To:           core.Date{Time: to},
		Kind:         kind,
		Format:       format,
		Account:      *accountFlag,
		Organization: organization,
	}

	var doc export.Document
	if *allFlag {
		doc, err = svc.ExportAllAccounts(ctx, req)
	} else {
		doc, err = svc.Export(ctx, req)
	}
	if err != nil {
		logger.Error("Export failed", "error", err)
		os.Exit(1)
	}

	outDir := *outFlag
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		logger.Error("Failed to create output directory", "error", err, "dir", outDir)
		os.Exit(1)
	}
	path := filepath.Join(outDir, doc.Name)
	if err := os.WriteFile(path, doc.Data, 0644); err != nil {
		logger.Error("Failed to write export", "error", err, "path", path)
		os.Exit(1)
	}

	fmt.Println(path)
}

func fontSource(cfg *config.Config) export.FontSource {
	if cfg.FontSource == "http" {
		return export.HTTPFontSource{Client: &http.Client{Timeout: cfg.FontFetchTimeout}}
	}
	return export.FileFontSource{}
}
