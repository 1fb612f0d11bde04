package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"choubo/internal/amqp"
	"choubo/internal/core"
	"choubo/internal/export"
	"choubo/internal/log"
	"choubo/internal/service"
)

// ExportWorker consumes export requests and writes the produced files
// to the output directory. Requests run one at a time; a document
// render holds a full page buffer in memory, so there is no gain in
// overlapping them.
type ExportWorker struct {
	svc       *service.ExportService
	outputDir string
	logger    *log.Logger
}

func NewExportWorker(svc *service.ExportService, outputDir string, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		svc:       svc,
		outputDir: outputDir,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleExportRequest processes a single export request message.
func (w *ExportWorker) HandleExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error {
	req, err := parseRequest(msg)
	if err != nil {
		return fmt.Errorf("parse export request: %w", err)
	}

	started := time.Now()
	op := log.OpRender
	var doc export.Document
	if msg.AllAccounts {
		op = log.OpBundle
		doc, err = w.svc.ExportAllAccounts(ctx, req)
	} else {
		doc, err = w.svc.Export(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("run export: %w", err)
	}

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(w.outputDir, doc.Name)
	if err := os.WriteFile(path, doc.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", doc.Name, err)
	}

	w.logger.InfoContext(ctx, "Export completed",
		log.FieldOperation, op,
		log.FieldKind, msg.Kind,
		log.FieldFormat, msg.Format,
		log.FieldFrom, msg.From,
		log.FieldTo, msg.To,
		log.FieldDocument, path,
		log.FieldBytes, len(doc.Data),
		log.FieldDuration, time.Since(started).Milliseconds())

	return nil
}

func parseRequest(msg *amqp.ExportRequestMessage) (service.ExportRequest, error) {
	from, err := time.Parse("2006-01-02", msg.From)
	if err != nil {
		return service.ExportRequest{}, fmt.Errorf("from date %q: %w", msg.From, err)
	}
	to, err := time.Parse("2006-01-02", msg.To)
	if err != nil {
		return service.ExportRequest{}, fmt.Errorf("to date %q: %w", msg.To, err)
	}

	kind, err := ParseKind(msg.Kind)
	if err != nil {
		return service.ExportRequest{}, err
	}
	format, err := ParseFormat(msg.Format)
	if err != nil {
		return service.ExportRequest{}, err
	}

	return service.ExportRequest{
		From:         core.Date{Time: from},
		To:           core.Date{Time: to},
		Kind:         kind,
		Format:       format,
		Account:      msg.Account,
		Organization: msg.Organization,
	}, nil
}

// ParseKind maps a report kind label to its Kind.
func ParseKind(label string) (export.Kind, error) {
	for _, k := range []export.Kind{export.KindJournal, export.KindLedger, export.KindTrialBalance} {
		if k.Label() == label {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown report kind %q", label)
}

// ParseFormat maps a file extension to its Format.
func ParseFormat(ext string) (export.Format, error) {
	for _, f := range []export.Format{export.FormatCSV, export.FormatPDF, export.FormatXLSX} {
		if f.Ext() == ext {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown export format %q", ext)
}
