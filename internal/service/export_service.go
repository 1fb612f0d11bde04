// Package service wires the aggregation and export engine to record and
// preference stores.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"choubo/internal/core"
	"choubo/internal/export"
)

// ExportRequest describes what the user asked for. Account is only
// consulted for single-account ledger exports.
type ExportRequest struct {
	From, To     core.Date
	Kind         export.Kind
	Format       export.Format
	Account      string
	Organization string
}

// ExportService turns records into downloadable report documents.
type ExportService struct {
	source RecordSource
	prefs  PreferenceStore
	fonts  *export.FontLoader
}

func NewExportService(source RecordSource, prefs PreferenceStore, fonts *export.FontLoader) *ExportService {
	return &ExportService{
		source: source,
		prefs:  prefs,
		fonts:  fonts,
	}
}

// Aggregate fetches the range and builds the chartable monthly series.
func (s *ExportService) Aggregate(ctx context.Context, from, to core.Date) (core.Aggregation, error) {
	records, err := s.source.ListRecords(ctx, from, to)
	if err != nil {
		return core.Aggregation{}, fmt.Errorf("list records: %w", err)
	}
	return core.Aggregate(records), nil
}

// Trend builds one account's percent-of-classification series.
func (s *ExportService) Trend(ctx context.Context, from, to core.Date, account string) ([]core.TrendPoint, error) {
	agg, err := s.Aggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return core.Project(agg, account), nil
}

// Export renders one report document. The organization label is
// persisted only after the render succeeds, so a failed export never
// updates the remembered value.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (export.Document, error) {
	records, err := s.source.ListRecords(ctx, req.From, req.To)
	if err != nil {
		return export.Document{}, fmt.Errorf("list records: %w", err)
	}

	var (
		table export.Table
		name  string
	)
	switch req.Kind {
	case export.KindJournal:
		table = export.JournalTable(records)
		name = export.Filename(req.Kind, req.Format.Ext(), req.From, req.To)
	case export.KindTrialBalance:
		table = export.TrialBalanceTable(core.Aggregate(records))
		name = export.Filename(req.Kind, req.Format.Ext(), req.From, req.To)
	default:
		if req.Account == "" {
			return export.Document{}, fmt.Errorf("ledger export needs an account; use ExportAllAccounts for every account")
		}
		table = export.LedgerTable(records, req.Account)
		name = export.LedgerFilename(req.Account, req.Format.Ext(), req.From, req.To)
	}

	doc, err := s.render(ctx, table, req, name)
	if err != nil {
		return export.Document{}, err
	}
	s.rememberOrganization(ctx, req.Organization)
	return doc, nil
}

// ExportAllAccounts renders one ledger per account seen in the range
// and bundles them into a single archive. Documents render one at a
// time; a render or archive failure discards everything.
func (s *ExportService) ExportAllAccounts(ctx context.Context, req ExportRequest) (export.Document, error) {
	records, err := s.source.ListRecords(ctx, req.From, req.To)
	if err != nil {
		return export.Document{}, fmt.Errorf("list records: %w", err)
	}

	agg := core.Aggregate(records)
	names := make([]string, len(agg.Accounts))
	for i, a := range agg.Accounts {
		names[i] = a.Name
	}

	blob, err := export.BundleAll(ctx, names, func(ctx context.Context, account string) (export.Document, error) {
		table := export.LedgerTable(records, account)
		r := req
		r.Kind = export.KindLedger
		return s.render(ctx, table, r, export.LedgerFilename(account, req.Format.Ext(), req.From, req.To))
	})
	if err != nil {
		return export.Document{}, fmt.Errorf("bundle ledgers: %w", err)
	}

	doc := export.Document{
		Name: export.Filename(export.KindLedger, "zip", req.From, req.To),
		Data: blob,
	}
	s.rememberOrganization(ctx, req.Organization)
	return doc, nil
}

func (s *ExportService) render(ctx context.Context, table export.Table, req ExportRequest, name string) (export.Document, error) {
	var (
		data []byte
		err  error
	)
	switch req.Format {
	case export.FormatPDF:
		meta := export.Meta{
			Title:        table.Kind.Title(),
			DateRange:    fmt.Sprintf("%s - %s", req.From.Format("2006/01/02"), req.To.Format("2006/01/02")),
			Organization: req.Organization,
		}
		data, err = export.PDF(ctx, table, meta, s.fonts)
	case export.FormatXLSX:
		data, err = export.XLSX(table)
	default:
		data = export.CSV(table)
	}
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{Name: name, Data: data}, nil
}

func (s *ExportService) rememberOrganization(ctx context.Context, label string) {
	if s.prefs == nil || label == "" {
		return
	}
	if err := s.prefs.SetLastOrganization(ctx, label); err != nil {
		// Preference loss is not worth failing a finished export.
		slog.WarnContext(ctx, "Failed to persist organization label", "error", err)
	}
}
