package storage

import (
	"context"
	"path/filepath"
	"testing"

	"choubo/internal/core"
)

func openRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "choubo.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRecordRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	records := []core.Record{
		{Date: core.NewDate(2024, 6, 3), Description: "現金売上", TaxClass: "課税10%", Posting: core.IncomePosting{Account: "売上高", Amount: core.Money{Yen: 1000}, Tax: core.Money{Yen: 80}}},
		{Date: core.NewDate(2024, 6, 10), Description: "文房具", Posting: core.ExpensePosting{Account: "消耗品費", Amount: core.Money{Yen: 500}}},
	}
	for i, rec := range records {
		if _, err := repo.AppendRecord(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.ListRecords(ctx, core.NewDate(2024, 6, 1), core.NewDate(2024, 6, 30))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	income, ok := got[0].Posting.(core.IncomePosting)
	if !ok {
		t.Fatalf("expected income posting, got %T", got[0].Posting)
	}
	if income.Account != "売上高" || income.Amount.Yen != 1000 || income.Tax.Yen != 80 {
		t.Fatalf("income posting mangled: %+v", income)
	}
	if got[0].TaxClass != "課税10%" {
		t.Fatalf("tax class mangled: %q", got[0].TaxClass)
	}

	outside, err := repo.ListRecords(ctx, core.NewDate(2024, 7, 1), core.NewDate(2024, 7, 31))
	if err != nil {
		t.Fatalf("list outside range: %v", err)
	}
	if len(outside) != 0 {
		t.Fatalf("expected no records outside range, got %d", len(outside))
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if v, err := repo.LastOrganization(ctx); err != nil || v != "" {
		t.Fatalf("expected empty preference initially, got %q (%v)", v, err)
	}
	if err := repo.SetLastOrganization(ctx, "山田商店"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.SetLastOrganization(ctx, "鈴木工務店"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := repo.LastOrganization(ctx)
	if err != nil || v != "鈴木工務店" {
		t.Fatalf("expected last write to win, got %q (%v)", v, err)
	}
}
