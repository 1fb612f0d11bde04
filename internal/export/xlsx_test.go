package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"choubo/internal/core"
)

func TestXLSXShape(t *testing.T) {
	records := []core.Record{
		{Date: core.NewDate(2024, 6, 1), Description: "売上", Posting: core.IncomePosting{Account: "売上高", Amount: core.Money{Yen: 1200}, Tax: core.Money{Yen: 96}}},
	}
	blob, err := XLSX(JournalTable(records))
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "B1")
	if err != nil || header != "Description" {
		t.Fatalf("expected Description header, got %q (%v)", header, err)
	}
	amount, err := f.GetCellValue(sheet, "F2")
	if err != nil || amount != "1200" {
		t.Fatalf("expected credit amount 1200, got %q (%v)", amount, err)
	}
	total, err := f.GetCellValue(sheet, "F3")
	if err != nil || total != "1200" {
		t.Fatalf("expected credit total 1200, got %q (%v)", total, err)
	}
	// Zero debit total still prints in the totals row.
	debitTotal, err := f.GetCellValue(sheet, "D3")
	if err != nil || debitTotal != "0" {
		t.Fatalf("expected debit total 0, got %q (%v)", debitTotal, err)
	}
}
