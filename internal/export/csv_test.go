package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"choubo/internal/core"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("output must start with a UTF-8 BOM")
	}
	r := csv.NewReader(bytes.NewReader(data[len(utf8BOM):]))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	return rows
}

func TestCSVEmptyInput(t *testing.T) {
	data := CSV(JournalTable(nil))
	rows := parseCSV(t, data)

	// Header row plus totals row, nothing else.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	cols := KindJournal.Columns()
	for i, row := range rows {
		if len(row) != len(cols) {
			t.Fatalf("row %d: expected %d columns, got %d", i, len(cols), len(row))
		}
	}
	totals := rows[1]
	if totals[3] != "0" || totals[5] != "0" || totals[6] != "0" {
		t.Fatalf("expected zero totals to print as 0, got %v", totals)
	}
}

func TestCSVRoundTripRowCount(t *testing.T) {
	records := []core.Record{
		{Date: core.NewDate(2024, 6, 1), Description: "売上", Posting: core.IncomePosting{Account: "売上高", Amount: core.Money{Yen: 1000}, Tax: core.Money{Yen: 80}}},
		{Date: core.NewDate(2024, 6, 2), Description: "仕入", Posting: core.ExpensePosting{Account: "仕入高", Amount: core.Money{Yen: 400}}},
	}
	rows := parseCSV(t, CSV(JournalTable(records)))
	if len(rows) != len(records)+2 {
		t.Fatalf("expected header + %d data + totals, got %d rows", len(records), len(rows))
	}
	for i, row := range rows {
		if len(row) != len(KindJournal.Columns()) {
			t.Fatalf("row %d: ragged column count %d", i, len(row))
		}
	}
	if rows[1][5] != "1000" || rows[2][3] != "400" {
		t.Fatalf("amounts misplaced: %v / %v", rows[1], rows[2])
	}
}

func TestCSVQuoting(t *testing.T) {
	cases := []struct {
		in    string
		force bool
		out   string
	}{
		{"plain", false, "plain"},
		{"plain", true, `"plain"`},
		{"a,b", false, `"a,b"`},
		{`say "hi"`, false, `"say ""hi"""`},
		{"two\nlines", false, "\"two\nlines\""},
		{"", true, `""`},
	}
	for i, tc := range cases {
		if got := csvCell(tc.in, tc.force); got != tc.out {
			t.Fatalf("case %d: expected %q, got %q", i, tc.out, got)
		}
	}
}

func TestCSVDescriptionAlwaysQuoted(t *testing.T) {
	records := []core.Record{
		{Date: core.NewDate(2024, 6, 1), Description: "harmless", Posting: core.IncomePosting{Account: "売上高", Amount: core.Money{Yen: 10}}},
	}
	raw := string(CSV(JournalTable(records)))
	if !strings.Contains(raw, `"harmless"`) {
		t.Fatalf("free-text column should be quoted unconditionally:\n%s", raw)
	}
}

func TestCSVZeroAmountIsEmptyOutsideTotals(t *testing.T) {
	records := []core.Record{
		{Date: core.NewDate(2024, 6, 1), Description: "no tax", Posting: core.IncomePosting{Account: "売上高", Amount: core.Money{Yen: 10}}},
	}
	rows := parseCSV(t, CSV(JournalTable(records)))
	if rows[1][6] != "" {
		t.Fatalf("zero tax should render empty in a data row, got %q", rows[1][6])
	}
}
