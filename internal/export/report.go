// Package export renders aggregated bookkeeping data into
// distributable report files: delimited text, paginated documents,
// spreadsheets, and zip bundles of many documents.
package export

import (
	"fmt"

	"choubo/internal/core"
)

// Kind selects a report layout. Each kind carries a fixed column set;
// exporters never derive headers from the data.
type Kind int

const (
	KindJournal Kind = iota
	KindLedger
	KindTrialBalance
)

func (k Kind) Label() string {
	switch k {
	case KindJournal:
		return "journal"
	case KindLedger:
		return "general_ledger"
	default:
		return "trial_balance"
	}
}

// Title is the human-readable heading printed on paginated documents.
func (k Kind) Title() string {
	switch k {
	case KindJournal:
		return "仕訳帳"
	case KindLedger:
		return "総勘定元帳"
	default:
		return "残高試算表"
	}
}

// Format selects the output file format for a report.
type Format int

const (
	FormatCSV Format = iota
	FormatPDF
	FormatXLSX
)

func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatPDF:
		return "pdf"
	default:
		return "xlsx"
	}
}

// ColKind drives quoting, alignment and font selection per column.
type ColKind int

const (
	ColText   ColKind = iota // structured latin text
	ColJa                    // free text, may carry Japanese glyphs
	ColAmount                // right-aligned grouped number
)

type Column struct {
	Title string
	Kind  ColKind
	Width float64 // fraction of the usable page width
}

// Columns returns the fixed column layout of a report kind. Widths sum
// to 1 so tables fill the page regardless of kind.
func (k Kind) Columns() []Column {
	switch k {
	case KindJournal:
		return []Column{
			{Title: "Date", Kind: ColText, Width: 0.09},
			{Title: "Description", Kind: ColJa, Width: 0.27},
			{Title: "Debit account", Kind: ColJa, Width: 0.14},
			{Title: "Debit amount", Kind: ColAmount, Width: 0.11},
			{Title: "Credit account", Kind: ColJa, Width: 0.14},
			{Title: "Credit amount", Kind: ColAmount, Width: 0.11},
			{Title: "Tax", Kind: ColAmount, Width: 0.08},
			{Title: "Tax class", Kind: ColText, Width: 0.06},
		}
	case KindLedger:
		return []Column{
			{Title: "Date", Kind: ColText, Width: 0.10},
			{Title: "Description", Kind: ColJa, Width: 0.45},
			{Title: "Income", Kind: ColAmount, Width: 0.15},
			{Title: "Expense", Kind: ColAmount, Width: 0.15},
			{Title: "Balance", Kind: ColAmount, Width: 0.15},
		}
	default:
		return []Column{
			{Title: "Account", Kind: ColJa, Width: 0.40},
			{Title: "Class", Kind: ColText, Width: 0.15},
			{Title: "Income", Kind: ColAmount, Width: 0.15},
			{Title: "Expense", Kind: ColAmount, Width: 0.15},
			{Title: "Net", Kind: ColAmount, Width: 0.15},
		}
	}
}

// Cell is one table value. Amounts stay numeric until an exporter
// formats them, because delimited text wants plain digits while the
// paginated document wants grouped ones.
type Cell struct {
	Text     string
	Amount   int64
	IsAmount bool
}

func TextCell(s string) Cell    { return Cell{Text: s} }
func AmountCell(yen int64) Cell { return Cell{Amount: yen, IsAmount: true} }
func EmptyCell() Cell           { return Cell{} }
func (c Cell) Empty() bool      { return !c.IsAmount && c.Text == "" }

type Row []Cell

// Table is the format-independent shape every exporter consumes: data
// rows plus one totals row in the same column layout.
type Table struct {
	Kind   Kind
	Rows   []Row
	Totals Row
}

// Document is a rendered report: a byte blob and the filename to hand
// to whatever saves it.
type Document struct {
	Name string
	Data []byte
}

// Meta carries the labels printed around a paginated document's table.
type Meta struct {
	Title        string
	DateRange    string
	Organization string
}

// Filename builds the conventional report file name.
func Filename(k Kind, ext string, from, to core.Date) string {
	return fmt.Sprintf("%s_%s_%s.%s", k.Label(), from.Format("2006-01-02"), to.Format("2006-01-02"), ext)
}

// LedgerFilename names a single account's ledger inside a bundle.
func LedgerFilename(account, ext string, from, to core.Date) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s", KindLedger.Label(), account, from.Format("2006-01-02"), to.Format("2006-01-02"), ext)
}

const dateLayout = "2006/01/02"

// JournalTable lists every postable record in entry order with debit
// and credit sides in their own columns.
func JournalTable(records []core.Record) Table {
	t := Table{Kind: KindJournal}
	var debitTotal, creditTotal, taxTotal int64

	for _, r := range records {
		if r.Posting == nil || r.Date.IsZero() {
			continue
		}
		row := Row{
			TextCell(r.Date.Format(dateLayout)),
			TextCell(r.Description),
		}
		switch p := r.Posting.(type) {
		case core.IncomePosting:
			row = append(row,
				EmptyCell(), EmptyCell(),
				TextCell(p.Account), AmountCell(p.Amount.Yen),
			)
			creditTotal += p.Amount.Yen
			taxTotal += p.Tax.Yen
			row = append(row, AmountCell(p.Tax.Yen), TextCell(r.TaxClass))
		case core.ExpensePosting:
			row = append(row,
				TextCell(p.Account), AmountCell(p.Amount.Yen),
				EmptyCell(), EmptyCell(),
			)
			debitTotal += p.Amount.Yen
			taxTotal += p.Tax.Yen
			row = append(row, AmountCell(p.Tax.Yen), TextCell(r.TaxClass))
		}
		t.Rows = append(t.Rows, row)
	}

	t.Totals = Row{
		TextCell("Total"), EmptyCell(),
		EmptyCell(), AmountCell(debitTotal),
		EmptyCell(), AmountCell(creditTotal),
		AmountCell(taxTotal), EmptyCell(),
	}
	return t
}

// LedgerTable lists one account's movements with a running balance.
// Income raises the balance, expense lowers it. The synthetic tax
// accounts draw their movements from the records' tax sides.
func LedgerTable(records []core.Record, account string) Table {
	t := Table{Kind: KindLedger}
	var incomeTotal, expenseTotal, balance int64

	for _, r := range records {
		if r.Posting == nil || r.Date.IsZero() {
			continue
		}

		var income, expense core.Money
		switch p := r.Posting.(type) {
		case core.IncomePosting:
			switch account {
			case p.Account:
				income = p.Amount
			case core.TaxCollectedAccount:
				income = p.Tax
			}
		case core.ExpensePosting:
			switch account {
			case p.Account:
				expense = p.Amount
			case core.TaxPaidAccount:
				expense = p.Tax
			}
		}
		if !income.Postable() && !expense.Postable() {
			continue
		}

		row := Row{
			TextCell(r.Date.Format(dateLayout)),
			TextCell(r.Description),
		}
		if income.Postable() {
			balance += income.Yen
			incomeTotal += income.Yen
			row = append(row, AmountCell(income.Yen), EmptyCell())
		} else {
			balance -= expense.Yen
			expenseTotal += expense.Yen
			row = append(row, EmptyCell(), AmountCell(expense.Yen))
		}
		row = append(row, AmountCell(balance))
		t.Rows = append(t.Rows, row)
	}

	t.Totals = Row{
		TextCell("Total"), EmptyCell(),
		AmountCell(incomeTotal), AmountCell(expenseTotal),
		AmountCell(balance),
	}
	return t
}

// TrialBalanceTable summarizes every account's movement over the whole
// aggregation, one row per account in first-seen order.
func TrialBalanceTable(agg core.Aggregation) Table {
	t := Table{Kind: KindTrialBalance}
	var incomeTotal, expenseTotal int64

	for _, s := range agg.Accounts {
		var net int64
		for _, b := range agg.Buckets {
			net += b.Amounts[s.Name]
		}
		row := Row{
			TextCell(s.Name),
			TextCell(s.Class.String()),
		}
		if s.Class == core.Income {
			incomeTotal += net
			row = append(row, AmountCell(net), EmptyCell())
		} else {
			expenseTotal += -net
			row = append(row, EmptyCell(), AmountCell(-net))
		}
		row = append(row, AmountCell(net))
		t.Rows = append(t.Rows, row)
	}

	t.Totals = Row{
		TextCell("Total"), EmptyCell(),
		AmountCell(incomeTotal), AmountCell(expenseTotal),
		AmountCell(incomeTotal - expenseTotal),
	}
	return t
}
