package core

import (
	"errors"
	"time"
)

// Synthetic accounts used for consumption tax carried on a posting.
// They never appear in the journal itself.
const (
	TaxCollectedAccount = "仮受消費税"
	TaxPaidAccount      = "仮払消費税"
)

type (
	Date struct {
		time.Time
	}

	// Money is an amount in whole yen. Signed values only appear in
	// aggregated buckets; postings always carry positive amounts.
	Money struct {
		Yen int64
	}

	// Posting attributes a record's amount to one account side. A record
	// holds either an income posting (credit side) or an expense posting
	// (debit side), never both.
	Posting interface {
		AccountName() string
		PostedAmount() Money
		TaxAmount() Money
		posting()
	}

	// IncomePosting is the credit side of an inbound record.
	IncomePosting struct {
		Account string
		Amount  Money
		Tax     Money
	}

	// ExpensePosting is the debit side of an outbound record.
	ExpensePosting struct {
		Account string
		Amount  Money
		Tax     Money
	}

	// Record is a single bookkeeping entry. It is immutable from the
	// engine's point of view; the record source owns its lifecycle.
	Record struct {
		Date        Date
		Description string
		TaxClass    string
		Posting     Posting // nil when the entry has no postable side yet
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

func (p IncomePosting) AccountName() string { return p.Account }
func (p IncomePosting) PostedAmount() Money { return p.Amount }
func (p IncomePosting) TaxAmount() Money    { return p.Tax }
func (p IncomePosting) posting()            {}

func (p ExpensePosting) AccountName() string { return p.Account }
func (p ExpensePosting) PostedAmount() Money { return p.Amount }
func (p ExpensePosting) TaxAmount() Money    { return p.Tax }
func (p ExpensePosting) posting()            {}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Postable reports whether the amount can contribute to a bucket.
// Zero and negative amounts are both treated as "nothing to post".
func (m Money) Postable() bool {
	return m.Yen > 0
}
