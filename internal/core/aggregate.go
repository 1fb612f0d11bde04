package core

import "time"

// Classification decides the sign of an account's bucket entries and
// which side of the zero line it stacks on.
type Classification int

const (
	Income Classification = iota
	Expense
)

func (c Classification) String() string {
	if c == Income {
		return "income"
	}
	return "expense"
}

// MonthKey is a year-month in "2006-01" form. Keys compare correctly as
// plain strings.
type MonthKey string

func MonthKeyOf(d Date) MonthKey {
	return MonthKey(d.Format("2006-01"))
}

// Next returns the key of the following month.
func (k MonthKey) Next() MonthKey {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return k
	}
	return MonthKey(t.AddDate(0, 1, 0).Format("2006-01"))
}

type (
	// AccountSeries describes one chartable account. Identity is the
	// name; the color is assigned from the classification's palette in
	// first-seen order so repeated runs over the same data stay
	// visually stable.
	AccountSeries struct {
		Name  string
		Class Classification
		Color string
	}

	// MonthlyBucket holds the signed amount per account for one month.
	// Income entries are positive, expense entries negative. Every
	// known account has an entry, zero when inactive that month.
	MonthlyBucket struct {
		Month   MonthKey
		Amounts map[string]int64
	}

	Aggregation struct {
		Buckets  []MonthlyBucket
		Accounts []AccountSeries
	}
)

var (
	incomePalette  = []string{"#2563eb", "#0891b2", "#059669", "#65a30d", "#7c3aed", "#0d9488"}
	expensePalette = []string{"#dc2626", "#ea580c", "#d97706", "#db2777", "#9333ea", "#b91c1c"}
)

// Aggregate folds records into per-month signed buckets and the account
// series seen along the way. Records without a postable side, with a
// zero amount or with a zero date contribute nothing; one bad entry
// never fails the whole run. The bucket range covers every month from
// the earliest to the latest posted month, including empty ones.
func Aggregate(records []Record) Aggregation {
	folded := make(map[MonthKey]map[string]int64)
	var accounts []AccountSeries
	seen := make(map[string]struct{})

	post := func(month MonthKey, name string, class Classification, yen int64) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			accounts = append(accounts, AccountSeries{
				Name:  name,
				Class: class,
				Color: paletteColor(class, countClass(accounts, class)),
			})
		}
		m, ok := folded[month]
		if !ok {
			m = make(map[string]int64)
			folded[month] = m
		}
		m[name] += yen
	}

	for _, r := range records {
		if r.Posting == nil || r.Date.IsZero() {
			continue
		}
		month := MonthKeyOf(r.Date)
		switch p := r.Posting.(type) {
		case IncomePosting:
			if p.Account != "" && p.Amount.Postable() {
				post(month, p.Account, Income, p.Amount.Yen)
			}
			if p.Tax.Postable() {
				post(month, TaxCollectedAccount, Income, p.Tax.Yen)
			}
		case ExpensePosting:
			if p.Account != "" && p.Amount.Postable() {
				post(month, p.Account, Expense, -p.Amount.Yen)
			}
			if p.Tax.Postable() {
				post(month, TaxPaidAccount, Expense, -p.Tax.Yen)
			}
		}
	}

	if len(folded) == 0 {
		return Aggregation{Accounts: accounts}
	}

	var min, max MonthKey
	for month := range folded {
		if min == "" || month < min {
			min = month
		}
		if month > max {
			max = month
		}
	}

	var buckets []MonthlyBucket
	for month := min; month <= max; month = month.Next() {
		amounts := make(map[string]int64, len(accounts))
		for _, a := range accounts {
			amounts[a.Name] = 0
		}
		for name, yen := range folded[month] {
			amounts[name] = yen
		}
		buckets = append(buckets, MonthlyBucket{Month: month, Amounts: amounts})
	}

	return Aggregation{Buckets: buckets, Accounts: accounts}
}

// Account returns the series for the given name, if known.
func (a Aggregation) Account(name string) (AccountSeries, bool) {
	for _, s := range a.Accounts {
		if s.Name == name {
			return s, true
		}
	}
	return AccountSeries{}, false
}

// ClassTotal sums the absolute amounts of one classification inside a
// bucket.
func (a Aggregation) ClassTotal(b MonthlyBucket, class Classification) int64 {
	var total int64
	for _, s := range a.Accounts {
		if s.Class != class {
			continue
		}
		v := b.Amounts[s.Name]
		if v < 0 {
			v = -v
		}
		total += v
	}
	return total
}

func countClass(accounts []AccountSeries, class Classification) int {
	n := 0
	for _, a := range accounts {
		if a.Class == class {
			n++
		}
	}
	return n
}

func paletteColor(class Classification, index int) string {
	palette := incomePalette
	if class == Expense {
		palette = expensePalette
	}
	return palette[index%len(palette)]
}
