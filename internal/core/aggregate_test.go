package core

import "testing"

func record(d Date, desc string, p Posting) Record {
	return Record{Date: d, Description: desc, Posting: p}
}

func TestAggregateSignsAndTax(t *testing.T) {
	records := []Record{
		record(NewDate(2024, 6, 3), "現金売上", IncomePosting{
			Account: "売上高",
			Amount:  Money{Yen: 1000},
			Tax:     Money{Yen: 80},
		}),
		record(NewDate(2024, 6, 10), "文房具", ExpensePosting{
			Account: "消耗品費",
			Amount:  Money{Yen: 500},
		}),
	}

	agg := Aggregate(records)
	if len(agg.Buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(agg.Buckets))
	}
	b := agg.Buckets[0]
	if b.Month != "2024-06" {
		t.Fatalf("expected month 2024-06, got %s", b.Month)
	}

	want := map[string]int64{
		"売上高":               1000,
		TaxCollectedAccount: 80,
		"消耗品費":              -500,
	}
	for name, yen := range want {
		if b.Amounts[name] != yen {
			t.Fatalf("%s: expected %d, got %d", name, yen, b.Amounts[name])
		}
	}

	if got := agg.ClassTotal(b, Income); got != 1080 {
		t.Fatalf("income total: expected 1080, got %d", got)
	}
	if got := agg.ClassTotal(b, Expense); got != 500 {
		t.Fatalf("expense total: expected 500, got %d", got)
	}
}

func TestAggregateFillsMonthGaps(t *testing.T) {
	records := []Record{
		record(NewDate(2024, 3, 15), "a", IncomePosting{Account: "売上高", Amount: Money{Yen: 100}}),
		record(NewDate(2024, 5, 1), "b", ExpensePosting{Account: "旅費交通費", Amount: Money{Yen: 30}}),
	}

	agg := Aggregate(records)
	months := []MonthKey{"2024-03", "2024-04", "2024-05"}
	if len(agg.Buckets) != len(months) {
		t.Fatalf("expected %d buckets, got %d", len(months), len(agg.Buckets))
	}
	for i, m := range months {
		if agg.Buckets[i].Month != m {
			t.Fatalf("bucket %d: expected %s, got %s", i, m, agg.Buckets[i].Month)
		}
	}

	// The empty month still carries every known account, all zero.
	april := agg.Buckets[1]
	if len(april.Amounts) != 2 {
		t.Fatalf("expected 2 accounts in empty month, got %d", len(april.Amounts))
	}
	for name, yen := range april.Amounts {
		if yen != 0 {
			t.Fatalf("%s: expected 0 in empty month, got %d", name, yen)
		}
	}
}

func TestAggregateYearBoundary(t *testing.T) {
	records := []Record{
		record(NewDate(2023, 11, 1), "a", IncomePosting{Account: "売上高", Amount: Money{Yen: 1}}),
		record(NewDate(2024, 2, 1), "b", IncomePosting{Account: "売上高", Amount: Money{Yen: 1}}),
	}
	agg := Aggregate(records)
	months := []MonthKey{"2023-11", "2023-12", "2024-01", "2024-02"}
	if len(agg.Buckets) != len(months) {
		t.Fatalf("expected %d buckets, got %d", len(months), len(agg.Buckets))
	}
	for i, m := range months {
		if agg.Buckets[i].Month != m {
			t.Fatalf("bucket %d: expected %s, got %s", i, m, agg.Buckets[i].Month)
		}
	}
}

func TestAggregateSkipsUnpostable(t *testing.T) {
	records := []Record{
		{Date: NewDate(2024, 1, 5), Description: "no posting yet"},
		record(Date{}, "zero date", IncomePosting{Account: "売上高", Amount: Money{Yen: 10}}),
		record(NewDate(2024, 1, 6), "zero amount", IncomePosting{Account: "売上高"}),
		record(NewDate(2024, 1, 7), "no account", ExpensePosting{Amount: Money{Yen: 10}}),
	}
	agg := Aggregate(records)
	if len(agg.Buckets) != 0 || len(agg.Accounts) != 0 {
		t.Fatalf("expected empty aggregation, got %d buckets, %d accounts", len(agg.Buckets), len(agg.Accounts))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := Aggregate(nil)
	if len(agg.Buckets) != 0 {
		t.Fatalf("expected no synthesized months for empty input, got %d", len(agg.Buckets))
	}
}

func TestAccountOrderAndColorsDeterministic(t *testing.T) {
	records := []Record{
		record(NewDate(2024, 1, 1), "a", IncomePosting{Account: "売上高", Amount: Money{Yen: 1}}),
		record(NewDate(2024, 1, 2), "b", ExpensePosting{Account: "仕入高", Amount: Money{Yen: 1}}),
		record(NewDate(2024, 1, 3), "c", IncomePosting{Account: "雑収入", Amount: Money{Yen: 1}}),
		record(NewDate(2024, 1, 4), "d", ExpensePosting{Account: "地代家賃", Amount: Money{Yen: 1}}),
	}

	first := Aggregate(records)
	names := []string{"売上高", "仕入高", "雑収入", "地代家賃"}
	for i, n := range names {
		if first.Accounts[i].Name != n {
			t.Fatalf("account %d: expected %s (first-seen order), got %s", i, n, first.Accounts[i].Name)
		}
	}

	// Same input, same colors, repeatedly.
	for run := 0; run < 3; run++ {
		again := Aggregate(records)
		for i := range first.Accounts {
			if again.Accounts[i] != first.Accounts[i] {
				t.Fatalf("run %d account %d: expected %+v, got %+v", run, i, first.Accounts[i], again.Accounts[i])
			}
		}
	}

	// Income and expense palettes are assigned independently.
	if first.Accounts[0].Color == first.Accounts[1].Color {
		t.Fatalf("income and expense should not share the first palette slot")
	}
}

func TestClassificationStableWithinRun(t *testing.T) {
	// The same account name posted from both sides keeps its first
	// classification for the whole run.
	records := []Record{
		record(NewDate(2024, 1, 1), "a", IncomePosting{Account: "雑収入", Amount: Money{Yen: 100}}),
		record(NewDate(2024, 1, 2), "b", ExpensePosting{Account: "雑収入", Amount: Money{Yen: 40}}),
	}
	agg := Aggregate(records)
	if len(agg.Accounts) != 1 {
		t.Fatalf("expected a single series, got %d", len(agg.Accounts))
	}
	if agg.Accounts[0].Class != Income {
		t.Fatalf("expected first-seen classification to win, got %s", agg.Accounts[0].Class)
	}
	if got := agg.Buckets[0].Amounts["雑収入"]; got != 60 {
		t.Fatalf("expected net 60, got %d", got)
	}
}

func TestMonthKeyNext(t *testing.T) {
	cases := []struct {
		in, out MonthKey
	}{
		{"2024-01", "2024-02"},
		{"2024-12", "2025-01"},
	}
	for i, tc := range cases {
		if got := tc.in.Next(); got != tc.out {
			t.Fatalf("case %d: expected %s, got %s", i, tc.out, got)
		}
	}
}
