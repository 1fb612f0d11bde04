package core

import "math"

// TrendPoint is one month of an account's trend: the absolute amount
// moved and its share of everything in the same classification.
type TrendPoint struct {
	Month   MonthKey
	Amount  Money
	Percent float64 // 0-100, one decimal place
}

// Project builds the monthly trend of a single account as a share of
// its classification's total. The percentage is 0 for a month whose
// classification moved nothing at all, never NaN.
func Project(agg Aggregation, name string) []TrendPoint {
	series, ok := agg.Account(name)
	if !ok {
		return nil
	}

	points := make([]TrendPoint, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		v := b.Amounts[name]
		if v < 0 {
			v = -v
		}
		total := agg.ClassTotal(b, series.Class)

		var pct float64
		if total > 0 {
			pct = math.Round(100*float64(v)/float64(total)*10) / 10
		}
		points = append(points, TrendPoint{
			Month:   b.Month,
			Amount:  Money{Yen: v},
			Percent: pct,
		})
	}
	return points
}
