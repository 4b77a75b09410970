package dto

import "cloud.google.com/go/civil"

// DateRange is an optional, inclusive range of calendar dates. Either bound
// may be nil, in which case that side is open.
type DateRange struct {
	Start *civil.Date
	End   *civil.Date
}

// Bounded reports whether both bounds are present.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Empty reports whether neither bound is present.
func (r DateRange) Empty() bool {
	return r.Start == nil && r.End == nil
}

type ChangeTotal struct {
	Total  float64 `json:"total"`
	Change float64 `json:"change"`
}

type SummaryResult struct {
	Income     ChangeTotal `json:"income"`
	Expense    ChangeTotal `json:"expense"`
	Difference ChangeTotal `json:"difference"`
}

type ChartPoint struct {
	Date     civil.Date `json:"date"`
	Income   float64    `json:"income"`
	Expenses float64    `json:"expenses"`
}

type ChartResult struct {
	ChartData []ChartPoint `json:"chartData"`
	Count     int          `json:"count"`
}
