package engine

import (
	"sort"
	"time"

	"github.com/shivthakur007/expense/internal/core"
)

type (
	// DatedAmount is one point of the daily series.
	DatedAmount struct {
		Date   string // ISO-8601 calendar date
		Amount core.Money
	}

	// MonthAmount is one point of the monthly series.
	MonthAmount struct {
		Month  string // "2006-01"
		Amount core.Money
	}

	// CategoryAmount is one slice of the category split.
	CategoryAmount struct {
		Name   string
		Amount core.Money
	}

	// Report is the dashboard view model computed over the filtered set.
	Report struct {
		Count       int
		Total       core.Money
		MonthTotal  core.Money
		AvgPerEntry core.Money
		Daily       []DatedAmount
		ByCategory  []CategoryAmount
		Monthly     []MonthAmount
	}
)

// BuildReport aggregates the filtered records. Records without a parseable
// date count toward Total and AvgPerEntry but are excluded from the daily
// and monthly series.
//
// MonthTotal matches on calendar month only, regardless of year. That
// reproduces the original dashboard's behavior and is kept deliberately.
func BuildReport(records []core.Expense, now time.Time) Report {
	r := Report{Count: len(records)}

	daily := make(map[string]int64)
	monthly := make(map[string]int64)
	byCategory := make(map[string]int64)

	for _, e := range records {
		r.Total.Cents += e.Amount.Cents
		byCategory[e.Category] += e.Amount.Cents
		if !e.HasDate() {
			continue
		}
		if e.When.Month() == now.Month() {
			r.MonthTotal.Cents += e.Amount.Cents
		}
		daily[e.When.Format(core.DateLayout)] += e.Amount.Cents
		monthly[e.When.Format("2006-01")] += e.Amount.Cents
	}

	if r.Count > 0 {
		r.AvgPerEntry = core.Money{Cents: r.Total.Cents / int64(r.Count)}
	}

	for _, day := range sortedMapKeys(daily) {
		r.Daily = append(r.Daily, DatedAmount{Date: day, Amount: core.Money{Cents: daily[day]}})
	}
	for _, month := range sortedMapKeys(monthly) {
		r.Monthly = append(r.Monthly, MonthAmount{Month: month, Amount: core.Money{Cents: monthly[month]}})
	}
	for _, name := range sortedMapKeys(byCategory) {
		r.ByCategory = append(r.ByCategory, CategoryAmount{Name: name, Amount: core.Money{Cents: byCategory[name]}})
	}

	return r
}

func sortedMapKeys(m map[string]int64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
