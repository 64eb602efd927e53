package engine

import (
	"sort"
	"time"

	"github.com/shivthakur007/expense/internal/core"
)

// Filter is the user's current narrowing of the snapshot: category and
// payment-mode membership plus an inclusive date range. ShowAll bypasses
// every predicate.
type Filter struct {
	ShowAll      bool
	Categories   []string
	PaymentModes []string
	From         time.Time
	To           time.Time
}

// DefaultFilter selects every observed category and payment mode and the
// full observed date span, so the default filtered view matches the
// unfiltered snapshot until the user narrows it.
func DefaultFilter(records []core.Expense) Filter {
	catSet := make(map[string]struct{})
	modeSet := make(map[string]struct{})
	var from, to time.Time
	for _, e := range records {
		catSet[e.Category] = struct{}{}
		modeSet[e.PaymentMode] = struct{}{}
		if !e.HasDate() {
			continue
		}
		if from.IsZero() || e.When.Before(from) {
			from = e.When
		}
		if to.IsZero() || e.When.After(to) {
			to = e.When
		}
	}
	return Filter{
		Categories:   sortedKeys(catSet),
		PaymentModes: sortedKeys(modeSet),
		From:         from,
		To:           to,
	}
}

// Apply returns the records matching every predicate, preserving input
// order. Records without a parseable date never match the date range, so
// they drop out whenever filtering is active; ShowAll keeps them.
func (f Filter) Apply(records []core.Expense) []core.Expense {
	if f.ShowAll {
		out := make([]core.Expense, len(records))
		copy(out, records)
		return out
	}
	cats := toSet(f.Categories)
	modes := toSet(f.PaymentModes)
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if _, ok := cats[e.Category]; !ok {
			continue
		}
		if _, ok := modes[e.PaymentMode]; !ok {
			continue
		}
		if !f.matchesDate(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f Filter) matchesDate(e core.Expense) bool {
	if !e.HasDate() {
		return false
	}
	if !f.From.IsZero() && e.When.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.When.After(f.To) {
		return false
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
