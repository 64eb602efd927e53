// Package engine is the pure view pipeline over a full expense snapshot:
// normalize, sort, filter, aggregate. It never persists state; every user
// interaction recomputes the whole view from scratch.
package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/store"
)

// Document field names shared with the repository and the original data set.
const (
	fieldExpense     = "expense"
	fieldAmount      = "amount"
	fieldCategory    = "category"
	fieldPaymentMode = "payment_mode"
	fieldDate        = "date"
)

// Normalize converts a raw snapshot into expense records: amounts coerced to
// cents (invalid -> 0), missing fields replaced by sentinels, dates parsed
// into a sortable value (unparseable -> zero time).
func Normalize(docs []store.Document) []core.Expense {
	out := make([]core.Expense, 0, len(docs))
	for _, doc := range docs {
		out = append(out, NormalizeRecord(core.Expense{
			ID:          doc.ID,
			Description: stringField(doc.Data, fieldExpense),
			Amount:      coerceAmount(doc.Data[fieldAmount]),
			Category:    stringField(doc.Data, fieldCategory),
			PaymentMode: stringField(doc.Data, fieldPaymentMode),
			Date:        stringField(doc.Data, fieldDate),
		}))
	}
	return out
}

// NormalizeRecord applies sentinel substitution and date parsing to a single
// record. It is idempotent: normalizing a normalized record is a no-op.
func NormalizeRecord(e core.Expense) core.Expense {
	e.Description = strings.TrimSpace(e.Description)
	if e.Amount.Cents < 0 {
		e.Amount = core.Money{}
	}
	if strings.TrimSpace(e.Category) == "" {
		e.Category = core.Uncategorized
	}
	if strings.TrimSpace(e.PaymentMode) == "" {
		e.PaymentMode = core.UnknownPayment
	}
	if strings.TrimSpace(e.Date) == "" {
		e.Date = core.UnknownDate
	}
	if when, err := core.ParseDate(e.Date); err == nil {
		e.When = when
	} else {
		e.When = time.Time{}
	}
	return e
}

// SortByDateDesc orders records by parsed date, newest first. Records
// without a parseable date sort after all dated ones; the sort is stable so
// their relative input order is preserved.
func SortByDateDesc(records []core.Expense) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case !a.HasDate():
			return false
		case !b.HasDate():
			return true
		default:
			return a.When.After(b.When)
		}
	})
}

func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// coerceAmount accepts the numeric shapes the stores hand back (float64 from
// JSON and BSON doubles, integer BSON types, legacy string amounts) and
// coerces anything invalid or negative to zero.
func coerceAmount(v any) core.Money {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return core.Money{}
		}
		return core.MoneyFromFloat(n)
	case float32:
		return coerceAmount(float64(n))
	case int:
		return coerceAmount(float64(n))
	case int32:
		return coerceAmount(float64(n))
	case int64:
		return coerceAmount(float64(n))
	case string:
		cents, err := core.ParseDecimalToCents(n)
		if err != nil {
			return core.Money{}
		}
		return core.Money{Cents: cents}
	default:
		return core.Money{}
	}
}
