package core

import (
	"errors"
	"strings"
	"time"
)

// Sentinel values substituted for missing or legacy fields. Records written
// by older clients may lack a category, payment mode or date entirely; they
// must still render instead of failing.
const (
	Uncategorized  = "Uncategorized"
	UnknownPayment = "Unknown"
	UnknownDate    = "Unknown"
	OtherLabel     = "Other"
)

// DateLayout is the wire format for expense dates (calendar date, no time).
const DateLayout = "2006-01-02"

// Known choice sets. Both are open-ended: a Label can carry any custom value.
var (
	Categories   = []string{"Food", "Transport", "Bills", "Shopping", "Entertainment", "Health", "Education", "Other"}
	PaymentModes = []string{"Cash", "Card", "UPI", "Bank Transfer", "Wallet", "Other"}
)

var (
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
)

type (
	// Expense is one normalized expense record. ID is assigned by the store
	// on creation and immutable thereafter.
	Expense struct {
		ID          string
		Description string
		Amount      Money
		Category    string
		PaymentMode string
		// Date holds the stored date string (ISO-8601 or UnknownDate).
		Date string
		// When is the parsed Date. Zero when the date is missing or
		// unparseable; such records sort after all dated ones.
		When time.Time
	}

	// Label is a tagged choice: one of a known set, or a free-form custom
	// value entered behind the "Other" escape hatch.
	Label struct {
		Choice string
		Custom string
	}
)

// HasDate reports whether the record carries a parseable calendar date.
func (e Expense) HasDate() bool {
	return !e.When.IsZero()
}

// Resolve collapses the tagged choice into the stored string. An empty
// custom value behind "Other" resolves to the literal "Other".
func (l Label) Resolve() string {
	choice := strings.TrimSpace(l.Choice)
	if choice != OtherLabel && choice != "" {
		return choice
	}
	if custom := strings.TrimSpace(l.Custom); custom != "" {
		return custom
	}
	return OtherLabel
}

// ParseDate parses an ISO-8601 calendar date. The zero time signals an
// unknown date to callers; it is not an error at normalization time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
