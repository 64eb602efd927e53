// Package export renders filtered expense records as flat CSV, the only
// supported export format.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shivthakur007/expense/internal/core"
)

// Header is the fixed CSV column set, matching the original wire names.
var Header = []string{"date", "expense", "amount", "category", "payment_mode"}

// Write emits one row per record, in the order given, UTF-8 encoded, with
// amounts carrying exactly two fractional digits.
func Write(w io.Writer, records []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range records {
		row := []string{e.Date, e.Description, e.Amount.Format(), e.Category, e.PaymentMode}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
