// Package monarch writes the Monarch Money import CSV.
package monarch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/monarchize-dev/monarchize/internal/model"
)

// Header is the Monarch import CSV header row.
const Header = "Date,Merchant,Category,Account,Original Statement,Notes,Amount,Tags"

const (
	numFields   = 8
	colDate     = 0
	colMerchant = 1
	colCategory = 2
	colAccount  = 3
	colOrigStmt = 4
	colNotes    = 5
	colAmount   = 6
	colTags     = 7
)

// Marshal converts a Record to a CSV row ([]string). Amounts always carry
// exactly two fractional digits.
func Marshal(rec model.Record) []string {
	row := make([]string, numFields)
	row[colDate] = rec.Date
	row[colMerchant] = rec.Merchant
	row[colCategory] = rec.Category
	row[colAccount] = rec.Account
	row[colOrigStmt] = rec.OriginalStatement
	row[colNotes] = rec.Notes
	row[colAmount] = rec.Amount.StringFixed(2)
	row[colTags] = rec.Tags
	return row
}

// Write writes the full import CSV (header plus one row per record) in one
// pass.
func Write(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(Marshal(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
