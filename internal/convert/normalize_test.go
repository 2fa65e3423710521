package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monarchize-dev/monarchize/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y, m, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func statementRow() model.RawRow {
	return model.RawRow{
		"Date":                          "2025-05-03",
		"Amount":                        "45.00",
		"Merchant Name":                 "Coffee Shop",
		"Card Number":                   "****1234",
		"Merchant Category Description": "Dining",
		"Merchant City":                 "Toronto",
		"Merchant State or Province":    "ON",
		"Merchant Country Code":         "CA",
	}
}

func TestNormalize_StatementPurchase(t *testing.T) {
	n := NewNormalizer("", Window{})

	rec, drop := n.Normalize(&statementSchema, statementRow())
	require.Equal(t, DropNone, drop)

	assert.Equal(t, "2025-05-03", rec.Date)
	assert.Equal(t, "Coffee Shop", rec.Merchant)
	assert.Equal(t, CategoryUncategorized, rec.Category)
	assert.Equal(t, "Card ****1234", rec.Account)
	assert.Equal(t, "Dining", rec.OriginalStatement)
	assert.Equal(t, "Toronto, ON, CA", rec.Notes)
	assert.Equal(t, "-45.00", rec.Amount.StringFixed(2))
	assert.Empty(t, rec.Tags)
}

func TestNormalize_StatementPayment(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Amount"] = "(120.00)"
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)

	assert.Equal(t, CategoryPayment, rec.Category)
	assert.Equal(t, "120.00", rec.Amount.StringFixed(2))
}

func TestNormalize_StatementOriginalStatementFallback(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Merchant Category Description"] = ""
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "Coffee Shop", rec.OriginalStatement)
}

func TestNormalize_StatementNotesSkipEmptyParts(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Merchant State or Province"] = ""
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "Toronto, CA", rec.Notes)
}

func TestNormalize_StatementCardSuffixPlaceholder(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Card Number"] = "no digits here"
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "Card ****XXXX", rec.Account)
}

func TestNormalize_StatementCardSuffixTrailingWhitespace(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Card Number"] = "****5678  "
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "Card ****5678", rec.Account)
}

func TestNormalize_PortalCategoryOverride(t *testing.T) {
	n := NewNormalizer("My Card", Window{})

	row := model.RawRow{
		"Date":                    "May 3, 2025",
		"Transaction description": "Grocery Store",
		"Transaction category":    "Groceries",
		"Amount":                  "82.15",
	}
	rec, drop := n.Normalize(&portalSchema, row)
	require.Equal(t, DropNone, drop)

	assert.Equal(t, "Grocery Store", rec.Merchant)
	assert.Equal(t, "Grocery Store", rec.OriginalStatement)
	assert.Equal(t, "Groceries", rec.Category)
	assert.Equal(t, "My Card", rec.Account)
	assert.Empty(t, rec.Notes)
	assert.Equal(t, "-82.15", rec.Amount.StringFixed(2))
}

func TestNormalize_PortalCreditIgnoresCategory(t *testing.T) {
	n := NewNormalizer("My Card", Window{})

	// A credit-marked amount is negative; the source category must not
	// override "Credit Card Payment".
	row := model.RawRow{
		"Date":                    "May 6, 2025",
		"Transaction description": "Refund Store",
		"Category":                "Refund",
		"Amount":                  "30 CR",
	}
	rec, drop := n.Normalize(&portalSchema, row)
	require.Equal(t, DropNone, drop)

	assert.Equal(t, CategoryPayment, rec.Category)
	assert.Equal(t, "30.00", rec.Amount.StringFixed(2))
}

func TestNormalize_PortalEmptyCategoryDefaults(t *testing.T) {
	n := NewNormalizer("My Card", Window{})

	row := model.RawRow{
		"Date":        "2025-05-03",
		"Description": "Shop",
		"Amount":      "10.00",
	}
	rec, drop := n.Normalize(&portalSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, CategoryUncategorized, rec.Category)
}

func TestNormalize_PortalDescriptionAliasOrder(t *testing.T) {
	n := NewNormalizer("My Card", Window{})

	// "Transaction description" outranks "Merchant" when both exist.
	row := model.RawRow{
		"Date":                    "2025-05-03",
		"Transaction description": "From Description",
		"Merchant":                "From Merchant",
		"Amount":                  "10.00",
	}
	rec, drop := n.Normalize(&portalSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "From Description", rec.Merchant)
}

func TestNormalize_CaseInsensitiveColumns(t *testing.T) {
	n := NewNormalizer("My Card", Window{})

	row := model.RawRow{
		"DATE":        "2025-05-03",
		"description": "Shop",
		"AMOUNT":      "10.00",
	}
	rec, drop := n.Normalize(&portalSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "2025-05-03", rec.Date)
	assert.Equal(t, "Shop", rec.Merchant)
	assert.Equal(t, "-10.00", rec.Amount.StringFixed(2))
}

func TestNormalize_MalformedAmountKeepsRow(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Amount"] = "not a number"
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "0.00", rec.Amount.StringFixed(2))
	assert.Equal(t, CategoryUncategorized, rec.Category)
}

func TestNormalize_UnparsedDateKeptWithoutFilter(t *testing.T) {
	n := NewNormalizer("", Window{})

	row := statementRow()
	row["Date"] = "sometime in May"
	rec, drop := n.Normalize(&statementSchema, row)
	require.Equal(t, DropNone, drop)
	assert.Equal(t, "sometime in May", rec.Date)
}

func TestNormalize_UnparsedDateDroppedWithFilter(t *testing.T) {
	n := NewNormalizer("", Window{From: datePtr(2025, 5, 1), To: datePtr(2025, 5, 31)})

	row := statementRow()
	row["Date"] = "sometime in May"
	_, drop := n.Normalize(&statementSchema, row)
	assert.Equal(t, DropUnparsedDate, drop)
}

func TestNormalize_FilterBoundariesInclusive(t *testing.T) {
	n := NewNormalizer("", Window{From: datePtr(2025, 5, 1), To: datePtr(2025, 5, 31)})

	tests := []struct {
		date string
		want Drop
	}{
		{"2025-05-01", DropNone},
		{"2025-05-31", DropNone},
		{"2025-04-30", DropBelowRange},
		{"2025-06-01", DropAboveRange},
	}
	for _, tt := range tests {
		row := statementRow()
		row["Date"] = tt.date
		_, drop := n.Normalize(&statementSchema, row)
		assert.Equal(t, tt.want, drop, "date %s", tt.date)
	}
}

func TestNormalize_FromWithoutToDefaultsToToday(t *testing.T) {
	n := NewNormalizer("", Window{From: datePtr(2025, 5, 1)})

	w := n.Window()
	require.NotNil(t, w.To)
	assert.False(t, w.To.Before(*w.From))

	// A date far in the future falls above the defaulted bound.
	row := statementRow()
	row["Date"] = "2999-01-01"
	_, drop := n.Normalize(&statementSchema, row)
	assert.Equal(t, DropAboveRange, drop)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer("", Window{})

	first, drop := n.Normalize(&statementSchema, statementRow())
	require.Equal(t, DropNone, drop)
	second, drop := n.Normalize(&statementSchema, statementRow())
	require.Equal(t, DropNone, drop)
	assert.Equal(t, first, second)
}

func TestParseDate_Formats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-05-03", date(2025, 5, 3)},
		{"05/03/2025", date(2025, 5, 3)},
		{"2025/05/03", date(2025, 5, 3)},
		{"May 3, 2025", date(2025, 5, 3)},
		{"May 03, 2025", date(2025, 5, 3)},
		{"January 15, 2025", date(2025, 1, 15)},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		require.True(t, ok, "parse %q", tt.in)
		assert.True(t, got.Equal(tt.want), "parse %q: got %v", tt.in, got)
	}
}

func TestParseDate_USFormTriedBeforeEU(t *testing.T) {
	// Ambiguous numeric forms resolve by trial order, US first.
	got, ok := ParseDate("05/03/2025")
	require.True(t, ok)
	assert.Equal(t, time.Month(5), got.Month())
	assert.Equal(t, 3, got.Day())
}

func TestParseDate_EUFormFallback(t *testing.T) {
	// 13 is not a valid month, so the EU form is the first that parses.
	got, ok := ParseDate("25/12/2025")
	require.True(t, ok)
	assert.Equal(t, time.Month(12), got.Month())
	assert.Equal(t, 25, got.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "yesterday", "2025-13-45"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "input %q", in)
	}
}
