package convert

import (
	"regexp"
	"strings"
	"time"

	"github.com/monarchize-dev/monarchize/internal/model"
)

// Drop says why Normalize excluded a row, or DropNone if it was kept.
// Rows are only ever dropped by the date filter; malformed fields degrade
// to defaults instead.
type Drop int

const (
	DropNone Drop = iota
	DropUnparsedDate
	DropBelowRange
	DropAboveRange
)

// Monarch category values assigned by the sign transform.
const (
	CategoryUncategorized = "Uncategorized"
	CategoryPayment       = "Credit Card Payment"
)

// cardSuffixPlaceholder stands in when a card number has no trailing digits.
const cardSuffixPlaceholder = "XXXX"

// dateFormats are tried in order; the first successful parse wins. No
// attempt is made to disambiguate numeric forms beyond this ordering.
var dateFormats = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/1/2",
	"2/1/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses a transaction date, trying each known format in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Window is an optional inclusive date range.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Active reports whether any bound is set.
func (w Window) Active() bool { return w.From != nil || w.To != nil }

// Normalizer converts classified raw rows into Monarch records. It carries
// the run-scoped settings: the account label used for portal exports and
// the optional inclusive date window.
type Normalizer struct {
	portalLabel string
	window      Window
}

// NewNormalizer creates a Normalizer. When the window has a lower bound but
// no upper bound, the upper bound defaults to the current date, fixed once
// here so every row of the run filters against the same value.
func NewNormalizer(portalLabel string, w Window) *Normalizer {
	if w.From != nil && w.To == nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		w.To = &today
	}
	return &Normalizer{portalLabel: portalLabel, window: w}
}

// Window returns the effective date window after any defaulting.
func (n *Normalizer) Window() Window { return n.window }

// Normalize produces one Monarch record from a classified row, or reports
// why the date filter dropped it. It never fails: malformed amounts parse
// as zero, missing card digits become a placeholder, missing fields read
// as empty.
func (n *Normalizer) Normalize(s *Schema, row model.RawRow) (model.Record, Drop) {
	dateStr := strings.TrimSpace(get(row, colDate))
	parsed, ok := ParseDate(dateStr)

	if n.window.Active() {
		switch {
		case !ok:
			return model.Record{}, DropUnparsedDate
		case n.window.From != nil && parsed.Before(*n.window.From):
			return model.Record{}, DropBelowRange
		case n.window.To != nil && parsed.After(*n.window.To):
			return model.Record{}, DropAboveRange
		}
	}

	rec := model.Record{Date: dateStr}
	s.mapFields(n, s, row, &rec)

	// Source positive is a purchase: negated in the output. Source
	// negative is a payment, credit, or refund: emitted positive. A
	// schema-provided category only survives on the purchase side.
	amount := cleanAmount(get(row, colAmount))
	if amount.IsNegative() {
		rec.Amount = amount.Abs()
		rec.Category = CategoryPayment
	} else {
		rec.Amount = amount.Neg()
		if rec.Category == "" {
			rec.Category = CategoryUncategorized
		}
	}
	return rec, DropNone
}

var lastFourRe = regexp.MustCompile(`(\d{4})\s*$`)

// lastFour pulls the trailing 4-digit run from a masked card number.
func lastFour(masked string) string {
	m := lastFourRe.FindStringSubmatch(strings.TrimSpace(masked))
	if m == nil {
		return cardSuffixPlaceholder
	}
	return m[1]
}

func mapStatementFields(_ *Normalizer, _ *Schema, row model.RawRow, rec *model.Record) {
	rec.Merchant = strings.TrimSpace(get(row, colMerchant))

	rec.OriginalStatement = strings.TrimSpace(get(row, colMCCDesc))
	if rec.OriginalStatement == "" {
		rec.OriginalStatement = rec.Merchant
	}

	var parts []string
	for _, col := range []string{colCity, colProvince, colCountry} {
		if v := strings.TrimSpace(get(row, col)); v != "" {
			parts = append(parts, v)
		}
	}
	rec.Notes = strings.Join(parts, ", ")

	rec.Account = "Card ****" + lastFour(get(row, colCard))
}

func mapPortalFields(n *Normalizer, s *Schema, row model.RawRow, rec *model.Record) {
	rec.Merchant = firstNonEmpty(row, s.DescAliases)
	// The portal export has no separate description or location columns.
	rec.OriginalStatement = rec.Merchant
	rec.Account = n.portalLabel
	rec.Category = firstNonEmpty(row, s.CatAliases)
}
