package convert

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	creditMarkerRe = regexp.MustCompile(`(?i)\bCR\b`)
	nonNumericRe   = regexp.MustCompile(`[^\d.\-]`)
)

// cleanAmount parses a raw amount cell into a signed decimal magnitude.
// Currency symbols and thousands separators are stripped. Three independent
// signals make the value negative: a parenthesized value, an explicit
// leading minus, and a CR credit marker. A cell with no usable digits
// parses as zero; cleanAmount never fails.
func cleanAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)

	creditMarker := creditMarkerRe.MatchString(s)
	parenthesized := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")

	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	explicitNeg := strings.HasPrefix(s, "-")

	s = nonNumericRe.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return decimal.Zero
	}

	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}

	if creditMarker || parenthesized || explicitNeg {
		return val.Abs().Neg()
	}
	return val.Abs()
}
