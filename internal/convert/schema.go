package convert

import (
	"errors"
	"strings"

	"github.com/monarchize-dev/monarchize/internal/model"
)

// Tag identifies a recognized input layout.
type Tag string

const (
	// TagStatement is the monthly official statement export.
	TagStatement Tag = "statement"
	// TagPortal is the weekly portal table export.
	TagPortal Tag = "portal"
)

// ErrNoHeaders reports a file with no header row at all, as opposed to a
// header row in an unrecognized layout.
var ErrNoHeaders = errors.New("no headers found")

// Statement export columns.
const (
	colDate     = "Date"
	colAmount   = "Amount"
	colMerchant = "Merchant Name"
	colCard     = "Card Number"
	colMCCDesc  = "Merchant Category Description"
	colCity     = "Merchant City"
	colProvince = "Merchant State or Province"
	colCountry  = "Merchant Country Code"
)

// mapFunc extracts the schema-specific output fields from a raw row.
type mapFunc func(n *Normalizer, s *Schema, row model.RawRow, rec *model.Record)

// Schema describes one recognized input layout: the headers that identify
// it and the rule set that maps its rows to output fields.
type Schema struct {
	Tag         Tag
	required    []string // lower-cased headers that must all be present
	DescAliases []string // candidate description columns, tried in order
	CatAliases  []string // candidate category columns, tried in order
	mapFields   mapFunc
}

var statementSchema = Schema{
	Tag: TagStatement,
	required: lowerAll(colDate, colAmount, colMerchant, colCard,
		colMCCDesc, colCity, colProvince, colCountry),
	mapFields: mapStatementFields,
}

var portalSchema = Schema{
	Tag:         TagPortal,
	required:    lowerAll(colDate, colAmount),
	DescAliases: []string{"Transaction description", "Description", "Merchant", "Merchant Name"},
	CatAliases:  []string{"Transaction category", "Category"},
	mapFields:   mapPortalFields,
}

// schemas are tried in registration order, most specific first: a header
// set satisfying both layouts must classify as statement.
var schemas = []*Schema{&statementSchema, &portalSchema}

// Classify decides which schema a header row matches. A nil schema with a
// nil error means the layout is unrecognized; that is a normal outcome for
// a foreign file, not a failure.
func Classify(headers []string) (*Schema, error) {
	if len(headers) == 0 {
		return nil, ErrNoHeaders
	}

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	for _, s := range schemas {
		if s.matches(present) {
			return s, nil
		}
	}
	return nil, nil
}

func (s *Schema) matches(present map[string]bool) bool {
	for _, req := range s.required {
		if !present[req] {
			return false
		}
	}
	if len(s.DescAliases) == 0 {
		return true
	}
	// A minimal layout also needs at least one description column.
	for _, alias := range s.DescAliases {
		if present[strings.ToLower(alias)] {
			return true
		}
	}
	return false
}

func lowerAll(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
