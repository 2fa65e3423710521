package model

import "github.com/shopspring/decimal"

// RawRow is one input CSV data row, keyed by the file's original header
// text. It lives only for the duration of a single pipeline iteration.
type RawRow map[string]string

// Record is one row of the Monarch import CSV. Date keeps the input's
// original textual form verbatim; Amount is sign-normalized (purchases
// negative, payments and credits positive). Tags is always empty at
// emission time, reserved for manual tagging downstream.
type Record struct {
	Date              string
	Merchant          string
	Category          string
	Account           string
	OriginalStatement string
	Notes             string
	Amount            decimal.Decimal
	Tags              string
}
