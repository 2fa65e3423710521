package convert

import (
	"strings"

	"github.com/monarchize-dev/monarchize/internal/model"
)

// get returns the row's value for a column, trying the exact key first and
// falling back to a case-insensitive scan. Upstream exports are not
// consistent about header casing. Missing columns read as "".
func get(row model.RawRow, name string) string {
	if v, ok := row[name]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			return v
		}
	}
	return ""
}

// firstNonEmpty tries candidate column names in order and returns the first
// value that is non-empty after trimming.
func firstNonEmpty(row model.RawRow, names []string) string {
	for _, n := range names {
		if v := strings.TrimSpace(get(row, n)); v != "" {
			return v
		}
	}
	return ""
}
