package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/monarchize-dev/monarchize/internal/model"
	"github.com/monarchize-dev/monarchize/internal/monarch"
)

// FileResult holds the per-file counters surfaced in the run report.
type FileResult struct {
	Name          string
	Tag           Tag
	Read          int
	Written       int
	Filtered      int
	UnparsedDates int
	Skipped       bool
	SkipReason    string
}

// Summary aggregates a whole run for reporting.
type Summary struct {
	Files         []FileResult
	Read          int
	Written       int
	Filtered      int
	UnparsedDates int
	OutputWritten bool
}

// ConvertFile reads one input CSV, classifies its layout, and normalizes
// every data row. Problems with the file itself (missing, unreadable, no
// headers, unrecognized layout) mark the result skipped rather than
// failing the run.
func (n *Normalizer) ConvertFile(path string) ([]model.Record, FileResult) {
	f, err := os.Open(path)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, fs.ErrNotExist) {
			reason = "file not found"
		}
		return nil, FileResult{Name: filepath.Base(path), Skipped: true, SkipReason: reason}
	}
	defer f.Close()

	return n.ConvertReader(filepath.Base(path), f)
}

// ConvertReader is ConvertFile for an already-open input.
func (n *Normalizer) ConvertReader(name string, r io.Reader) ([]model.Record, FileResult) {
	res := FileResult{Name: name}
	skip := func(reason string) ([]model.Record, FileResult) {
		res.Skipped = true
		res.SkipReason = reason
		return nil, res
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // extra or missing columns never reject a file

	rows, err := cr.ReadAll()
	if err != nil {
		return skip(fmt.Sprintf("reading CSV: %v", err))
	}

	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
		// Exports are UTF-8 or UTF-8 with BOM.
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	schema, err := Classify(headers)
	if err != nil {
		return skip(err.Error())
	}
	if schema == nil {
		return skip("unrecognized headers: " + strings.Join(headers, ", "))
	}
	res.Tag = schema.Tag

	var records []model.Record
	for _, cells := range rows[1:] {
		res.Read++

		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			}
		}

		rec, drop := n.Normalize(schema, row)
		if drop != DropNone {
			res.Filtered++
			if drop == DropUnparsedDate {
				res.UnparsedDates++
			}
			continue
		}
		records = append(records, rec)
		res.Written++
	}
	return records, res
}

// Run converts every input file in order and, when at least one record was
// accepted, writes the consolidated Monarch CSV to output. Zero accepted
// records is a success with no output file.
func Run(inputs []string, output string, n *Normalizer) (Summary, error) {
	var sum Summary
	var records []model.Record

	for _, path := range inputs {
		recs, res := n.ConvertFile(path)
		records = append(records, recs...)
		sum.Files = append(sum.Files, res)
		sum.Read += res.Read
		sum.Written += res.Written
		sum.Filtered += res.Filtered
		sum.UnparsedDates += res.UnparsedDates
	}

	if len(records) == 0 {
		return sum, nil
	}

	f, err := os.Create(output)
	if err != nil {
		return sum, fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()

	if err := monarch.Write(f, records); err != nil {
		return sum, fmt.Errorf("writing %s: %w", output, err)
	}
	sum.OutputWritten = true
	return sum, nil
}
