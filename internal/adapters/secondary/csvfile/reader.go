// Package csvfile reads support-ticket CSV exports into raw row maps. Header
// normalization happens here; all value parsing stays in the core.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/parsing"
)

const utf8BOM = "\xEF\xBB\xBF"

// ReadRows parses a CSV stream into row maps keyed by lower-cased, trimmed
// header name. Ragged records are tolerated: short rows leave trailing fields
// absent, long rows drop the overflow. Rows with every field blank are
// skipped before they can inflate the dropped-row count downstream.
func ReadRows(r io.Reader) ([]parsing.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, utf8BOM)
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []parsing.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}
		if allBlank(record) {
			continue
		}
		row := make(parsing.Row, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func allBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
