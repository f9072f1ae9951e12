// Package parsing turns the raw, locale-specific values of a support-ticket
// CSV export into typed Go values. Every parser here reports failure through
// an ok flag rather than an error: a value that does not parse is data the
// pipeline counts or nulls out, not a fault.
package parsing

import "strings"

// Row is one raw CSV record keyed by lower-cased, trimmed header name.
type Row map[string]string

// Resolve extracts a logical field from a row given an ordered list of
// candidate header names. The first candidate present with a non-blank value
// wins; failing that, the first candidate merely present (even blank); if no
// candidate exists the field is absent. Export tools vary column naming and
// punctuation between locales, so resolution must be order-stable.
func Resolve(row Row, candidates []string) (string, bool) {
	for _, c := range candidates {
		if v, ok := row[c]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	for _, c := range candidates {
		if v, ok := row[c]; ok {
			return v, true
		}
	}
	return "", false
}
