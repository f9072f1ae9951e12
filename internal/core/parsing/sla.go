package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalRe = regexp.MustCompile(`^[+-]?\d+([.,]\d+)?$`)
	hhmmRe    = regexp.MustCompile(`^([+-])?(\d+)\s*:\s*(\d{1,2})$`)
)

// ParseSLAHours parses a first-response SLA duration into signed fractional
// hours. Accepted forms, tried in order: blank (no value), signed decimal
// with dot or comma separator, and signed H:MM where the sign applies to the
// whole magnitude ("-0:30" is -0.5). Anything else is no value — downstream
// treats absent exactly like blank, i.e. compliant.
func ParseSLAHours(s string) (float64, bool) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, false
	}

	if decimalRe.MatchString(str) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(str, ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	m := hhmmRe.FindStringSubmatch(str)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	v := float64(hours) + float64(minutes)/60
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// ParseSatisfaction parses a CSAT rating; blank or non-numeric is no value.
func ParseSatisfaction(s string) (float64, bool) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
