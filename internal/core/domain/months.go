package domain

import (
	"strconv"
	"strings"
	"time"
)

// maxMonthSpan bounds month range expansion against inverted or absurd input.
const maxMonthSpan = 240

// AddMonths shifts a YYYY-MM label by delta calendar months. Malformed labels
// are returned unchanged.
func AddMonths(ym string, delta int) string {
	y, m, ok := splitMonth(ym)
	if !ok {
		return ym
	}
	d := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	return MonthKey(d)
}

// MonthsBetween expands an inclusive YYYY-MM range into the ordered list of
// month labels it spans. Empty bounds yield an empty list.
func MonthsBetween(from, to string) []string {
	var out []string
	if from == "" || to == "" {
		return out
	}
	cur := from
	for i := 0; i < maxMonthSpan; i++ {
		out = append(out, cur)
		if cur == to {
			break
		}
		cur = AddMonths(cur, 1)
	}
	return out
}

// LastDayOfMonth reports whether t falls on the final calendar day of its month.
func LastDayOfMonth(t time.Time) bool {
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	return t.Day() == last
}

func splitMonth(ym string) (year, month int, ok bool) {
	parts := strings.SplitN(ym, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}
