package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The export writes month abbreviations in Spanish; unrecognized tokens pass
// through untranslated and fail the month lookup below.
var spanishMonths = map[string]string{
	"ene": "jan",
	"feb": "feb",
	"mar": "mar",
	"abr": "apr",
	"may": "may",
	"jun": "jun",
	"jul": "jul",
	"ago": "aug",
	"sep": "sep",
	"oct": "oct",
	"nov": "nov",
	"dic": "dec",
}

var englishMonths = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var createdRe = regexp.MustCompile(`^(\d{1,2})/([A-Za-z]{3})/(\d{2})\s+(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// ParseCreated parses the export's localized creation timestamp, e.g.
// "19/ene/26 12:47 PM". Times are naive local wall-clock; no zone conversion.
// Two-digit years pivot at 70 (>= 70 is 1900s). Impossible calendar dates
// (Feb 30) fail. Failure is reported via ok, never an error.
func ParseCreated(s string) (time.Time, bool) {
	m := createdRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	monTok := strings.ToLower(m[2])
	if en, ok := spanishMonths[monTok]; ok {
		monTok = en
	}
	month, ok := englishMonths[monTok]
	if !ok {
		return time.Time{}, false
	}

	yy, _ := strconv.Atoi(m[3])
	year := 2000 + yy
	if yy >= 70 {
		year = 1900 + yy
	}

	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	ampm := strings.ToUpper(m[6])
	if ampm == "PM" && hour != 12 {
		hour += 12
	}
	if ampm == "AM" && hour == 12 {
		hour = 0
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	// time.Date normalizes overflow (Feb 30 becomes Mar 2); reject it.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
