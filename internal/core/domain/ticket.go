package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SLAStatus classifies a ticket's first-response SLA outcome.
type SLAStatus string

const (
	SLACompliant SLAStatus = "Compliant"
	SLABreached  SLAStatus = "Breached"
)

// Tickets in a blocked or on-hold state never enter the reporting set.
var excludedStatusRe = regexp.MustCompile(`(?i)\b(block|hold)\b`)

// Ticket is the canonical record derived from one usable CSV row.
// It is never mutated after creation; all aggregates are pure functions
// over an immutable slice of tickets sorted ascending by CreatedAt.
type Ticket struct {
	Key              string    `json:"key"`
	Organization     string    `json:"organization"`
	Status           string    `json:"status"`
	Assignee         string    `json:"assignee"`
	CreatedAt        time.Time `json:"createdAt"`
	Year             int       `json:"year"`
	Month            string    `json:"month"` // zero-padded YYYY-MM, derived from CreatedAt
	SLAResponseHours *float64  `json:"slaResponseHours"`
	SLAStatus        SLAStatus `json:"slaStatus"`
	Satisfaction     *float64  `json:"satisfaction"`
}

// StatusExcluded reports whether a raw status value disqualifies the row
// entirely (Block/Hold states, matched on word boundaries).
func StatusExcluded(status string) bool {
	return excludedStatusRe.MatchString(status)
}

// SLAStatusFor derives the compliance flag from parsed response hours.
// Only a strictly negative value is a breach; nil and zero are compliant.
func SLAStatusFor(hours *float64) SLAStatus {
	if hours != nil && *hours < 0 {
		return SLABreached
	}
	return SLACompliant
}

// MonthKey formats a timestamp as its canonical YYYY-MM month label.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ImportResult is the outcome of normalizing one raw CSV import.
type ImportResult struct {
	Tickets     []Ticket `json:"tickets"`
	DroppedRows int      `json:"droppedRows"` // rows whose created date failed to parse
	Assignees   []string `json:"assignees"`   // sorted distinct non-blank assignee names
}

// MinMonth returns the earliest month present, or "" for an empty import.
func (r *ImportResult) MinMonth() string {
	if len(r.Tickets) == 0 {
		return ""
	}
	return r.Tickets[0].Month
}

// MaxMonth returns the latest month present, or "" for an empty import.
func (r *ImportResult) MaxMonth() string {
	if len(r.Tickets) == 0 {
		return ""
	}
	return r.Tickets[len(r.Tickets)-1].Month
}

// Filter narrows a ticket set for aggregation. Empty fields match everything;
// FromMonth and ToMonth are inclusive YYYY-MM bounds.
type Filter struct {
	FromMonth    string
	ToMonth      string
	Organization string
	Assignee     string
	Status       string
}

// Matches reports whether a ticket passes every set filter field.
func (f Filter) Matches(t Ticket) bool {
	if f.FromMonth != "" && t.Month < f.FromMonth {
		return false
	}
	if f.ToMonth != "" && t.Month > f.ToMonth {
		return false
	}
	if f.Organization != "" && t.Organization != f.Organization {
		return false
	}
	if f.Assignee != "" && t.Assignee != f.Assignee {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// Apply returns the tickets passing the filter, preserving order.
func (f Filter) Apply(tickets []Ticket) []Ticket {
	out := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// WithoutDates returns a copy of the filter with the month bounds cleared.
// The comparative engine slides its own periods over the full history, so it
// applies only the non-temporal fields.
func (f Filter) WithoutDates() Filter {
	f.FromMonth = ""
	f.ToMonth = ""
	return f
}
