package ports

import (
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/parsing"
)

// IngestService turns raw CSV rows into a normalized, sorted ticket set.
type IngestService interface {
	// Normalize maps header variants to canonical fields, parses dates and
	// SLA values, drops rows without a parseable created date, and silently
	// excludes blocked/on-hold tickets.
	Normalize(rows []parsing.Row) *domain.ImportResult
}

// StaffingService derives team size per month from assignee activity.
type StaffingService interface {
	// MonthHeadcount counts the distinct assignees active in month whose
	// resolved role is included by the role configuration.
	MonthHeadcount(month string, tickets []domain.Ticket, roles domain.RoleConfig) int
}

// ReportService aggregates a ticket set into the executive report.
type ReportService interface {
	// Build applies the filter to tickets and computes KPIs, series,
	// heatmaps and filter options. Partial-month gating for the
	// tickets-per-person window is decided against the full unfiltered set.
	Build(tickets []domain.Ticket, f domain.Filter, set domain.ReportSettings) *domain.Report
}

// CompareService computes period-over-period metric deltas.
type CompareService interface {
	// Compare evaluates the trailing window against the one or two windows
	// before it. Windows with missing months yield nil stats rather than
	// misleading numbers.
	Compare(tickets []domain.Ticket, f domain.Filter, set domain.ReportSettings) *domain.Comparison
}
