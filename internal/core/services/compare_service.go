package services

import (
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

// CompareService computes period-over-period metric deltas. Comparison
// periods slide over the full (non-date-filtered) history: a period with any
// month absent from that history is suppressed entirely rather than computed
// on an incomplete window.
type CompareService struct {
	staffing ports.StaffingService
}

var _ ports.CompareService = (*CompareService)(nil)

// NewCompareService creates a new compare service
func NewCompareService(staffing ports.StaffingService) ports.CompareService {
	return &CompareService{staffing: staffing}
}

// Compare derives the base window from the filter's month range (falling back
// to the dataset bounds) and measures it against the one or two equally
// sized windows preceding it.
func (s *CompareService) Compare(tickets []domain.Ticket, f domain.Filter, set domain.ReportSettings) *domain.Comparison {
	history := f.WithoutDates().Apply(tickets)

	from, to := f.FromMonth, f.ToMonth
	if from == "" && len(history) > 0 {
		from = history[0].Month
	}
	if to == "" && len(history) > 0 {
		to = history[len(history)-1].Month
	}
	selection := domain.MonthsBetween(from, to)

	window := set.Window()
	cmp := &domain.Comparison{Window: window}
	if len(selection) == 0 {
		return cmp
	}
	if len(selection) > window {
		selection = selection[len(selection)-window:]
	}
	cmp.BaseMonths = selection
	cmp.Base = s.periodStats(history, selection, set)

	present := make(map[string]struct{})
	for _, t := range history {
		present[t.Month] = struct{}{}
	}

	// The toggle switches period-over-period comparison off entirely, not
	// just the second look-back.
	if set.ComparePreviousEnabled() {
		prev1 := precedingMonths(selection, len(selection))
		if allPresent(prev1, present) {
			cmp.Prev1Months = prev1
			stats := s.periodStats(history, prev1, set)
			cmp.Prev1 = &stats

			// prev2 is only meaningful once prev1 qualifies.
			prev2 := precedingMonths(prev1, len(prev1))
			if allPresent(prev2, present) {
				cmp.Prev2Months = prev2
				stats := s.periodStats(history, prev2, set)
				cmp.Prev2 = &stats
			}
		}
	}

	cmp.Deltas = deltas(cmp.Base, cmp.Prev1, cmp.Prev2)
	return cmp
}

func (s *CompareService) periodStats(history []domain.Ticket, months []string, set domain.ReportSettings) domain.PeriodStats {
	inWindow := make(map[string]struct{}, len(months))
	for _, m := range months {
		inWindow[m] = struct{}{}
	}

	stats := domain.PeriodStats{Months: months}
	breached := 0
	rated := 0
	ratedSum := 0.0
	for _, t := range history {
		if _, ok := inWindow[t.Month]; !ok {
			continue
		}
		stats.Total++
		if t.SLAStatus == domain.SLABreached {
			breached++
		}
		if t.Satisfaction != nil {
			rated++
			ratedSum += *t.Satisfaction
		}
	}
	if stats.Total > 0 {
		compliance := 100 - pct(breached, stats.Total)
		stats.SLACompliancePct = &compliance
	}
	if rated > 0 {
		avg := ratedSum / float64(rated)
		stats.CSATAverage = &avg
	}
	stats.TicketsPerPerson = ticketsPerPerson(history, months, set.Roles, s.staffing)
	return stats
}

func deltas(base domain.PeriodStats, prev1, prev2 *domain.PeriodStats) []domain.MetricDelta {
	baseTotal := float64(base.Total)
	return []domain.MetricDelta{
		{
			Metric:         domain.MetricTickets,
			HigherIsBetter: true,
			Prev1PctChange: deltaPct(&baseTotal, totalOf(prev1)),
			Prev2PctChange: deltaPct(&baseTotal, totalOf(prev2)),
		},
		{
			Metric:         domain.MetricSLACompliance,
			HigherIsBetter: true,
			Prev1PctChange: deltaPct(base.SLACompliancePct, fieldOf(prev1, slaField)),
			Prev2PctChange: deltaPct(base.SLACompliancePct, fieldOf(prev2, slaField)),
		},
		{
			Metric:         domain.MetricCSAT,
			HigherIsBetter: true,
			Prev1PctChange: deltaPct(base.CSATAverage, fieldOf(prev1, csatField)),
			Prev2PctChange: deltaPct(base.CSATAverage, fieldOf(prev2, csatField)),
		},
		{
			Metric:         domain.MetricTicketsPerPerson,
			HigherIsBetter: false,
			Prev1PctChange: deltaPct(base.TicketsPerPerson, fieldOf(prev1, tppField)),
			Prev2PctChange: deltaPct(base.TicketsPerPerson, fieldOf(prev2, tppField)),
		},
	}
}

// deltaPct is (current−reference)/abs(reference)*100, undefined (nil) when
// either side is missing or the reference is zero.
func deltaPct(current, reference *float64) *float64 {
	if current == nil || reference == nil || *reference == 0 {
		return nil
	}
	ref := *reference
	if ref < 0 {
		ref = -ref
	}
	change := (*current - *reference) / ref * 100
	return &change
}

func totalOf(p *domain.PeriodStats) *float64 {
	if p == nil {
		return nil
	}
	total := float64(p.Total)
	return &total
}

func fieldOf(p *domain.PeriodStats, pick func(domain.PeriodStats) *float64) *float64 {
	if p == nil {
		return nil
	}
	return pick(*p)
}

func slaField(p domain.PeriodStats) *float64  { return p.SLACompliancePct }
func csatField(p domain.PeriodStats) *float64 { return p.CSATAverage }
func tppField(p domain.PeriodStats) *float64  { return p.TicketsPerPerson }

// precedingMonths returns the n months immediately before the first month of
// the slice, in chronological order.
func precedingMonths(months []string, n int) []string {
	if len(months) == 0 || n <= 0 {
		return nil
	}
	first := months[0]
	return domain.MonthsBetween(domain.AddMonths(first, -n), domain.AddMonths(first, -1))
}

func allPresent(months []string, present map[string]struct{}) bool {
	if len(months) == 0 {
		return false
	}
	for _, m := range months {
		if _, ok := present[m]; !ok {
			return false
		}
	}
	return true
}
