package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

const (
	topAssigneesLimit     = 10
	topOrganizationsLimit = 5
	heatmapMonths         = 6
	trailingWindowMonths  = 6
)

// ReportService computes the full aggregate report for one filtered view.
// Every aggregate is a pure function over the sorted ticket slice; the
// service holds no state between calls.
type ReportService struct {
	staffing ports.StaffingService
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a new report service
func NewReportService(staffing ports.StaffingService) ports.ReportService {
	return &ReportService{staffing: staffing}
}

// Build filters tickets and derives KPIs, series, heatmaps and filter
// options. The unfiltered set stays in play for two things only: the filter
// option lists and the partial-month decision of the tickets-per-person
// window.
func (s *ReportService) Build(tickets []domain.Ticket, f domain.Filter, set domain.ReportSettings) *domain.Report {
	view := f.Apply(tickets)

	report := &domain.Report{
		Series: domain.Series{
			TicketsByMonth:   ticketsByMonth(view),
			TicketsByYear:    ticketsByYear(view),
			StatusByYear:     statusByYear(view),
			SLAByYear:        slaByYear(view),
			CSATByYear:       csatByYear(view),
			TopAssignees:     topRanking(view, assigneeLabel, topAssigneesLimit, false),
			TopOrganizations: topRanking(view, organizationLabel, topOrganizationsLimit, true),
			MonthStatusHeat:  monthStatusHeatmap(view),
			HourHeat:         hourHeatmap(view),
			WeekHeat:         weekHeatmap(view),
		},
		FilterOptions: filterOptions(tickets),
		Coverage:      domain.BuildCoverageGrid(set.CoverageShifts),
	}
	report.KPIs = s.kpis(tickets, view, set)
	return report
}

func (s *ReportService) kpis(all, view []domain.Ticket, set domain.ReportSettings) domain.KPIs {
	k := domain.KPIs{Total: len(view)}

	breached := 0
	ratedSum := 0.0
	rated := 0
	for _, t := range view {
		if t.SLAStatus == domain.SLABreached {
			breached++
		}
		if t.Satisfaction != nil {
			ratedSum += *t.Satisfaction
			rated++
		}
	}
	k.SLABreached = breached
	k.SLACompliancePct = 100 - pct(breached, len(view))
	if rated > 0 {
		avg := ratedSum / float64(rated)
		k.CSATAverage = &avg
	}
	k.CSATCoveragePct = pct(rated, len(view))

	if len(view) > 0 {
		latest := view[len(view)-1].Month
		k.LatestMonth = latest
		for _, t := range view {
			if t.Month == latest {
				k.LatestMonthTickets++
			}
		}
	}

	k.TicketsPerPerson = s.trailingTPP(all, view, set)
	k.TPPHealth = set.TPP.Health(k.TicketsPerPerson)
	return k
}

// trailingTPP computes the headline tickets-per-person over the last (up to
// six) distinct months of the view. Whether the current month is complete is
// judged against the full dataset: a filtered view always ends mid-range, and
// must not flip the gate on its own.
func (s *ReportService) trailingTPP(all, view []domain.Ticket, set domain.ReportSettings) *float64 {
	months := distinctMonths(view)
	if len(all) > 0 {
		last := all[len(all)-1]
		if !domain.LastDayOfMonth(last.CreatedAt) {
			current := last.Month
			if n := len(months); n > 0 && months[n-1] == current {
				months = months[:n-1]
			}
		}
	}
	if len(months) > trailingWindowMonths {
		months = months[len(months)-trailingWindowMonths:]
	}
	return ticketsPerPerson(view, months, set.Roles, s.staffing)
}

// ticketsPerPerson divides the window's ticket volume by its summed monthly
// headcount. A zero-headcount month keeps its tickets in the numerator while
// adding nothing to the denominator; the distortion is inherited behavior the
// report consumers expect.
func ticketsPerPerson(tickets []domain.Ticket, months []string, roles domain.RoleConfig, staffing ports.StaffingService) *float64 {
	if len(months) == 0 {
		return nil
	}
	inWindow := make(map[string]struct{}, len(months))
	for _, m := range months {
		inWindow[m] = struct{}{}
	}
	numerator := 0
	for _, t := range tickets {
		if _, ok := inWindow[t.Month]; ok {
			numerator++
		}
	}
	denominator := 0
	for _, m := range months {
		denominator += staffing.MonthHeadcount(m, tickets, roles)
	}
	if denominator == 0 {
		return nil
	}
	tpp := float64(numerator) / float64(denominator)
	return &tpp
}

func ticketsByMonth(view []domain.Ticket) []domain.MonthCount {
	counts := make(map[string]int)
	for _, t := range view {
		counts[t.Month]++
	}
	out := make([]domain.MonthCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, domain.MonthCount{Month: m, Tickets: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func ticketsByYear(view []domain.Ticket) []domain.YearCount {
	counts := make(map[int]int)
	for _, t := range view {
		counts[t.Year]++
	}
	out := make([]domain.YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, domain.YearCount{Year: y, Tickets: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	// The newest year is partial unless its data runs through December 31.
	if len(view) > 0 && len(out) > 0 {
		last := view[len(view)-1]
		final := &out[len(out)-1]
		if final.Year == last.Year {
			final.Partial = last.CreatedAt.Month() != time.December || !domain.LastDayOfMonth(last.CreatedAt)
		}
	}
	return out
}

func statusByYear(view []domain.Ticket) []domain.StatusYearCount {
	byYear := make(map[int]map[string]int)
	for _, t := range view {
		if byYear[t.Year] == nil {
			byYear[t.Year] = make(map[string]int)
		}
		byYear[t.Year][statusLabel(t)]++
	}
	out := make([]domain.StatusYearCount, 0, len(byYear))
	for y, counts := range byYear {
		out = append(out, domain.StatusYearCount{Year: y, Counts: counts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func slaByYear(view []domain.Ticket) []domain.SLAYear {
	type tally struct{ total, breached int }
	byYear := make(map[int]*tally)
	for _, t := range view {
		y := byYear[t.Year]
		if y == nil {
			y = &tally{}
			byYear[t.Year] = y
		}
		y.total++
		if t.SLAStatus == domain.SLABreached {
			y.breached++
		}
	}
	out := make([]domain.SLAYear, 0, len(byYear))
	for year, y := range byYear {
		out = append(out, domain.SLAYear{
			Year:         year,
			Total:        y.total,
			Compliant:    y.total - y.breached,
			Breached:     y.breached,
			CompliantPct: pct(y.total-y.breached, y.total),
			BreachedPct:  pct(y.breached, y.total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func csatByYear(view []domain.Ticket) []domain.CSATYear {
	type tally struct {
		total, rated int
		sum          float64
	}
	byYear := make(map[int]*tally)
	for _, t := range view {
		y := byYear[t.Year]
		if y == nil {
			y = &tally{}
			byYear[t.Year] = y
		}
		y.total++
		if t.Satisfaction != nil {
			y.rated++
			y.sum += *t.Satisfaction
		}
	}
	out := make([]domain.CSATYear, 0, len(byYear))
	for year, y := range byYear {
		c := domain.CSATYear{
			Year:        year,
			Responses:   y.rated,
			CoveragePct: pct(y.rated, y.total),
		}
		if y.rated > 0 {
			avg := y.sum / float64(y.rated)
			c.Average = &avg
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// topRanking counts tickets per label and keeps the top limit entries in
// descending order. Ties keep first-encounter order, which the stable sort
// preserves. With foldOthers the tail collapses into a single positive-only
// bucket so the ranking still sums to the view total.
func topRanking(view []domain.Ticket, label func(domain.Ticket) string, limit int, foldOthers bool) []domain.RankedEntry {
	counts := make(map[string]int)
	var order []string
	for _, t := range view {
		l := label(t)
		if _, seen := counts[l]; !seen {
			order = append(order, l)
		}
		counts[l]++
	}
	entries := make([]domain.RankedEntry, 0, len(order))
	for _, l := range order {
		entries = append(entries, domain.RankedEntry{Name: l, Tickets: counts[l]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Tickets > entries[j].Tickets })

	if len(entries) <= limit {
		return entries
	}
	top := entries[:limit:limit]
	if foldOthers {
		rest := 0
		for _, e := range entries[limit:] {
			rest += e.Tickets
		}
		if rest > 0 {
			top = append(top, domain.RankedEntry{Name: domain.OthersLabel, Tickets: rest})
		}
	}
	return top
}

// monthStatusHeatmap crosses the most recent six distinct months of the view
// against every status value observed anywhere in the view, so the column set
// stays stable even when a status last occurred before the trailing window.
func monthStatusHeatmap(view []domain.Ticket) domain.MonthStatusHeatmap {
	months := distinctMonths(view)
	if len(months) > heatmapMonths {
		months = months[len(months)-heatmapMonths:]
	}
	if len(months) == 0 {
		return domain.MonthStatusHeatmap{}
	}
	inSlice := make(map[string]int, len(months))
	for i, m := range months {
		inSlice[m] = i
	}

	rows := make([]domain.MonthStatusRow, len(months))
	for i, m := range months {
		rows[i] = domain.MonthStatusRow{Month: m, Counts: make(map[string]int)}
	}
	var statuses []string
	seen := make(map[string]struct{})
	max := 0
	for _, t := range view {
		l := statusLabel(t)
		if _, dup := seen[l]; !dup {
			seen[l] = struct{}{}
			statuses = append(statuses, l)
		}
		i, ok := inSlice[t.Month]
		if !ok {
			continue
		}
		rows[i].Counts[l]++
		if rows[i].Counts[l] > max {
			max = rows[i].Counts[l]
		}
	}
	sort.Strings(statuses)

	return domain.MonthStatusHeatmap{
		Statuses: statuses,
		Rows:     rows,
		Range:    fmt.Sprintf("%s → %s", months[0], months[len(months)-1]),
		Max:      max,
	}
}

func hourHeatmap(view []domain.Ticket) domain.HourHeatmap {
	var buckets [24]int
	max := 0
	for _, t := range view {
		h := t.CreatedAt.Hour()
		buckets[h]++
		if buckets[h] > max {
			max = buckets[h]
		}
	}
	data := make([]domain.HourBucket, 24)
	for h := 0; h < 24; h++ {
		data[h] = domain.HourBucket{Hour: h, Tickets: buckets[h]}
	}
	return domain.HourHeatmap{Data: data, Max: max}
}

func weekHeatmap(view []domain.Ticket) domain.WeekHeatmap {
	var heat domain.WeekHeatmap
	for _, t := range view {
		day := (int(t.CreatedAt.Weekday()) + 6) % 7 // Monday=0..Sunday=6
		hour := t.CreatedAt.Hour()
		heat.Matrix[day][hour]++
		if heat.Matrix[day][hour] > heat.Max {
			heat.Max = heat.Matrix[day][hour]
		}
	}
	return heat
}

// filterOptions enumerates the distinct filterable values of the whole
// import, independent of the active filter, so narrowing one dimension never
// hides the others' choices.
func filterOptions(tickets []domain.Ticket) domain.FilterOptions {
	orgs := make(map[string]struct{})
	assignees := make(map[string]struct{})
	statuses := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, t := range tickets {
		if t.Organization != "" {
			orgs[t.Organization] = struct{}{}
		}
		if t.Assignee != "" {
			assignees[t.Assignee] = struct{}{}
		}
		if t.Status != "" {
			statuses[t.Status] = struct{}{}
		}
		months[t.Month] = struct{}{}
	}
	return domain.FilterOptions{
		Organizations: sortedKeys(orgs),
		Assignees:     sortedKeys(assignees),
		Statuses:      sortedKeys(statuses),
		Months:        sortedKeys(months),
	}
}

// distinctMonths returns the view's months ascending. The view is sorted by
// CreatedAt, so first-encounter order is already chronological.
func distinctMonths(view []domain.Ticket) []string {
	var months []string
	seen := make(map[string]struct{})
	for _, t := range view {
		if _, dup := seen[t.Month]; !dup {
			seen[t.Month] = struct{}{}
			months = append(months, t.Month)
		}
	}
	return months
}

func statusLabel(t domain.Ticket) string {
	if t.Status == "" {
		return domain.EmptyLabel
	}
	return t.Status
}

func assigneeLabel(t domain.Ticket) string {
	if t.Assignee == "" {
		return domain.EmptyLabel
	}
	return t.Assignee
}

func organizationLabel(t domain.Ticket) string {
	if t.Organization == "" {
		return domain.EmptyLabel
	}
	return t.Organization
}

// pct is count/total*100 with the zero-total convention pinned to 0.
func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
