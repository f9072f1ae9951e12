package domain

// EmptyLabel stands in for blank organization/assignee/status values in
// rankings and heatmaps.
const EmptyLabel = "(Empty)"

// OthersLabel is the synthetic bucket folding the tail of the organization
// ranking into one slice.
const OthersLabel = "Others"

// MonthCount is one point of the tickets-by-month series.
type MonthCount struct {
	Month   string `json:"month"`
	Tickets int    `json:"tickets"`
}

// YearCount is one bar of the tickets-by-year series. Partial marks the year
// whose data stops before December 31.
type YearCount struct {
	Year    int  `json:"year"`
	Tickets int  `json:"tickets"`
	Partial bool `json:"partial,omitempty"`
}

// StatusYearCount holds per-status ticket counts for one year.
type StatusYearCount struct {
	Year   int            `json:"year"`
	Counts map[string]int `json:"counts"`
}

// SLAYear summarizes first-response compliance for one year. Percentages are
// 0 when the total is 0, by convention, never a division result.
type SLAYear struct {
	Year         int     `json:"year"`
	Total        int     `json:"total"`
	Compliant    int     `json:"compliant"`
	Breached     int     `json:"breached"`
	CompliantPct float64 `json:"compliantPct"`
	BreachedPct  float64 `json:"breachedPct"`
}

// CSATYear averages satisfaction ratings for one year. Average is nil, not 0,
// when no tickets carry a rating.
type CSATYear struct {
	Year        int      `json:"year"`
	Average     *float64 `json:"average"`
	Responses   int      `json:"responses"`
	CoveragePct float64  `json:"coveragePct"`
}

// RankedEntry is one row of a top-N ranking.
type RankedEntry struct {
	Name    string `json:"name"`
	Tickets int    `json:"tickets"`
}

// MonthStatusRow is one heatmap row: ticket counts per status in one month.
type MonthStatusRow struct {
	Month  string         `json:"month"`
	Counts map[string]int `json:"counts"`
}

// MonthStatusHeatmap crosses the most recent six distinct months against the
// observed status values.
type MonthStatusHeatmap struct {
	Statuses []string         `json:"statuses"`
	Rows     []MonthStatusRow `json:"rows"`
	Range    string           `json:"range,omitempty"` // "YYYY-MM → YYYY-MM"
	Max      int              `json:"max"`
}

// HourBucket is one hour-of-day heatmap cell.
type HourBucket struct {
	Hour    int `json:"hour"`
	Tickets int `json:"tickets"`
}

// HourHeatmap buckets ticket creation times into 24 hours. Max carries the
// densest bucket for intensity scaling.
type HourHeatmap struct {
	Data []HourBucket `json:"data"`
	Max  int          `json:"max"`
}

// WeekHeatmap is the weekday (Monday=0..Sunday=6) by hour-of-day matrix.
type WeekHeatmap struct {
	Matrix [7][24]int `json:"matrix"`
	Max    int        `json:"max"`
}

// Series is the full bundle of derived aggregate series.
type Series struct {
	TicketsByMonth   []MonthCount       `json:"ticketsByMonth"`
	TicketsByYear    []YearCount        `json:"ticketsByYear"`
	StatusByYear     []StatusYearCount  `json:"statusByYear"`
	SLAByYear        []SLAYear          `json:"slaByYear"`
	CSATByYear       []CSATYear         `json:"csatByYear"`
	TopAssignees     []RankedEntry      `json:"topAssignees"`
	TopOrganizations []RankedEntry      `json:"topOrganizations"` // top 5 + Others
	MonthStatusHeat  MonthStatusHeatmap `json:"monthStatusHeat"`
	HourHeat         HourHeatmap        `json:"hourHeat"`
	WeekHeat         WeekHeatmap        `json:"weekHeat"`
}

// KPIs are the headline figures over the filtered view.
type KPIs struct {
	Total              int         `json:"total"`
	LatestMonth        string      `json:"latestMonth,omitempty"`
	LatestMonthTickets int         `json:"latestMonthTickets"`
	SLABreached        int         `json:"slaBreached"`
	SLACompliancePct   float64     `json:"slaCompliancePct"`
	CSATAverage        *float64    `json:"csatAverage"`
	CSATCoveragePct    float64     `json:"csatCoveragePct"`
	TicketsPerPerson   *float64    `json:"ticketsPerPerson"` // trailing window, nil without headcount
	TPPHealth          HealthLevel `json:"tppHealth"`
}

// FilterOptions lists the distinct filterable values of the whole import.
type FilterOptions struct {
	Organizations []string `json:"organizations"`
	Assignees     []string `json:"assignees"`
	Statuses      []string `json:"statuses"`
	Months        []string `json:"months"`
}

// Report is the aggregation engine's complete output for one filtered view.
type Report struct {
	KPIs          KPIs          `json:"kpis"`
	Series        Series        `json:"series"`
	FilterOptions FilterOptions `json:"filterOptions"`
	Coverage      *CoverageGrid `json:"coverage,omitempty"`
}

// Metric identifies a compared KPI.
type Metric string

const (
	MetricTickets          Metric = "tickets"
	MetricSLACompliance    Metric = "slaCompliance"
	MetricCSAT             Metric = "csat"
	MetricTicketsPerPerson Metric = "ticketsPerPerson"
)

// PeriodStats are the KPI values of one comparison period. Ratio metrics are
// nil when the period has no support for them.
type PeriodStats struct {
	Months           []string `json:"months"`
	Total            int      `json:"total"`
	SLACompliancePct *float64 `json:"slaCompliancePct"`
	CSATAverage      *float64 `json:"csatAverage"`
	TicketsPerPerson *float64 `json:"ticketsPerPerson"`
}

// MetricDelta is the percent change of one KPI against the qualified
// reference periods. A nil change means the comparison is undefined.
type MetricDelta struct {
	Metric         Metric   `json:"metric"`
	HigherIsBetter bool     `json:"higherIsBetter"`
	Prev1PctChange *float64 `json:"prev1PctChange"`
	Prev2PctChange *float64 `json:"prev2PctChange"`
}

// Comparison is the period-over-period bundle. Prev1/Prev2 are nil when their
// windows are incomplete in the source history; Prev2 additionally requires
// Prev1 to qualify.
type Comparison struct {
	Window      int           `json:"window"`
	BaseMonths  []string      `json:"baseMonths"`
	Prev1Months []string      `json:"prev1Months,omitempty"`
	Prev2Months []string      `json:"prev2Months,omitempty"`
	Base        PeriodStats   `json:"base"`
	Prev1       *PeriodStats  `json:"prev1"`
	Prev2       *PeriodStats  `json:"prev2"`
	Deltas      []MetricDelta `json:"deltas"`
}
