package domain

import (
	"strconv"
	"strings"
)

// Role is the staffing classification of an assignee. Role names are the
// export's own vocabulary and double as the JSON wire values.
type Role string

const (
	RoleGuard       Role = "Guardia"
	RoleAgent       Role = "Agente"
	RoleManagerCare Role = "Manager Care"
	RoleIgnore      Role = "Ignorar"
)

// RoleInclusion toggles each countable role in headcount math. RoleIgnore has
// no toggle; it is always excluded.
type RoleInclusion struct {
	Guard       bool `json:"Guardia"`
	Agent       bool `json:"Agente"`
	ManagerCare bool `json:"Manager Care"`
}

// DefaultRoleInclusion counts every role that can be counted.
func DefaultRoleInclusion() RoleInclusion {
	return RoleInclusion{Guard: true, Agent: true, ManagerCare: true}
}

// RoleConfig is the resolved assignee-role mapping handed in by the settings
// collaborator. Unmapped assignees default to RoleAgent.
type RoleConfig struct {
	Map       map[string]Role `json:"map"`
	Inclusion *RoleInclusion  `json:"inclusion"`
}

func (rc RoleConfig) inclusion() RoleInclusion {
	if rc.Inclusion == nil {
		return DefaultRoleInclusion()
	}
	return *rc.Inclusion
}

// RoleOf resolves an assignee name to its configured role.
func (rc RoleConfig) RoleOf(name string) Role {
	if role, ok := rc.Map[name]; ok && role != "" {
		return role
	}
	return RoleAgent
}

// Included reports whether an assignee counts toward headcount.
func (rc RoleConfig) Included(name string) bool {
	inc := rc.inclusion()
	switch rc.RoleOf(name) {
	case RoleIgnore:
		return false
	case RoleGuard:
		return inc.Guard
	case RoleManagerCare:
		return inc.ManagerCare
	default:
		return inc.Agent
	}
}

// ShiftKind distinguishes regular coverage from on-call guard coverage.
type ShiftKind string

const (
	ShiftNormal ShiftKind = "normal"
	ShiftGuard  ShiftKind = "guard"
)

// CoverageShift is one configured coverage window. Days use Monday=0..Sunday=6.
// When Start > End the shift wraps past midnight; Start == End covers nothing.
type CoverageShift struct {
	Name    string    `json:"name"`
	Days    []int     `json:"days"`
	Start   string    `json:"start"` // HH:MM
	End     string    `json:"end"`   // HH:MM
	Kind    ShiftKind `json:"kind"`
	Enabled *bool     `json:"enabled"` // nil means enabled
}

// IsEnabled treats an absent flag as enabled, matching the settings contract.
func (s CoverageShift) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// CoversHour reports whether the full hour-long interval starting at hour
// falls inside the shift's [start, end) window.
func (s CoverageShift) CoversHour(hour int) bool {
	start, ok := timeToMinutes(s.Start)
	if !ok {
		return false
	}
	end, ok := timeToMinutes(s.End)
	if !ok {
		return false
	}
	if start == end {
		return false
	}
	h0 := hour * 60
	h1 := hour*60 + 59
	if start < end {
		return h0 >= start && h1 < end
	}
	// wraps past midnight
	return (h0 >= start && h1 < 24*60) || (h0 >= 0 && h1 < end)
}

// Covers reports whether the shift covers the given weekday and hour cell.
func (s CoverageShift) Covers(weekday, hour int) bool {
	for _, d := range s.Days {
		if d == weekday {
			return s.CoversHour(hour)
		}
	}
	return false
}

// PickShift returns the first enabled shift in configured order covering the
// cell, or nil. Configured order decides display ties.
func PickShift(shifts []CoverageShift, weekday, hour int) *CoverageShift {
	for i := range shifts {
		if !shifts[i].IsEnabled() {
			continue
		}
		if shifts[i].Covers(weekday, hour) {
			return &shifts[i]
		}
	}
	return nil
}

// AnyShiftCovers reports whether any enabled shift covers the cell. Overlaps
// merge: covered is covered.
func AnyShiftCovers(shifts []CoverageShift, weekday, hour int) bool {
	return PickShift(shifts, weekday, hour) != nil
}

// CoverageCell names the shift claiming a weekday/hour cell, if any.
type CoverageCell struct {
	Shift string    `json:"shift,omitempty"`
	Kind  ShiftKind `json:"kind,omitempty"`
}

// CoverageGrid maps every weekday (Monday=0) and hour to its covering shift.
type CoverageGrid [7][24]CoverageCell

// BuildCoverageGrid classifies the whole week against the configured shifts.
// Returns nil when no shifts are configured.
func BuildCoverageGrid(shifts []CoverageShift) *CoverageGrid {
	if len(shifts) == 0 {
		return nil
	}
	var grid CoverageGrid
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if s := PickShift(shifts, day, hour); s != nil {
				grid[day][hour] = CoverageCell{Shift: s.Name, Kind: s.Kind}
			}
		}
	}
	return &grid
}

func timeToMinutes(hhmm string) (int, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// HealthLevel grades the tickets-per-person workload against the thresholds.
type HealthLevel string

const (
	HealthNoData        HealthLevel = "No data"
	HealthUnderCapacity HealthLevel = "Under capacity"
	HealthOptimal       HealthLevel = "Optimal"
	HealthAtLimit       HealthLevel = "At limit"
	HealthOverloaded    HealthLevel = "Overloaded"
)

// TPPThresholds are the ascending tickets-per-person workload bounds.
type TPPThresholds struct {
	CapacityMax float64 `json:"capacityMax"`
	OptimalMax  float64 `json:"optimalMax"`
	LimitMax    float64 `json:"limitMax"`
}

// Normalized repairs inverted bounds so the three values ascend.
func (t TPPThresholds) Normalized() TPPThresholds {
	if t.CapacityMax > t.OptimalMax {
		t.OptimalMax = t.CapacityMax
	}
	if t.OptimalMax > t.LimitMax {
		t.LimitMax = t.OptimalMax
	}
	return t
}

// Health grades a tickets-per-person value; nil means no data.
func (t TPPThresholds) Health(tpp *float64) HealthLevel {
	if tpp == nil {
		return HealthNoData
	}
	n := t.Normalized()
	switch {
	case *tpp < n.CapacityMax:
		return HealthUnderCapacity
	case *tpp <= n.OptimalMax:
		return HealthOptimal
	case *tpp <= n.LimitMax:
		return HealthAtLimit
	default:
		return HealthOverloaded
	}
}

// Comparison windows the settings collaborator may select.
const (
	CompareWindowQuarter  = 3
	CompareWindowHalfYear = 6
	CompareWindowYear     = 12
)

// ReportSettings is the full configuration surface the core consumes. It is
// resolved once by the external settings collaborator; the core never probes
// alternative storage locations.
type ReportSettings struct {
	TPP                 TPPThresholds   `json:"tpp"`
	Roles               RoleConfig      `json:"roles"`
	CoverageShifts      []CoverageShift `json:"coverageShifts"`
	CompareWindowMonths int             `json:"compareWindowMonths"`
	ComparePrevious     *bool           `json:"comparePrevious"` // nil means true
}

// ComparePreviousEnabled treats an absent toggle as on.
func (s ReportSettings) ComparePreviousEnabled() bool {
	return s.ComparePrevious == nil || *s.ComparePrevious
}

// Window clamps the comparison window to a supported size.
func (s ReportSettings) Window() int {
	switch s.CompareWindowMonths {
	case CompareWindowQuarter, CompareWindowHalfYear, CompareWindowYear:
		return s.CompareWindowMonths
	default:
		return CompareWindowYear
	}
}
