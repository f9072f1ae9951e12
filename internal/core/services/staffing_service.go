package services

import (
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

// StaffingService derives month-level headcount from assignee activity.
// There is no roster in the export; the people working a month are exactly
// the people assigned tickets in it.
type StaffingService struct{}

var _ ports.StaffingService = (*StaffingService)(nil)

// NewStaffingService creates a new staffing service
func NewStaffingService() ports.StaffingService {
	return &StaffingService{}
}

// MonthHeadcount counts the distinct assignees with at least one ticket in
// month whose resolved role passes the inclusion rules. Unmapped assignees
// default to the agent role; assignees mapped to the ignore role never count.
func (s *StaffingService) MonthHeadcount(month string, tickets []domain.Ticket, roles domain.RoleConfig) int {
	seen := make(map[string]struct{})
	count := 0
	for _, t := range tickets {
		if t.Month != month || t.Assignee == "" {
			continue
		}
		if _, dup := seen[t.Assignee]; dup {
			continue
		}
		seen[t.Assignee] = struct{}{}
		if roles.Included(t.Assignee) {
			count++
		}
	}
	return count
}
