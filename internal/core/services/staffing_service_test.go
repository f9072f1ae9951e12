package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/services"
)

func ticketFor(month string, assignee string) domain.Ticket {
	y := 2026
	m := time.January
	if month == "2026-02" {
		m = time.February
	}
	return domain.Ticket{
		Assignee:  assignee,
		CreatedAt: time.Date(y, m, 10, 9, 0, 0, 0, time.Local),
		Year:      y,
		Month:     month,
	}
}

func TestStaffingService_MonthHeadcount(t *testing.T) {
	svc := services.NewStaffingService()

	tickets := []domain.Ticket{
		ticketFor("2026-01", "Ana"),
		ticketFor("2026-01", "Ana"),
		ticketFor("2026-01", "Beto"),
		ticketFor("2026-01", "Carla"),
		ticketFor("2026-01", ""),
		ticketFor("2026-02", "Diego"),
	}

	t.Run("counts distinct included assignees of the month", func(t *testing.T) {
		got := svc.MonthHeadcount("2026-01", tickets, domain.RoleConfig{})
		assert.Equal(t, 3, got)
	})

	t.Run("other months do not bleed in", func(t *testing.T) {
		got := svc.MonthHeadcount("2026-02", tickets, domain.RoleConfig{})
		assert.Equal(t, 1, got)
	})

	t.Run("ignored assignees shrink the count monotonically", func(t *testing.T) {
		roles := domain.RoleConfig{Map: map[string]domain.Role{"Ana": domain.RoleIgnore}}
		withIgnore := svc.MonthHeadcount("2026-01", tickets, roles)
		assert.Equal(t, 2, withIgnore)

		roles.Map["Beto"] = domain.RoleIgnore
		assert.Equal(t, 1, svc.MonthHeadcount("2026-01", tickets, roles))
	})

	t.Run("role inclusion toggles apply", func(t *testing.T) {
		roles := domain.RoleConfig{
			Map:       map[string]domain.Role{"Ana": domain.RoleGuard},
			Inclusion: &domain.RoleInclusion{Guard: false, Agent: true, ManagerCare: true},
		}
		assert.Equal(t, 2, svc.MonthHeadcount("2026-01", tickets, roles))
	})

	t.Run("month with no tickets has zero headcount", func(t *testing.T) {
		assert.Zero(t, svc.MonthHeadcount("2030-01", tickets, domain.RoleConfig{}))
	})
}
