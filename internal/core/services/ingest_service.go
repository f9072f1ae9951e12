package services

import (
	"sort"
	"strings"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/parsing"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

// Canonical field aliases in resolution order. Export tools disagree on
// column naming, punctuation and locale, so each logical field carries the
// variants observed in real exports.
var (
	createdAliases = []string{"creada"}

	slaAliases = []string{
		"campo personalizado (time to first response)",
		"campo personalizado (time to first response).",
		"custom field (time to first response)",
		"custom field (time to first response).",
		"time to first response",
		"time to first response (hrs)",
		"sla response",
		"sla de response",
	}

	satisfactionAliases = []string{
		"calificación de satisfacción",
		"calificacion de satisfaccion",
		"satisfaction",
	}

	organizationAliases = []string{
		"campo personalizado (organizations)",
		"organizations",
		"organization",
		"organisation",
	}

	statusAliases   = []string{"estado"}
	assigneeAliases = []string{"persona asignada"}
	keyAliases      = []string{"clave de incidencia", "key"}
)

// IngestService normalizes raw CSV rows into the canonical ticket set.
type IngestService struct{}

var _ ports.IngestService = (*IngestService)(nil)

// NewIngestService creates a new ingest service
func NewIngestService() ports.IngestService {
	return &IngestService{}
}

// Normalize builds sorted tickets from raw rows. Rows without a parseable
// created date are dropped and counted; blocked/on-hold tickets are excluded
// silently after the date parse, so a dirty date on an excluded row still
// counts as dropped.
func (s *IngestService) Normalize(rows []parsing.Row) *domain.ImportResult {
	result := &domain.ImportResult{
		Tickets: make([]domain.Ticket, 0, len(rows)),
	}
	seen := make(map[string]struct{})

	for _, row := range rows {
		rawCreated, _ := parsing.Resolve(row, createdAliases)
		createdAt, ok := parsing.ParseCreated(rawCreated)
		if !ok {
			result.DroppedRows++
			continue
		}

		rawStatus, _ := parsing.Resolve(row, statusAliases)
		status := strings.TrimSpace(rawStatus)
		if domain.StatusExcluded(status) {
			continue
		}

		rawKey, _ := parsing.Resolve(row, keyAliases)
		rawOrg, _ := parsing.Resolve(row, organizationAliases)
		rawAssignee, _ := parsing.Resolve(row, assigneeAliases)

		ticket := domain.Ticket{
			Key:          strings.TrimSpace(rawKey),
			Organization: strings.TrimSpace(rawOrg),
			Status:       status,
			Assignee:     strings.TrimSpace(rawAssignee),
			CreatedAt:    createdAt,
			Year:         createdAt.Year(),
			Month:        domain.MonthKey(createdAt),
		}

		if rawSLA, ok := parsing.Resolve(row, slaAliases); ok {
			if hours, ok := parsing.ParseSLAHours(rawSLA); ok {
				ticket.SLAResponseHours = &hours
			}
		}
		ticket.SLAStatus = domain.SLAStatusFor(ticket.SLAResponseHours)

		if rawCSAT, ok := parsing.Resolve(row, satisfactionAliases); ok {
			if rating, ok := parsing.ParseSatisfaction(rawCSAT); ok {
				ticket.Satisfaction = &rating
			}
		}

		if ticket.Assignee != "" {
			if _, dup := seen[ticket.Assignee]; !dup {
				seen[ticket.Assignee] = struct{}{}
				result.Assignees = append(result.Assignees, ticket.Assignee)
			}
		}

		result.Tickets = append(result.Tickets, ticket)
	}

	sort.SliceStable(result.Tickets, func(i, j int) bool {
		return result.Tickets[i].CreatedAt.Before(result.Tickets[j].CreatedAt)
	})
	sort.Strings(result.Assignees)

	return result
}
