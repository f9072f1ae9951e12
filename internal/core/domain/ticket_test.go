package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
)

func TestStatusExcluded(t *testing.T) {
	t.Run("block and hold states match on word boundaries", func(t *testing.T) {
		for _, status := range []string{"Block", "block", "On Hold", "HOLD", "Block - waiting"} {
			assert.True(t, domain.StatusExcluded(status), "status %q", status)
		}
	})

	t.Run("substrings without a boundary do not match", func(t *testing.T) {
		for _, status := range []string{"Blocked", "Holding", "Unblock", "Open", "Closed", ""} {
			assert.False(t, domain.StatusExcluded(status), "status %q", status)
		}
	})
}

func TestSLAStatusFor(t *testing.T) {
	neg := -0.5
	zero := 0.0
	pos := 2.5

	assert.Equal(t, domain.SLABreached, domain.SLAStatusFor(&neg))
	assert.Equal(t, domain.SLACompliant, domain.SLAStatusFor(&zero))
	assert.Equal(t, domain.SLACompliant, domain.SLAStatusFor(&pos))
	assert.Equal(t, domain.SLACompliant, domain.SLAStatusFor(nil))
}

func TestMonthKey(t *testing.T) {
	ts := time.Date(2026, time.January, 19, 12, 47, 0, 0, time.Local)
	assert.Equal(t, "2026-01", domain.MonthKey(ts))
}

func TestTicketJSONRoundTrip(t *testing.T) {
	hours := -0.5
	original := domain.Ticket{
		Key:              "CARE-123",
		Organization:     "Acme",
		Status:           "Open",
		Assignee:         "Ana",
		CreatedAt:        time.Date(2026, time.January, 19, 12, 47, 0, 0, time.UTC),
		Year:             2026,
		Month:            "2026-01",
		SLAResponseHours: &hours,
		SLAStatus:        domain.SLABreached,
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded domain.Ticket
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.True(t, decoded.CreatedAt.Equal(original.CreatedAt))
	assert.Equal(t, original.Month, decoded.Month)
	require.NotNil(t, decoded.SLAResponseHours)
	assert.InDelta(t, hours, *decoded.SLAResponseHours, 1e-9)
	assert.Nil(t, decoded.Satisfaction)
}

func TestFilterMatches(t *testing.T) {
	ticket := domain.Ticket{
		Organization: "Acme",
		Assignee:     "Ana",
		Status:       "Open",
		Month:        "2026-03",
	}

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, domain.Filter{}.Matches(ticket))
	})

	t.Run("month bounds are inclusive", func(t *testing.T) {
		f := domain.Filter{FromMonth: "2026-03", ToMonth: "2026-03"}
		assert.True(t, f.Matches(ticket))

		assert.False(t, domain.Filter{FromMonth: "2026-04"}.Matches(ticket))
		assert.False(t, domain.Filter{ToMonth: "2026-02"}.Matches(ticket))
	})

	t.Run("dimension fields match exactly", func(t *testing.T) {
		assert.True(t, domain.Filter{Organization: "Acme", Assignee: "Ana", Status: "Open"}.Matches(ticket))
		assert.False(t, domain.Filter{Organization: "Other"}.Matches(ticket))
	})

	t.Run("WithoutDates keeps dimensions only", func(t *testing.T) {
		f := domain.Filter{FromMonth: "2026-04", Organization: "Acme"}.WithoutDates()
		assert.True(t, f.Matches(ticket))
		assert.Equal(t, "Acme", f.Organization)
	})
}
