package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.InDelta(t, 40, cfg.Reporting.TPPCapacityMax, 1e-9)
	assert.InDelta(t, 70, cfg.Reporting.TPPOptimalMax, 1e-9)
	assert.InDelta(t, 95, cfg.Reporting.TPPLimitMax, 1e-9)
	assert.Equal(t, 12, cfg.Reporting.CompareWindowMonths)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPORT_TPP_CAPACITY_MAX", "25")
	t.Setenv("REPORT_COMPARE_WINDOW_MONTHS", "6")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.InDelta(t, 25, cfg.Reporting.TPPCapacityMax, 1e-9)
	assert.Equal(t, 6, cfg.Reporting.CompareWindowMonths)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unsupported compare window", func(t *testing.T) {
		t.Setenv("REPORT_COMPARE_WINDOW_MONTHS", "7")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
