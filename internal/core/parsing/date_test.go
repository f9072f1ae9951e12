package parsing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/parsing"
)

func TestParseCreated(t *testing.T) {
	t.Run("spanish month with PM noon", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("19/ene/26 12:47 PM")
		require.True(t, ok)

		assert.Equal(t, 2026, ts.Year())
		assert.Equal(t, time.January, ts.Month())
		assert.Equal(t, 19, ts.Day())
		assert.Equal(t, 12, ts.Hour())
		assert.Equal(t, 47, ts.Minute())
	})

	t.Run("AM midnight becomes hour zero", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("3/feb/25 12:05 AM")
		require.True(t, ok)
		assert.Equal(t, 0, ts.Hour())
		assert.Equal(t, 5, ts.Minute())
	})

	t.Run("PM afternoon adds twelve", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("15/feb/26 03:15 PM")
		require.True(t, ok)
		assert.Equal(t, 15, ts.Hour())
	})

	t.Run("english month abbreviation accepted", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("01/apr/24 09:30 AM")
		require.True(t, ok)
		assert.Equal(t, time.April, ts.Month())
	})

	t.Run("two digit year pivots at seventy", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("01/dic/99 01:00 PM")
		require.True(t, ok)
		assert.Equal(t, 1999, ts.Year())

		ts, ok = parsing.ParseCreated("01/dic/69 01:00 PM")
		require.True(t, ok)
		assert.Equal(t, 2069, ts.Year())
	})

	t.Run("lowercase am pm tolerated", func(t *testing.T) {
		ts, ok := parsing.ParseCreated("19/ene/26 1:47 pm")
		require.True(t, ok)
		assert.Equal(t, 13, ts.Hour())
	})

	t.Run("impossible calendar date fails", func(t *testing.T) {
		_, ok := parsing.ParseCreated("30/feb/26 10:00 AM")
		assert.False(t, ok)
	})

	t.Run("unknown month token fails", func(t *testing.T) {
		_, ok := parsing.ParseCreated("19/xxx/26 12:47 PM")
		assert.False(t, ok)
	})

	t.Run("malformed input fails", func(t *testing.T) {
		for _, input := range []string{"", "2026-01-19", "19/ene/26", "19/ene/2026 12:47 PM", "not a date"} {
			_, ok := parsing.ParseCreated(input)
			assert.False(t, ok, "input %q", input)
		}
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		_, ok := parsing.ParseCreated("  19/ene/26 12:47 PM  ")
		assert.True(t, ok)
	})
}
