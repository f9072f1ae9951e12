package parsing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/parsing"
)

func TestParseSLAHours(t *testing.T) {
	t.Run("decimal forms", func(t *testing.T) {
		cases := []struct {
			input string
			want  float64
		}{
			{"2.5", 2.5},
			{"2,5", 2.5},
			{"-1.25", -1.25},
			{"+3", 3},
			{"0", 0},
			{"48", 48},
		}
		for _, tc := range cases {
			got, ok := parsing.ParseSLAHours(tc.input)
			require.True(t, ok, "input %q", tc.input)
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.input)
		}
	})

	t.Run("clock forms sign the whole magnitude", func(t *testing.T) {
		cases := []struct {
			input string
			want  float64
		}{
			{"0:00", 0},
			{"00:00", 0},
			{"1:30", 1.5},
			{"-0:30", -0.5},
			{"-2:15", -2.25},
			{"+4:45", 4.75},
			{"10 : 30", 10.5},
		}
		for _, tc := range cases {
			got, ok := parsing.ParseSLAHours(tc.input)
			require.True(t, ok, "input %q", tc.input)
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.input)
		}
	})

	t.Run("no value", func(t *testing.T) {
		for _, input := range []string{"", "   ", "abc", "1:2:3", "--1", "1.2.3", "1:"} {
			_, ok := parsing.ParseSLAHours(input)
			assert.False(t, ok, "input %q", input)
		}
	})
}

func TestParseSatisfaction(t *testing.T) {
	got, ok := parsing.ParseSatisfaction("4.5")
	require.True(t, ok)
	assert.InDelta(t, 4.5, got, 1e-9)

	_, ok = parsing.ParseSatisfaction("")
	assert.False(t, ok)

	_, ok = parsing.ParseSatisfaction("five")
	assert.False(t, ok)
}
