package csvfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/adapters/secondary/csvfile"
)

func TestReadRows(t *testing.T) {
	t.Run("headers are lower-cased and trimmed", func(t *testing.T) {
		input := "Creada , Estado\n19/ene/26 12:47 PM,Open\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "19/ene/26 12:47 PM", rows[0]["creada"])
		assert.Equal(t, "Open", rows[0]["estado"])
	})

	t.Run("utf8 BOM is stripped from the first header", func(t *testing.T) {
		input := "\xEF\xBB\xBFCreada,Estado\nx,Open\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		_, ok := rows[0]["creada"]
		assert.True(t, ok)
	})

	t.Run("short records leave trailing fields absent", func(t *testing.T) {
		input := "creada,estado,persona asignada\nx,Open\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		_, ok := rows[0]["persona asignada"]
		assert.False(t, ok)
	})

	t.Run("long records drop the overflow", func(t *testing.T) {
		input := "creada,estado\nx,Open,extra,more\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Len(t, rows[0], 2)
	})

	t.Run("all-blank rows are skipped", func(t *testing.T) {
		input := "creada,estado\nx,Open\n,\n  ,  \ny,Closed\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("quoted fields keep embedded commas", func(t *testing.T) {
		input := "creada,campo personalizado (organizations)\nx,\"Acme, Inc\"\n"

		rows, err := csvfile.ReadRows(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Acme, Inc", rows[0]["campo personalizado (organizations)"])
	})

	t.Run("empty stream yields no rows", func(t *testing.T) {
		rows, err := csvfile.ReadRows(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unparseable csv is an error", func(t *testing.T) {
		input := "creada,estado\n\"unterminated\n"

		_, err := csvfile.ReadRows(strings.NewReader(input))
		assert.Error(t, err)
	})
}
