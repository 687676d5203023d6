package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumfamily/archetype/internal/db"
	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/survey"
	"github.com/quantumfamily/archetype/internal/testutil"
)

const exportCSV = "\ufeffUser ID,Freedom,Security,Responsibility,K Band,Submitted At\n" +
	"alice,1,1,1,0,2025-03-01T10:00:00Z\n" +
	"bob,2,2,2,2,2025-03-01 11:00:00\n" +
	"\n" +
	"alice,3.0,2,4,3,2025-03-02T09:30:00Z\n" +
	"carol,3,2,4,9,\n" +
	"dave,5,5,5,5,yesterday\n"

func setupImportDB(t *testing.T) *db.DB {
	t.Helper()
	testutil.SilenceLogs(t)
	database, err := db.NewDB(filepath.Join(t.TempDir(), "import.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestRunImport(t *testing.T) {
	database := setupImportDB(t)

	stats, err := RunImport(t.Context(), database, strings.NewReader(exportCSV), false)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Imported)
	require.Len(t, stats.Skips, 2)
	assert.Equal(t, 6, stats.Skips[0].Line)
	assert.True(t, errors.Is(stats.Skips[0].Err, roles.ErrBandOutOfRange))
	assert.Equal(t, 7, stats.Skips[1].Line)
	assert.Contains(t, stats.Skips[1].Err.Error(), "submitted_at")

	n, err := database.CountResponses(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	resp, err := survey.Lookup(t.Context(), database, "alice")
	require.NoError(t, err)
	assert.Equal(t, roles.Band(3), resp.Band)
	assert.Equal(t, roles.Scores{Freedom: 3, Security: 2, Responsibility: 4}, resp.Scores)
}

func TestRunImport_DryRun(t *testing.T) {
	database := setupImportDB(t)

	stats, err := RunImport(t.Context(), database, strings.NewReader(exportCSV), true)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Imported)

	n, err := database.CountResponses(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunImport_MissingColumn(t *testing.T) {
	database := setupImportDB(t)

	stats, err := RunImport(t.Context(), database, strings.NewReader("user_id,freedom\nalice,3\n"), false)
	require.NoError(t, err)
	require.Len(t, stats.Skips, 1)
	assert.ErrorIs(t, stats.Skips[0].Err, survey.ErrMissingColumn)
}

func TestRunImport_Empty(t *testing.T) {
	database := setupImportDB(t)

	_, err := RunImport(t.Context(), database, strings.NewReader(""), false)
	assert.Error(t, err)
}
