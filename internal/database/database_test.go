package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/notehammer/internal/entities"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestDatabase_CreateAndFinishRun(t *testing.T) {
	db := newTestDatabase(t)

	run, err := db.CreateRun("To Export", "emulator-5554")
	require.NoError(t, err)
	assert.NotZero(t, run.ID)
	assert.Equal(t, entities.RunStatusRunning, run.Status)

	run.Status = entities.RunStatusCompleted
	run.Succeeded = 2
	run.Failed = 1
	require.NoError(t, db.FinishRun(run))

	loaded, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RunStatusCompleted, loaded.Status)
	assert.Equal(t, 2, loaded.Succeeded)
	assert.Equal(t, 1, loaded.Failed)
	assert.False(t, loaded.FinishedAt.IsZero())
}

func TestDatabase_AddOutcome(t *testing.T) {
	db := newTestDatabase(t)

	run, err := db.CreateRun("To Export", "")
	require.NoError(t, err)

	require.NoError(t, db.AddOutcome(run.ID, &entities.BookOutcome{
		Position: 0,
		Title:    "Alpha",
		Outcome:  entities.OutcomeSuccess,
		NotePath: "/notes/Alpha.md",
	}))
	require.NoError(t, db.AddOutcome(run.ID, &entities.BookOutcome{
		Position: 1,
		Title:    "Beta",
		Outcome:  entities.OutcomeFailed,
		Stage:    entities.StageSync,
		ErrorMsg: "timed out waiting for export artifact",
	}))

	loaded, err := db.GetRun(run.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Outcomes, 2)
	assert.Equal(t, "Alpha", loaded.Outcomes[0].Title)
	assert.Equal(t, entities.OutcomeFailed, loaded.Outcomes[1].Outcome)
	assert.Equal(t, entities.StageSync, loaded.Outcomes[1].Stage)
}

func TestDatabase_RecentRuns(t *testing.T) {
	db := newTestDatabase(t)

	for i := 0; i < 3; i++ {
		run, err := db.CreateRun("To Export", "")
		require.NoError(t, err)
		run.Status = entities.RunStatusCompleted
		require.NoError(t, db.FinishRun(run))
	}

	runs, err := db.RecentRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	all, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Newest first
	assert.GreaterOrEqual(t, all[0].ID, all[1].ID)
}

func TestDatabase_GetRun_NotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.GetRun(12345)
	assert.Error(t, err)
}
