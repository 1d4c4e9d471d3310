package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ytget/youtomp3/internal/model"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newRecord(id string, status model.RunStatus, startedAt time.Time) *model.RunRecord {
	return &model.RunRecord{
		ID:         id,
		URL:        "https://www.youtube.com/watch?v=" + id,
		Format:     "mp3",
		Quality:    "192",
		Status:     status,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(3 * time.Second),
	}
}

func findRun(t *testing.T, store *Store, id string) *model.RunRecord {
	t.Helper()
	all, err := store.Recent(0)
	require.NoError(t, err)
	for _, rec := range all {
		if rec.ID == id {
			return rec
		}
	}
	t.Fatalf("run %s not found", id)
	return nil
}

func TestStore_RecordAndRead(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	rec := newRecord("run-1", model.RunStatusCompleted, now)
	rec.Title = "Song"
	rec.Filename = "Song.mp3"
	require.NoError(t, store.Record(rec))

	found := findRun(t, store, "run-1")
	assert.Equal(t, "Song", found.Title)
	assert.Equal(t, "Song.mp3", found.Filename)
	assert.Equal(t, model.RunStatusCompleted, found.Status)
	assert.Equal(t, 3*time.Second, found.Elapsed())
}

func TestStore_RecordUpdatesExisting(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	rec := newRecord("run-1", model.RunStatusStopped, now)
	require.NoError(t, store.Record(rec))

	rec.Status = model.RunStatusFailed
	rec.Error = "network down"
	require.NoError(t, store.Record(rec))

	found := findRun(t, store, "run-1")
	assert.Equal(t, model.RunStatusFailed, found.Status)
	assert.Equal(t, "network down", found.Error)

	all, err := store.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_RecordRequiresID(t *testing.T) {
	store := setupTestStore(t)
	assert.Error(t, store.Record(&model.RunRecord{URL: "x"}))
	assert.Error(t, store.Record(nil))
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	store := setupTestStore(t)
	base := time.Now()

	require.NoError(t, store.Record(newRecord("old", model.RunStatusCompleted, base.Add(-2*time.Hour))))
	require.NoError(t, store.Record(newRecord("new", model.RunStatusFailed, base)))
	require.NoError(t, store.Record(newRecord("mid", model.RunStatusRejected, base.Add(-time.Hour))))

	recent, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "new", recent[0].ID)
	assert.Equal(t, "mid", recent[1].ID)
}

func TestStore_CountByStatusAndClear(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Record(newRecord("a", model.RunStatusCompleted, now)))
	require.NoError(t, store.Record(newRecord("b", model.RunStatusCompleted, now)))
	require.NoError(t, store.Record(newRecord("c", model.RunStatusFailed, now)))

	count, err := store.CountByStatus(model.RunStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, store.Clear())
	recent, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestStore_CountEveryStatus(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Record(newRecord("a", model.RunStatusStopped, now)))
	require.NoError(t, store.Record(newRecord("b", model.RunStatusRejected, now)))

	for _, status := range model.RunStatuses {
		count, err := store.CountByStatus(status)
		require.NoError(t, err)
		switch status {
		case model.RunStatusStopped, model.RunStatusRejected:
			assert.Equal(t, int64(1), count, status.String())
		default:
			assert.Zero(t, count, status.String())
		}
	}
}

func TestOpen_ClosesDatabaseWhenMigrationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// a view with the table's name makes table creation fail
	require.NoError(t, db.Exec("CREATE VIEW runs AS SELECT 1 AS id").Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	_, err = newStore(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to migrate database")
	assert.Error(t, sqlDB.Ping())

	_, err = Open(path)
	assert.Error(t, err)
}
