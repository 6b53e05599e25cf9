package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesSlotsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='slots'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "slots", name)
}

func TestMigrate_GenerationDefaultsToOne(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO slots (key, value, updated_at) VALUES ('k', 'v', '2025-04-14T00:00:00Z')`)
	require.NoError(t, err)

	var gen int
	require.NoError(t, db.QueryRow(`SELECT generation FROM slots WHERE key = 'k'`).Scan(&gen))
	assert.Equal(t, 1, gen)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/mapty.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Ping())
}
