package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"proposals", "proposal_versions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesSecondaryIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_proposals_client_name",
		"idx_proposals_project_name",
		"idx_proposals_created_at",
		"idx_proposals_updated_at",
		"idx_proposals_kind",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_VersionCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO proposals (id, version, snapshot_json, client_json, created_at, updated_at)
		VALUES ('p0', 0, '{}', '{}', 'x', 'x')`)
	assert.Error(t, err, "version 0 should be rejected")

	_, err = db.Exec(`INSERT INTO proposals (id, version, snapshot_json, client_json, created_at, updated_at)
		VALUES ('p1', 1, '{}', '{}', 'x', 'x')`)
	assert.NoError(t, err)
}

func TestMigrate_KindCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO proposals (id, kind, version, snapshot_json, client_json, created_at, updated_at)
		VALUES ('p1', 'fax', 1, '{}', '{}', 'x', 'x')`)
	assert.Error(t, err)
}

func TestMigrate_VersionsCascadeOnDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO proposals (id, version, snapshot_json, client_json, created_at, updated_at)
		VALUES ('p1', 2, '{}', '{}', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO proposal_versions (proposal_id, version, created_at, snapshot_json, client_json)
		VALUES ('p1', 1, 'x', '{}', '{}')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM proposals WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM proposal_versions`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenDB_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "proposals.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
