package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the whole
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS proposals (
		id             TEXT PRIMARY KEY,
		client_name    TEXT NOT NULL DEFAULT '',
		project_name   TEXT NOT NULL DEFAULT '',
		client_company TEXT NOT NULL DEFAULT '',
		client_contact TEXT NOT NULL DEFAULT '',
		search_text    TEXT NOT NULL DEFAULT '',
		total_value    REAL NOT NULL DEFAULT 0,
		version        INTEGER NOT NULL CHECK(version >= 1),
		snapshot_json  TEXT NOT NULL,
		client_json    TEXT NOT NULL,
		document       BLOB,
		document_size  INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_proposals_client_name ON proposals(client_name)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_project_name ON proposals(project_name)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_created_at ON proposals(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_updated_at ON proposals(updated_at)`,

	`CREATE TABLE IF NOT EXISTS proposal_versions (
		proposal_id   TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		version       INTEGER NOT NULL CHECK(version >= 1),
		created_at    TEXT NOT NULL,
		changes_json  TEXT NOT NULL DEFAULT '[]',
		snapshot_json TEXT NOT NULL,
		client_json   TEXT NOT NULL,
		document      BLOB,
		document_size INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (proposal_id, version)
	)`,

	// Service line the proposal was priced with.
	`ALTER TABLE proposals ADD COLUMN kind TEXT NOT NULL DEFAULT 'generic'
		CHECK(kind IN ('pabx_sip','vm','service_desk','generic'))`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_kind ON proposals(kind)`,
}
