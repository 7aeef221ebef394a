package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/proposals/internal/db"
	"github.com/alexanderramin/proposals/internal/domain"
)

// SQLiteVersionRepo implements VersionRepo on the proposal_versions table.
type SQLiteVersionRepo struct {
	db db.DBTX
}

// NewSQLiteVersionRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteVersionRepo(dbtx db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: dbtx}
}

func (r *SQLiteVersionRepo) Append(ctx context.Context, proposalID string, e domain.VersionEntry) error {
	changes := e.Changes
	if changes == nil {
		changes = []string{}
	}
	changesJSON, err := marshalJSON(changes, "changes_json")
	if err != nil {
		return err
	}
	snapshotJSON, clientJSON, err := encodeContent(e.Snapshot, e.Client)
	if err != nil {
		return err
	}
	query := `INSERT INTO proposal_versions (proposal_id, version, created_at, changes_json,
		snapshot_json, client_json, document, document_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		proposalID,
		e.Version,
		formatTime(e.CreatedAt),
		changesJSON,
		snapshotJSON,
		clientJSON,
		e.Document,
		int64(len(e.Document)),
	)
	if err != nil {
		return fmt.Errorf("appending version %d: %w", e.Version, err)
	}
	return nil
}

// ListByProposal returns the archived entries oldest first.
func (r *SQLiteVersionRepo) ListByProposal(ctx context.Context, proposalID string) ([]domain.VersionEntry, error) {
	query := `SELECT version, created_at, changes_json, snapshot_json, client_json, document, document_size
		FROM proposal_versions WHERE proposal_id = ? ORDER BY version`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	entries := []domain.VersionEntry{}
	for rows.Next() {
		e, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return entries, nil
}

func (r *SQLiteVersionRepo) GetDocument(ctx context.Context, proposalID string, version int) ([]byte, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM proposal_versions WHERE proposal_id = ? AND version = ?`,
		proposalID, version,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("proposal %s version %d: %w", proposalID, version, ErrNotFound)
		}
		return nil, fmt.Errorf("reading version document: %w", err)
	}
	return doc, nil
}

// PruneDocuments clears the payload of every entry except the newest keep.
// Sizes are zeroed with the payload; version, date and changes stay.
func (r *SQLiteVersionRepo) PruneDocuments(ctx context.Context, proposalID string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `UPDATE proposal_versions SET document = NULL, document_size = 0
		WHERE proposal_id = ? AND document IS NOT NULL AND version NOT IN (
			SELECT version FROM proposal_versions WHERE proposal_id = ?
			ORDER BY version DESC LIMIT ?
		)`
	res, err := r.db.ExecContext(ctx, query, proposalID, proposalID, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning version documents: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning version documents: %w", err)
	}
	return n, nil
}

func (r *SQLiteVersionRepo) DeleteByProposal(ctx context.Context, proposalID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposal_versions WHERE proposal_id = ?`, proposalID)
	if err != nil {
		return 0, fmt.Errorf("deleting versions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting versions: %w", err)
	}
	return n, nil
}

func scanVersion(row rowScanner) (domain.VersionEntry, error) {
	var e domain.VersionEntry
	var createdAtStr, changesJSON, snapshotJSON, clientJSON string
	var doc []byte

	err := row.Scan(&e.Version, &createdAtStr, &changesJSON, &snapshotJSON, &clientJSON, &doc, &e.DocumentSize)
	if err != nil {
		return e, fmt.Errorf("scanning version: %w", err)
	}
	if len(doc) > 0 {
		e.Document = doc
	}
	if e.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return e, err
	}
	if err := unmarshalJSON(changesJSON, &e.Changes, "changes_json"); err != nil {
		return e, err
	}
	if e.Changes == nil {
		e.Changes = []string{}
	}
	if err := unmarshalJSON(snapshotJSON, &e.Snapshot, "snapshot_json"); err != nil {
		return e, err
	}
	if err := unmarshalJSON(clientJSON, &e.Client, "client_json"); err != nil {
		return e, err
	}
	return e, nil
}
