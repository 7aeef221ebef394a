package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/proposals/internal/db"
	"github.com/alexanderramin/proposals/internal/domain"
)

// SQLiteProposalRepo implements ProposalRepo on the proposals table.
type SQLiteProposalRepo struct {
	db db.DBTX
}

// NewSQLiteProposalRepo creates a repo over a *sql.DB or a transaction.
func NewSQLiteProposalRepo(dbtx db.DBTX) *SQLiteProposalRepo {
	return &SQLiteProposalRepo{db: dbtx}
}

const proposalFullColumns = `id, kind, client_name, project_name, total_value, version,
	snapshot_json, client_json, document, document_size, created_at, updated_at`

const proposalSummaryColumns = `id, kind, client_name, project_name, total_value, version,
	snapshot_json, client_json, NULL, document_size, created_at, updated_at`

const newestFirst = ` ORDER BY created_at DESC, rowid DESC`

func (r *SQLiteProposalRepo) GetByID(ctx context.Context, id string) (*domain.SavedProposal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+proposalFullColumns+` FROM proposals WHERE id = ?`, id)
	p, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProposalRepo) Create(ctx context.Context, p *domain.SavedProposal) error {
	snapshotJSON, clientJSON, err := encodeContent(p.Snapshot, p.Client)
	if err != nil {
		return err
	}
	query := `INSERT INTO proposals (id, kind, client_name, project_name, client_company, client_contact,
		search_text, total_value, version, snapshot_json, client_json, document, document_size,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		string(p.Kind),
		p.ClientName,
		p.ProjectName,
		p.Client.CompanyName,
		p.Client.ContactName,
		p.SearchText(),
		p.TotalValue,
		p.Version,
		snapshotJSON,
		clientJSON,
		p.Document,
		int64(len(p.Document)),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting proposal: %w", err)
	}
	return nil
}

func (r *SQLiteProposalRepo) Update(ctx context.Context, p *domain.SavedProposal, expectedVersion int) error {
	snapshotJSON, clientJSON, err := encodeContent(p.Snapshot, p.Client)
	if err != nil {
		return err
	}
	// created_at is never rewritten.
	query := `UPDATE proposals SET kind = ?, client_name = ?, project_name = ?, client_company = ?,
		client_contact = ?, search_text = ?, total_value = ?, version = ?, snapshot_json = ?,
		client_json = ?, document = ?, document_size = ?, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(p.Kind),
		p.ClientName,
		p.ProjectName,
		p.Client.CompanyName,
		p.Client.ContactName,
		p.SearchText(),
		p.TotalValue,
		p.Version,
		snapshotJSON,
		clientJSON,
		p.Document,
		int64(len(p.Document)),
		formatTime(p.UpdatedAt),
		p.ID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("updating proposal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating proposal: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("proposal %s at version %d: %w", p.ID, expectedVersion, ErrStaleVersion)
	}
	return nil
}

func (r *SQLiteProposalRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting proposal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting proposal: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteProposalRepo) List(ctx context.Context) ([]*domain.SavedProposal, error) {
	return r.querySummaries(ctx, "listing proposals",
		`SELECT `+proposalSummaryColumns+` FROM proposals`+newestFirst)
}

// Search matches query as a case-insensitive substring of the client name,
// project name, company or contact. The caller routes blank queries to List.
func (r *SQLiteProposalRepo) Search(ctx context.Context, query string) ([]*domain.SavedProposal, error) {
	needle := strings.ToLower(query)
	return r.querySummaries(ctx, "searching proposals",
		`SELECT `+proposalSummaryColumns+` FROM proposals WHERE instr(search_text, ?) > 0`+newestFirst,
		needle)
}

func (r *SQLiteProposalRepo) GetDocument(ctx context.Context, id string) ([]byte, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM proposals WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("proposal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return doc, nil
}

func (r *SQLiteProposalRepo) Usage(ctx context.Context) (domain.StorageUsage, error) {
	var u domain.StorageUsage
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(document_size), 0) FROM proposals`,
	).Scan(&u.Proposals, &u.CurrentBytes)
	if err != nil {
		return u, fmt.Errorf("measuring proposals: %w", err)
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(document_size), 0) FROM proposal_versions`,
	).Scan(&u.Versions, &u.HistoryBytes)
	if err != nil {
		return u, fmt.Errorf("measuring versions: %w", err)
	}
	return u, nil
}

func (r *SQLiteProposalRepo) querySummaries(ctx context.Context, op, query string, args ...any) ([]*domain.SavedProposal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	proposals := []*domain.SavedProposal{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}
	return proposals, nil
}

func scanProposal(row rowScanner) (*domain.SavedProposal, error) {
	var p domain.SavedProposal
	var kind, snapshotJSON, clientJSON, createdAtStr, updatedAtStr string
	var doc []byte

	err := row.Scan(
		&p.ID, &kind, &p.ClientName, &p.ProjectName, &p.TotalValue, &p.Version,
		&snapshotJSON, &clientJSON, &doc, &p.DocumentSize,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning proposal: %w", err)
	}

	p.Kind = domain.ProposalKind(kind)
	if len(doc) > 0 {
		p.Document = doc
	}
	if err := unmarshalJSON(snapshotJSON, &p.Snapshot, "snapshot_json"); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(clientJSON, &p.Client, "client_json"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return nil, err
	}
	p.VersionHistory = []domain.VersionEntry{}
	return &p, nil
}

func encodeContent(snapshot domain.ProposalSnapshot, client domain.ClientInfo) (string, string, error) {
	snapshotJSON, err := marshalJSON(snapshot, "snapshot_json")
	if err != nil {
		return "", "", err
	}
	clientJSON, err := marshalJSON(client, "client_json")
	if err != nil {
		return "", "", err
	}
	return snapshotJSON, clientJSON, nil
}
