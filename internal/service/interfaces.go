package service

import (
	"context"

	"github.com/alexanderramin/proposals/internal/domain"
)

// ProposalService is the storage façade for saved proposals. Every save and
// delete is one transaction; a failure leaves the stored record, its version
// and its history exactly as they were.
type ProposalService interface {
	// Save stores p and returns its id. A new record is created when p.ID is
	// empty or unknown; otherwise the stored state is archived with the
	// differences the diff engine derives, and the version is bumped. A
	// non-zero p.Version is checked against the stored version.
	Save(ctx context.Context, p *domain.SavedProposal) (string, error)
	// SaveWithChanges is Save with caller-supplied change descriptions.
	SaveWithChanges(ctx context.Context, p *domain.SavedProposal, changes []string) (string, error)
	// Load returns the full record with history and document, or nil when
	// the id is not stored.
	Load(ctx context.Context, id string) (*domain.SavedProposal, error)
	List(ctx context.Context) ([]*domain.SavedProposal, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]*domain.SavedProposal, error)
	GetVersionHistory(ctx context.Context, id string) ([]domain.VersionEntry, error)
	CompareVersions(before, after domain.ProposalSnapshot) []string
	Usage(ctx context.Context) (domain.StorageUsage, error)
	// ExportDocument returns the rendered document of the current state
	// (version 0 or the current version) or of an archived version.
	ExportDocument(ctx context.Context, id string, version int) ([]byte, error)
}
