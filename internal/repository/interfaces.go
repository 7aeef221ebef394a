package repository

import (
	"context"

	"github.com/alexanderramin/proposals/internal/domain"
)

// ProposalRepo persists the current state of each proposal. Listing and
// searching return summaries: VersionHistory is never populated and Document
// is left nil with DocumentSize filled in.
type ProposalRepo interface {
	GetByID(ctx context.Context, id string) (*domain.SavedProposal, error)
	Create(ctx context.Context, p *domain.SavedProposal) error
	// Update replaces the stored row only if its version still equals
	// expectedVersion, otherwise it returns ErrStaleVersion.
	Update(ctx context.Context, p *domain.SavedProposal, expectedVersion int) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.SavedProposal, error)
	Search(ctx context.Context, query string) ([]*domain.SavedProposal, error)
	GetDocument(ctx context.Context, id string) ([]byte, error)
	Usage(ctx context.Context) (domain.StorageUsage, error)
}

// VersionRepo persists archived states. Entries are append-only; only their
// document payload may be cleared by retention.
type VersionRepo interface {
	Append(ctx context.Context, proposalID string, e domain.VersionEntry) error
	ListByProposal(ctx context.Context, proposalID string) ([]domain.VersionEntry, error)
	GetDocument(ctx context.Context, proposalID string, version int) ([]byte, error)
	PruneDocuments(ctx context.Context, proposalID string, keep int) (int64, error)
	DeleteByProposal(ctx context.Context, proposalID string) (int64, error)
}
