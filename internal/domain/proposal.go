package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecentWindow is how long after creation a proposal counts as recent.
const RecentWindow = 3 * 24 * time.Hour

// SavedProposal is the persisted, versioned proposal aggregate. Exactly one
// exists per ID; superseded states live only in VersionHistory.
type SavedProposal struct {
	ID   string
	Kind ProposalKind `validate:"omitempty,oneof=pabx_sip vm service_desk generic"`

	// Denormalized from Client/Snapshot on every save so listings and searches
	// never decode the full snapshot.
	ClientName  string
	ProjectName string
	TotalValue  float64

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int

	VersionHistory []VersionEntry

	Snapshot ProposalSnapshot
	Client   ClientInfo

	// Document is the rendered proposal, opaque to this module.
	Document     []byte
	DocumentSize int64
}

// VersionEntry is an archived, immutable copy of a superseded state.
type VersionEntry struct {
	Version      int
	CreatedAt    time.Time
	Changes      []string
	Snapshot     ProposalSnapshot
	Client       ClientInfo
	Document     []byte
	DocumentSize int64
}

// StorageUsage summarises how much the store holds.
type StorageUsage struct {
	Proposals    int
	Versions     int
	CurrentBytes int64
	HistoryBytes int64
}

// NewID returns a fresh random (128-bit) proposal identifier.
func NewID() string {
	return uuid.New().String()
}

// NextVersion returns the version that follows the stored one.
func NextVersion(current *SavedProposal) int {
	return current.Version + 1
}

// Denormalize refreshes the summary fields from Client and Snapshot.
func (p *SavedProposal) Denormalize() {
	p.ClientName = strings.TrimSpace(p.Client.CompanyName)
	if p.ClientName == "" {
		p.ClientName = strings.TrimSpace(p.Client.ContactName)
	}
	p.ProjectName = strings.TrimSpace(p.Client.ProjectName)
	p.TotalValue = p.Snapshot.TotalMonthly
	p.DocumentSize = int64(len(p.Document))
	if p.Kind == "" {
		p.Kind = KindGeneric
	}
}

// Archive captures the current state as a history entry. The entry's
// CreatedAt is the moment this state was last saved.
func (p *SavedProposal) Archive(changes []string) VersionEntry {
	if changes == nil {
		changes = []string{}
	}
	return VersionEntry{
		Version:      p.Version,
		CreatedAt:    p.UpdatedAt,
		Changes:      changes,
		Snapshot:     p.Snapshot,
		Client:       p.Client,
		Document:     p.Document,
		DocumentSize: int64(len(p.Document)),
	}
}

// SearchFields returns the fields free-text search looks at.
func (p *SavedProposal) SearchFields() []string {
	return []string{p.ClientName, p.ProjectName, p.Client.CompanyName, p.Client.ContactName}
}

// SearchText is the lower-cased, separator-joined form of SearchFields stored
// alongside the record.
func (p *SavedProposal) SearchText() string {
	return strings.ToLower(strings.Join(p.SearchFields(), "\x1f"))
}

// MatchesText reports whether q occurs, ignoring case, in any search field.
// A blank query matches everything.
func (p *SavedProposal) MatchesText(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range p.SearchFields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// IsRecent reports whether the proposal was created within RecentWindow of now.
func (p *SavedProposal) IsRecent(now time.Time) bool {
	return now.Sub(p.CreatedAt) <= RecentWindow
}

// WasUpdated reports whether the proposal has been saved again since creation.
func (p *SavedProposal) WasUpdated() bool {
	return p.Version > 1 || p.UpdatedAt.After(p.CreatedAt)
}

// DisplayID returns the first 8 characters of the id.
func (p *SavedProposal) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
