package testutil

import (
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
)

// FixedTime is the reference instant fixtures are stamped with.
var FixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// ProposalOption customises a fixture proposal.
type ProposalOption func(*domain.SavedProposal)

func WithID(id string) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.ID = id
	}
}

func WithKind(k domain.ProposalKind) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Kind = k
	}
}

func WithCompany(company string) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Client.CompanyName = company
	}
}

func WithContact(contact string) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Client.ContactName = contact
	}
}

func WithProject(project string) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Client.ProjectName = project
	}
}

// WithLine appends a line item and adds its cost to the snapshot totals.
func WithLine(line domain.EquipmentLine) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Snapshot.EquipmentLines = append(p.Snapshot.EquipmentLines, line)
		p.Snapshot.TotalMonthly += line.MonthlyCost
		p.Snapshot.TotalAnnual = p.Snapshot.TotalMonthly * 12
	}
}

// WithoutLines empties the snapshot.
func WithoutLines() ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Snapshot.EquipmentLines = []domain.EquipmentLine{}
		p.Snapshot.TotalMonthly = 0
		p.Snapshot.TotalAnnual = 0
	}
}

func WithContractPeriod(months int) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Snapshot.ContractPeriodMonths = months
	}
}

func WithDocument(doc []byte) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.Document = doc
	}
}

func WithTimestamps(created, updated time.Time) ProposalOption {
	return func(p *domain.SavedProposal) {
		p.CreatedAt = created
		p.UpdatedAt = updated
	}
}

// NewTestLine returns a line item with the given id, volume and cost.
func NewTestLine(id string, volume, cost float64) domain.EquipmentLine {
	return domain.EquipmentLine{
		ID:            id,
		Model:         "M-" + id,
		Brand:         "Acme",
		Category:      "pabx",
		MonthlyVolume: volume,
		MonthlyCost:   cost,
		Specifications: domain.Specifications{
			"channels": float64(30),
			"sla":      "gold",
		},
	}
}

// NewTestProposal builds caller input for a save: one line item, a contact
// and a small document. The id is empty so the first save creates it.
func NewTestProposal(company string, opts ...ProposalOption) *domain.SavedProposal {
	p := &domain.SavedProposal{
		Kind: domain.KindPABXSIP,
		Client: domain.ClientInfo{
			CompanyName:  company,
			ContactName:  "Maria Souza",
			Email:        "maria@example.com",
			Phone:        "+55 11 5555-0100",
			ProjectName:  "Telephony refresh",
			ManagerName:  "Ana Lima",
			ManagerEmail: "ana@example.com",
		},
		Snapshot: domain.ProposalSnapshot{
			ContractPeriodMonths: 36,
			GeneratedAt:          FixedTime,
		},
		Document: []byte("%PDF-1.4 " + company),
	}
	WithLine(NewTestLine("eq-1", 10, 500))(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}
