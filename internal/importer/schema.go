package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProposalFile is the on-disk form of a proposal handed over by the pricing
// and form tools. YAML and JSON are both accepted.
type ProposalFile struct {
	ID string `yaml:"id,omitempty"`
	// ExpectedVersion, when set, is the version the editor started from.
	ExpectedVersion int          `yaml:"expected_version,omitempty"`
	Kind            string       `yaml:"kind,omitempty"`
	Client          ClientFile   `yaml:"client"`
	Snapshot        SnapshotFile `yaml:"snapshot"`
	// Document is the rendered document's path, relative to this file.
	Document string `yaml:"document,omitempty"`

	dir string
}

// ClientFile mirrors domain.ClientInfo.
type ClientFile struct {
	CompanyName  string `yaml:"company_name,omitempty"`
	ContactName  string `yaml:"contact_name,omitempty"`
	Email        string `yaml:"email,omitempty"`
	Phone        string `yaml:"phone,omitempty"`
	ProjectName  string `yaml:"project_name,omitempty"`
	ManagerName  string `yaml:"manager_name,omitempty"`
	ManagerEmail string `yaml:"manager_email,omitempty"`
	ManagerPhone string `yaml:"manager_phone,omitempty"`
}

// SnapshotFile mirrors domain.ProposalSnapshot. GeneratedAt is RFC3339.
type SnapshotFile struct {
	EquipmentLines       []LineFile `yaml:"equipment_lines"`
	TotalMonthly         float64    `yaml:"total_monthly"`
	TotalAnnual          *float64   `yaml:"total_annual,omitempty"`
	ContractPeriodMonths int        `yaml:"contract_period_months"`
	GeneratedAt          string     `yaml:"generated_at,omitempty"`
}

// LineFile mirrors domain.EquipmentLine.
type LineFile struct {
	ID             string         `yaml:"id"`
	Model          string         `yaml:"model,omitempty"`
	Brand          string         `yaml:"brand,omitempty"`
	Category       string         `yaml:"category,omitempty"`
	MonthlyVolume  float64        `yaml:"monthly_volume"`
	MonthlyCost    float64        `yaml:"monthly_cost"`
	Specifications map[string]any `yaml:"specifications,omitempty"`
}

// LoadProposalFile reads and parses a proposal file. Unknown keys are
// rejected so typos do not silently drop data.
func LoadProposalFile(path string) (*ProposalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseProposalFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// ParseProposalFile decodes a YAML or JSON document.
func ParseProposalFile(data []byte) (*ProposalFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f ProposalFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing proposal file: empty document")
		}
		return nil, fmt.Errorf("parsing proposal file: %w", err)
	}
	return &f, nil
}

// DocumentPath resolves Document against the directory the file was loaded
// from. It is empty when no document is named.
func (f *ProposalFile) DocumentPath() string {
	if f.Document == "" {
		return ""
	}
	if filepath.IsAbs(f.Document) || f.dir == "" {
		return f.Document
	}
	return filepath.Join(f.dir, f.Document)
}

// Marshal renders f as YAML.
func (f *ProposalFile) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encoding proposal file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding proposal file: %w", err)
	}
	return buf.Bytes(), nil
}
