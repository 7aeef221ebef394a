package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Specifications is the open, type-specific attribute bag of a line item
// (channels, vCPUs, SLA tier, ...). Values are whatever the pricing
// collaborator decoded: strings, numbers, bools, lists or nested maps.
// Nothing in this module depends on a particular key being present.
type Specifications map[string]any

// String returns the value under key rendered as a string.
func (s Specifications) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// Number returns the value under key as a float64 when it is numeric or a
// numeric string.
func (s Specifications) Number(key string) (float64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// EquipmentLine is one priced line of a proposal.
type EquipmentLine struct {
	ID             string         `json:"id" validate:"required"`
	Model          string         `json:"model,omitempty"`
	Brand          string         `json:"brand,omitempty"`
	Category       string         `json:"category,omitempty"`
	MonthlyVolume  float64        `json:"monthlyVolume" validate:"gte=0"`
	MonthlyCost    float64        `json:"monthlyCost" validate:"gte=0"`
	Specifications Specifications `json:"specifications,omitempty"`
}

// Label returns a short human description of the line: its id followed by
// brand/model when known.
func (l EquipmentLine) Label() string {
	desc := strings.TrimSpace(strings.Join(nonEmpty(l.Brand, l.Model), " "))
	if desc == "" {
		return l.ID
	}
	return fmt.Sprintf("%s (%s)", l.ID, desc)
}

// ProposalSnapshot is the substantive content of a proposal at one point in
// time. Totals come from the pricing collaborator and are never recomputed here.
type ProposalSnapshot struct {
	EquipmentLines       []EquipmentLine `json:"equipmentLines" validate:"dive"`
	TotalMonthly         float64         `json:"totalMonthly" validate:"gte=0"`
	TotalAnnual          float64         `json:"totalAnnual" validate:"gte=0"`
	ContractPeriodMonths int             `json:"contractPeriodMonths" validate:"gte=1"`
	GeneratedAt          time.Time       `json:"generatedAt"`
}

// LineByID indexes the snapshot's lines by id.
func (s ProposalSnapshot) LineByID() map[string]EquipmentLine {
	m := make(map[string]EquipmentLine, len(s.EquipmentLines))
	for _, l := range s.EquipmentLines {
		m[l.ID] = l
	}
	return m
}

// ClientInfo carries the client/contact/project/manager fields gathered by the
// proposal form.
type ClientInfo struct {
	CompanyName  string `json:"companyName,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ProjectName  string `json:"projectName,omitempty"`
	ManagerName  string `json:"managerName,omitempty"`
	ManagerEmail string `json:"managerEmail,omitempty"`
	ManagerPhone string `json:"managerPhone,omitempty"`
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
