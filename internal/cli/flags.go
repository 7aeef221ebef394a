package cli

import (
	"fmt"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/alexanderramin/proposals/internal/query"
	"github.com/spf13/pflag"
)

// Enum flags reject bad values while flags are parsed, before any command
// touches the store.
var (
	_ pflag.Value = (*rangeFlag)(nil)
	_ pflag.Value = (*statusFlag)(nil)
	_ pflag.Value = (*kindFlag)(nil)
)

type rangeFlag struct{ value query.Range }

func (f *rangeFlag) String() string { return string(f.value) }
func (f *rangeFlag) Type() string   { return "range" }

func (f *rangeFlag) Set(s string) error {
	r, err := query.ParseRange(s)
	if err != nil {
		return err
	}
	f.value = r
	return nil
}

type statusFlag struct{ value query.Status }

func (f *statusFlag) String() string { return string(f.value) }
func (f *statusFlag) Type() string   { return "status" }

func (f *statusFlag) Set(s string) error {
	st, err := query.ParseStatus(s)
	if err != nil {
		return err
	}
	f.value = st
	return nil
}

type kindFlag struct{ value domain.ProposalKind }

func (f *kindFlag) String() string { return string(f.value) }
func (f *kindFlag) Type() string   { return "kind" }

func (f *kindFlag) Set(s string) error {
	if !domain.ValidProposalKinds[s] {
		return fmt.Errorf("unknown kind %q (want pabx_sip, vm, service_desk or generic)", s)
	}
	f.value = domain.ProposalKind(s)
	return nil
}
