package domain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the structural shape this module relies on: non-negative
// totals and amounts, a contract period of at least one month, and line items
// with unique, non-empty ids. Business rules belong to the callers.
func Validate(p *SavedProposal) error {
	if p == nil {
		return errors.New("proposal is nil")
	}

	var errs []error
	if err := structValidator().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	seen := make(map[string]bool, len(p.Snapshot.EquipmentLines))
	for i, l := range p.Snapshot.EquipmentLines {
		if l.ID == "" {
			continue
		}
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("snapshot.equipmentLines[%d]: duplicate id %q", i, l.ID))
		}
		seen[l.ID] = true
	}

	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Namespace())
	case "gte":
		return fmt.Errorf("%s must be >= %s (got %v)", fe.Namespace(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (expected one of %s)", fe.Namespace(), fe.Value(), fe.Param())
	default:
		return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
}
