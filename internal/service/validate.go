package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/celerix-dev/celerix-roster/pkg/schema"
	"github.com/go-playground/validator/v10"
)

// Validator decides whether a candidate user may be appended to existing.
type Validator interface {
	Validate(candidate schema.User, existing []schema.User) error
}

// ValidationMode selects a Validator from configuration.
type ValidationMode string

const (
	ValidationNone   ValidationMode = "none"
	ValidationStrict ValidationMode = "strict"
)

// NewValidator returns the Validator for mode.
func NewValidator(mode string) (Validator, error) {
	switch ValidationMode(mode) {
	case ValidationNone, "":
		return NopValidator{}, nil
	case ValidationStrict:
		return NewStrictValidator(), nil
	default:
		return nil, fmt.Errorf("unknown validation mode %q", mode)
	}
}

// NopValidator accepts every candidate.
type NopValidator struct{}

func (NopValidator) Validate(schema.User, []schema.User) error { return nil }

// StrictValidator checks struct tags on schema.User and rejects duplicate ids.
type StrictValidator struct {
	validate *validator.Validate
}

func NewStrictValidator() *StrictValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &StrictValidator{validate: v}
}

func (s *StrictValidator) Validate(candidate schema.User, existing []schema.User) error {
	if err := s.validate.Struct(candidate); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{Field: fe.Field(), Message: "failed on the '" + fe.Tag() + "' rule"}
		}
		return &ValidationError{Message: err.Error()}
	}

	// id 0 is assigned by the store and cannot collide
	if candidate.ID == 0 {
		return nil
	}
	for _, u := range existing {
		if u.ID == candidate.ID {
			return &ValidationError{Field: "id", Message: fmt.Sprintf("%d already exists", candidate.ID)}
		}
	}
	return nil
}
