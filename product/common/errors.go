package common

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvariant is returned when a domain object would be constructed in an invalid state.
	ErrInvariant = errors.New("invariant violation")

	// ErrInvalidValue is returned when textual input cannot be converted to a domain value.
	ErrInvalidValue = errors.New("invalid value")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` tags on s, reporting failures as ErrInvariant.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return invariantError(err)
	}
	return nil
}

// ValidateVar checks a single value against a validator tag expression.
func ValidateVar(v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return invariantError(err)
	}
	return nil
}

func invariantError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Field() == "" {
			return fmt.Errorf("%w: value %v fails %q", ErrInvariant, fe.Value(), fe.Tag())
		}
		return fmt.Errorf("%w: %s %v fails %q", ErrInvariant, fe.Namespace(), fe.Value(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvariant, err)
}
