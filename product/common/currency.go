package common

import (
	"fmt"
	"strings"
)

// Currency is an ISO-4217 three letter currency code.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
)

// ParseCurrency uppercases s and checks it against the ISO-4217 list.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if err := ValidateVar(code, "required,iso4217"); err != nil {
		return "", fmt.Errorf("%w: currency %q", ErrInvalidValue, s)
	}
	return Currency(code), nil
}

func (c Currency) String() string { return string(c) }

// StandardID is a scheme-qualified identifier, such as a trade or legal entity id.
type StandardID struct {
	Scheme string
	Value  string
}

// NewStandardID requires both parts to be non-blank.
func NewStandardID(scheme, value string) (StandardID, error) {
	scheme, value = strings.TrimSpace(scheme), strings.TrimSpace(value)
	if scheme == "" || value == "" {
		return StandardID{}, fmt.Errorf("%w: identifier needs scheme and value, got %q~%q", ErrInvalidValue, scheme, value)
	}
	return StandardID{Scheme: scheme, Value: value}, nil
}

func (id StandardID) IsZero() bool { return id.Scheme == "" && id.Value == "" }

func (id StandardID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Scheme + "~" + id.Value
}
