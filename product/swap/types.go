package swap

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/product/common"
)

// SwapLegType is a high level categorization of a swap leg.
//
// The set is closed: adding a variant means handling it in every type switch over SwapLeg.
type SwapLegType string

const (
	// LegFixed has a fixed rate in every period.
	LegFixed SwapLegType = "FIXED"
	// LegIbor floats on an IBOR index; stubs or the first period may be fixed.
	LegIbor SwapLegType = "IBOR"
	// LegOvernight floats on an overnight index.
	LegOvernight SwapLegType = "OVERNIGHT"
	// LegInflation floats on a price index.
	LegInflation SwapLegType = "INFLATION"
	// LegOther is any leg not based on a fixed, IBOR, overnight or inflation rate.
	LegOther SwapLegType = "OTHER"
)

// ParseSwapLegType accepts the type names in any case.
func ParseSwapLegType(s string) (SwapLegType, error) {
	t := SwapLegType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case LegFixed, LegIbor, LegOvernight, LegInflation, LegOther:
		return t, nil
	default:
		return "", fmt.Errorf("%w: swap leg type %q", common.ErrInvalidValue, s)
	}
}

// AccrualMethod controls how overnight fixings combine within a period.
type AccrualMethod string

const (
	Compounded AccrualMethod = "COMPOUNDED"
	Averaged   AccrualMethod = "AVERAGED"
)

// ParseAccrualMethod accepts "Compounded" and "Averaged" in any case.
func ParseAccrualMethod(s string) (AccrualMethod, error) {
	m := AccrualMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case Compounded, Averaged:
		return m, nil
	default:
		return "", fmt.Errorf("%w: accrual method %q", common.ErrInvalidValue, s)
	}
}

// ValueStep changes a schedule's value from Date onwards.
type ValueStep struct {
	Date  civil.Date
	Value decimal.Decimal
}

// ValueSchedule is an initial value with optional dated steps, used for notionals, rates and spreads.
type ValueSchedule struct {
	Initial decimal.Decimal
	Steps   []ValueStep
}

// Constant is a schedule without steps.
func Constant(v decimal.Decimal) ValueSchedule {
	return ValueSchedule{Initial: v}
}

// IsVariable reports whether the schedule has steps.
func (s ValueSchedule) IsVariable() bool { return len(s.Steps) > 0 }

// ValueAt returns the value in force on d.
func (s ValueSchedule) ValueAt(d civil.Date) decimal.Decimal {
	v := s.Initial
	for _, st := range s.Steps {
		if st.Date.After(d) {
			break
		}
		v = st.Value
	}
	return v
}

// WithStep returns a copy of the schedule with a step inserted in date order.
// A step on an existing date replaces it.
func (s ValueSchedule) WithStep(date civil.Date, value decimal.Decimal) ValueSchedule {
	steps := make([]ValueStep, 0, len(s.Steps)+1)
	inserted := false
	for _, st := range s.Steps {
		switch {
		case !inserted && st.Date == date:
			steps = append(steps, ValueStep{Date: date, Value: value})
			inserted = true
			continue
		case !inserted && st.Date.After(date):
			steps = append(steps, ValueStep{Date: date, Value: value})
			inserted = true
		}
		steps = append(steps, st)
	}
	if !inserted {
		steps = append(steps, ValueStep{Date: date, Value: value})
	}
	return ValueSchedule{Initial: s.Initial, Steps: steps}
}

func (s ValueSchedule) clone() ValueSchedule {
	return ValueSchedule{Initial: s.Initial, Steps: slices.Clone(s.Steps)}
}

func (s ValueSchedule) check(name string, start, end civil.Date, allowNegative bool) error {
	if !allowNegative && s.Initial.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", common.ErrInvariant, name, s.Initial)
	}
	prev := civil.Date{}
	for i, st := range s.Steps {
		if st.Date.Before(start) || !st.Date.Before(end) {
			return fmt.Errorf("%w: %s step %s outside accrual range %s to %s", common.ErrInvariant, name, st.Date, start, end)
		}
		if i > 0 && !st.Date.After(prev) {
			return fmt.Errorf("%w: %s steps must be in strictly increasing date order", common.ErrInvariant, name)
		}
		if !allowNegative && st.Value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative, got %s on %s", common.ErrInvariant, name, st.Value, st.Date)
		}
		prev = st.Date
	}
	return nil
}
