package swap

import (
	"fmt"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/index"
)

// SwapLeg is one stream of payments within a swap.
//
// The set of implementations is closed to this package: FixedLeg, IborLeg,
// OvernightLeg, InflationLeg and KnownAmountLeg.
type SwapLeg interface {
	// Type categorizes the leg, such as Fixed or Ibor.
	Type() SwapLegType
	// PayReceive reports whether amounts are paid to or received from the counterparty.
	PayReceive() common.PayReceive
	// StartDate is the adjusted first accrual date, often known as the effective date.
	StartDate() civil.Date
	// EndDate is the adjusted last accrual date, often known as the termination date.
	EndDate() civil.Date
	// Currency is the payment currency. A leg pays in exactly one currency.
	Currency() common.Currency

	validate() error
	clone() SwapLeg
}

// LegDetails holds the terms shared by every leg variant.
type LegDetails struct {
	Direction       common.PayReceive `validate:"required,oneof=PAY RECEIVE"`
	AccrualStart    civil.Date
	AccrualEnd      civil.Date
	PaymentCurrency common.Currency  `validate:"required,iso4217"`
	Frequency       common.Frequency `validate:"omitempty,oneof=P1M P3M P6M P12M TERM"`
	DayCount        common.DayCount  `validate:"omitempty,oneof=ACT/360 ACT/365F ACT/365 30/360 30E/360"`
	Adjustment      calendar.Adjustment
}

func (d LegDetails) PayReceive() common.PayReceive { return d.Direction }
func (d LegDetails) StartDate() civil.Date         { return d.Adjustment.Adjust(d.AccrualStart) }
func (d LegDetails) EndDate() civil.Date           { return d.Adjustment.Adjust(d.AccrualEnd) }
func (d LegDetails) Currency() common.Currency     { return d.PaymentCurrency }

func (d LegDetails) check() error {
	if err := common.Validate(d); err != nil {
		return err
	}
	if !d.AccrualStart.IsValid() || !d.AccrualEnd.IsValid() {
		return fmt.Errorf("%w: leg accrual dates are required", common.ErrInvariant)
	}
	if !d.AccrualStart.Before(d.AccrualEnd) {
		return fmt.Errorf("%w: leg start %s must be before end %s", common.ErrInvariant, d.AccrualStart, d.AccrualEnd)
	}
	return nil
}

func (d LegDetails) checkFxReset(ccy common.Currency) error {
	if ccy == "" {
		return nil
	}
	if err := common.ValidateVar(string(ccy), "iso4217"); err != nil {
		return err
	}
	if ccy == d.PaymentCurrency {
		return fmt.Errorf("%w: FX reset currency %s equals payment currency", common.ErrInvariant, ccy)
	}
	return nil
}

func checkIndex(ix index.Index, kind index.Kind) error {
	if ix.IsZero() {
		return fmt.Errorf("%w: %s leg requires an index", common.ErrInvariant, kind)
	}
	if ix.Kind != kind {
		return fmt.Errorf("%w: index %s is %s, leg requires %s", common.ErrInvariant, ix.Name, ix.Kind, kind)
	}
	return nil
}

// FixedLeg pays a fixed rate on a notional.
type FixedLeg struct {
	LegDetails
	Notional ValueSchedule
	Rate     ValueSchedule
	// FxResetCurrency is the currency the notional is defined in when it resets against FX.
	FxResetCurrency common.Currency
}

func (FixedLeg) Type() SwapLegType { return LegFixed }

func (l FixedLeg) validate() error {
	if err := l.check(); err != nil {
		return err
	}
	if err := l.Notional.check("notional", l.AccrualStart, l.AccrualEnd, false); err != nil {
		return err
	}
	if err := l.Rate.check("fixed rate", l.AccrualStart, l.AccrualEnd, true); err != nil {
		return err
	}
	return l.checkFxReset(l.FxResetCurrency)
}

func (l FixedLeg) clone() SwapLeg {
	l.Notional = l.Notional.clone()
	l.Rate = l.Rate.clone()
	return l
}

// IborLeg pays an IBOR fixing plus spread on a notional.
type IborLeg struct {
	LegDetails
	Notional        ValueSchedule
	Index           index.Index
	Spread          ValueSchedule
	FxResetCurrency common.Currency
}

func (IborLeg) Type() SwapLegType { return LegIbor }

func (l IborLeg) validate() error {
	if err := l.check(); err != nil {
		return err
	}
	if err := checkIndex(l.Index, index.Ibor); err != nil {
		return err
	}
	if err := l.Notional.check("notional", l.AccrualStart, l.AccrualEnd, false); err != nil {
		return err
	}
	if err := l.Spread.check("spread", l.AccrualStart, l.AccrualEnd, true); err != nil {
		return err
	}
	return l.checkFxReset(l.FxResetCurrency)
}

func (l IborLeg) clone() SwapLeg {
	l.Notional = l.Notional.clone()
	l.Spread = l.Spread.clone()
	return l
}

// OvernightLeg pays a compounded or averaged overnight rate plus spread.
type OvernightLeg struct {
	LegDetails
	Notional        ValueSchedule
	Index           index.Index
	Spread          ValueSchedule
	AccrualMethod   AccrualMethod
	FxResetCurrency common.Currency
}

func (OvernightLeg) Type() SwapLegType { return LegOvernight }

func (l OvernightLeg) validate() error {
	if err := l.check(); err != nil {
		return err
	}
	if err := common.ValidateVar(string(l.AccrualMethod), "omitempty,oneof=COMPOUNDED AVERAGED"); err != nil {
		return err
	}
	if err := checkIndex(l.Index, index.Overnight); err != nil {
		return err
	}
	if err := l.Notional.check("notional", l.AccrualStart, l.AccrualEnd, false); err != nil {
		return err
	}
	if err := l.Spread.check("spread", l.AccrualStart, l.AccrualEnd, true); err != nil {
		return err
	}
	return l.checkFxReset(l.FxResetCurrency)
}

func (l OvernightLeg) clone() SwapLeg {
	l.Notional = l.Notional.clone()
	l.Spread = l.Spread.clone()
	return l
}

// InflationLeg pays the change in a price index on a notional.
type InflationLeg struct {
	LegDetails
	Notional ValueSchedule
	Index    index.Index
	// LagMonths is the observation lag of the price index.
	LagMonths int
}

func (InflationLeg) Type() SwapLegType { return LegInflation }

func (l InflationLeg) validate() error {
	if err := l.check(); err != nil {
		return err
	}
	if err := checkIndex(l.Index, index.Price); err != nil {
		return err
	}
	if l.LagMonths < 0 {
		return fmt.Errorf("%w: inflation lag must not be negative, got %d", common.ErrInvariant, l.LagMonths)
	}
	return l.Notional.check("notional", l.AccrualStart, l.AccrualEnd, false)
}

func (l InflationLeg) clone() SwapLeg {
	l.Notional = l.Notional.clone()
	return l
}

// KnownAmountLeg pays amounts agreed up front rather than derived from a rate.
type KnownAmountLeg struct {
	LegDetails
	Amount ValueSchedule
}

func (KnownAmountLeg) Type() SwapLegType { return LegOther }

func (l KnownAmountLeg) validate() error {
	if err := l.check(); err != nil {
		return err
	}
	return l.Amount.check("known amount", l.AccrualStart, l.AccrualEnd, false)
}

func (l KnownAmountLeg) clone() SwapLeg {
	l.Amount = l.Amount.clone()
	return l
}

// ReferencedCurrencies returns every currency the leg refers to: the payment
// currency plus, where applicable, the index currency and the FX reset currency.
func ReferencedCurrencies(leg SwapLeg) []common.Currency {
	var out []common.Currency
	switch l := leg.(type) {
	case nil:
		return nil
	case FixedLeg:
		out = []common.Currency{l.PaymentCurrency, l.FxResetCurrency}
	case IborLeg:
		out = []common.Currency{l.PaymentCurrency, l.Index.Currency, l.FxResetCurrency}
	case OvernightLeg:
		out = []common.Currency{l.PaymentCurrency, l.Index.Currency, l.FxResetCurrency}
	case InflationLeg:
		out = []common.Currency{l.PaymentCurrency, l.Index.Currency}
	case KnownAmountLeg:
		out = []common.Currency{l.PaymentCurrency}
	default:
		// pointer variants
		if isNilLeg(leg) {
			return nil
		}
		return ReferencedCurrencies(leg.clone())
	}
	out = slices.DeleteFunc(out, func(c common.Currency) bool { return c == "" })
	slices.Sort(out)
	return slices.Compact(out)
}
