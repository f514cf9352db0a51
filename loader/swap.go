package loader

import (
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/index"
	"github.com/meenmo/tradelib/product/swap"
)

// stepColumns are the leg columns a continuation row may carry, with their units.
var stepColumns = []struct {
	column string
	parse  func(string) (decimal.Decimal, error)
}{
	{NotionalField, parseDecimal},
	{FixedRateField, parsePercent},
	{SpreadField, parseBasisPoints},
	{KnownAmountField, parseDecimal},
}

// ParseSwapTrade reads a swap from either a Convention column or explicit
// "Leg N" columns. Continuation rows add dated steps to the leg schedules.
func (r StandardResolver) ParseSwapTrade(row CsvRow, additional []CsvRow, info product.TradeInfo) (product.Trade, error) {
	var (
		legs []swap.SwapLeg
		err  error
	)
	if _, ok := row.Field(ConventionField); ok {
		legs, err = conventionLegs(row)
	} else {
		legs, err = r.explicitLegs(row)
	}
	if err != nil {
		return nil, err
	}
	for _, add := range additional {
		if legs, err = applySteps(add, legs); err != nil {
			return nil, err
		}
	}

	s, err := swap.NewSwap(legs...)
	if err != nil {
		return nil, rowError(row, err)
	}
	trade, err := swap.NewSwapTrade(info, s)
	if err != nil {
		return nil, rowError(row, err)
	}
	return trade, nil
}

func conventionLegs(row CsvRow) ([]swap.SwapLeg, error) {
	conv, err := required(row, ConventionField, swap.ConventionOf)
	if err != nil {
		return nil, err
	}
	bs, err := required(row, BuySellField, common.ParseBuySell)
	if err != nil {
		return nil, err
	}
	start, err := required(row, StartDateField, parseDate)
	if err != nil {
		return nil, err
	}
	end, err := endDate(row, EndDateField, start)
	if err != nil {
		return nil, err
	}
	notional, err := required(row, NotionalField, parseDecimal)
	if err != nil {
		return nil, err
	}
	rate, err := required(row, FixedRateField, parsePercent)
	if err != nil {
		return nil, err
	}
	s, err := conv.ToSwap(bs, start, end, notional, rate)
	if err != nil {
		return nil, rowError(row, err)
	}
	return s.Legs(), nil
}

// endDate reads an explicit end date, or start plus the Tenor column.
func endDate(row CsvRow, field string, start civil.Date) (civil.Date, error) {
	if _, ok := row.Field(field); ok {
		return required(row, field, parseDate)
	}
	if _, ok := row.Field(TenorField); ok {
		tenor, err := required(row, TenorField, common.ParseTenor)
		if err != nil {
			return civil.Date{}, err
		}
		return tenor.AddTo(start), nil
	}
	return civil.Date{}, fieldError(row, field, ErrMissingField)
}

func (r StandardResolver) explicitLegs(row CsvRow) ([]swap.SwapLeg, error) {
	var legs []swap.SwapLeg
	for n := 1; ; n++ {
		if _, ok := row.Field(legField(n, DirectionField)); !ok {
			break
		}
		leg, err := r.parseLeg(row, n)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	if len(legs) == 0 {
		return nil, fieldError(row, legField(1, DirectionField), ErrMissingField)
	}
	return legs, nil
}

func (r StandardResolver) parseLeg(row CsvRow, n int) (swap.SwapLeg, error) {
	leg, err := r.buildLeg(row, n)
	if err != nil {
		return nil, err
	}
	if err := checkLegColumns(row, n, leg.Type()); err != nil {
		return nil, err
	}
	return leg, nil
}

// termColumns are the leg columns whose meaning depends on the leg type.
var termColumns = []string{
	NotionalField, FixedRateField, IndexField, SpreadField,
	AccrualMethodField, InflationLagField, FxResetField, KnownAmountField,
}

// legColumns lists the term columns each leg type reads.
var legColumns = map[swap.SwapLegType][]string{
	swap.LegFixed:     {NotionalField, FixedRateField, FxResetField},
	swap.LegIbor:      {NotionalField, IndexField, SpreadField, FxResetField},
	swap.LegOvernight: {NotionalField, IndexField, SpreadField, AccrualMethodField, FxResetField},
	swap.LegInflation: {NotionalField, IndexField, InflationLagField},
	swap.LegOther:     {KnownAmountField},
}

// checkLegColumns rejects populated term columns the leg type would ignore.
func checkLegColumns(row CsvRow, n int, t swap.SwapLegType) error {
	for _, c := range termColumns {
		if slices.Contains(legColumns[t], c) {
			continue
		}
		if _, ok := row.Field(legField(n, c)); ok {
			return fieldError(row, legField(n, c), fmt.Errorf("%w: not applicable to a %s leg", common.ErrInvalidValue, t))
		}
	}
	return nil
}

func (r StandardResolver) buildLeg(row CsvRow, n int) (swap.SwapLeg, error) {
	col := func(c string) string { return legField(n, c) }
	var (
		d   swap.LegDetails
		err error
	)
	if d.Direction, err = required(row, col(DirectionField), common.ParsePayReceive); err != nil {
		return nil, err
	}
	startField, _ := firstField(row, col(StartDateField), StartDateField)
	if startField == "" {
		startField = col(StartDateField)
	}
	if d.AccrualStart, err = required(row, startField, parseDate); err != nil {
		return nil, err
	}
	endField, ok := firstField(row, col(EndDateField), EndDateField)
	if !ok {
		endField = EndDateField
	}
	if d.AccrualEnd, err = endDate(row, endField, d.AccrualStart); err != nil {
		return nil, err
	}
	if d.Frequency, err = optional(row, col(FrequencyField), common.ParseFrequency, common.Quarterly); err != nil {
		return nil, err
	}
	if d.DayCount, err = optional(row, col(DayCountField), common.ParseDayCount, common.Act360); err != nil {
		return nil, err
	}
	d.Adjustment, err = r.adjustment(row,
		[]string{col(DateConventionField), DateConventionField},
		[]string{col(DateCalendarField), DateCalendarField},
		calendar.ModifiedFollowing)
	if err != nil {
		return nil, err
	}

	var ix index.Index
	if _, ok := row.Field(col(IndexField)); ok {
		if ix, err = required(row, col(IndexField), index.Of); err != nil {
			return nil, err
		}
	}
	if d.PaymentCurrency, err = optional(row, col(CurrencyField), common.ParseCurrency, ix.Currency); err != nil {
		return nil, err
	}
	if d.PaymentCurrency == "" {
		return nil, fieldError(row, col(CurrencyField), ErrMissingField)
	}
	fx, err := optional(row, col(FxResetField), common.ParseCurrency, "")
	if err != nil {
		return nil, err
	}

	if _, ok := row.Field(col(KnownAmountField)); ok {
		amount, err := required(row, col(KnownAmountField), parseDecimal)
		if err != nil {
			return nil, err
		}
		return swap.KnownAmountLeg{LegDetails: d, Amount: swap.Constant(amount)}, nil
	}

	notional, err := required(row, col(NotionalField), parseDecimal)
	if err != nil {
		return nil, err
	}

	if _, ok := row.Field(col(FixedRateField)); ok {
		rate, err := required(row, col(FixedRateField), parsePercent)
		if err != nil {
			return nil, err
		}
		return swap.FixedLeg{LegDetails: d, Notional: swap.Constant(notional), Rate: swap.Constant(rate), FxResetCurrency: fx}, nil
	}

	if ix.IsZero() {
		return nil, fieldError(row, col(IndexField),
			fmt.Errorf("%w: leg needs %s, %s or %s", ErrMissingField, FixedRateField, IndexField, KnownAmountField))
	}
	spread, err := optional(row, col(SpreadField), parseBasisPoints, decimal.Zero)
	if err != nil {
		return nil, err
	}
	switch ix.Kind {
	case index.Ibor:
		return swap.IborLeg{LegDetails: d, Notional: swap.Constant(notional), Index: ix, Spread: swap.Constant(spread), FxResetCurrency: fx}, nil
	case index.Overnight:
		method, err := optional(row, col(AccrualMethodField), swap.ParseAccrualMethod, swap.Compounded)
		if err != nil {
			return nil, err
		}
		return swap.OvernightLeg{
			LegDetails:      d,
			Notional:        swap.Constant(notional),
			Index:           ix,
			Spread:          swap.Constant(spread),
			AccrualMethod:   method,
			FxResetCurrency: fx,
		}, nil
	default:
		lag, err := optional(row, col(InflationLagField), parseInt, 3)
		if err != nil {
			return nil, err
		}
		return swap.InflationLeg{LegDetails: d, Notional: swap.Constant(notional), Index: ix, LagMonths: lag}, nil
	}
}

// applySteps adds the values of one continuation row to the legs, effective
// from the row's Start Date.
func applySteps(row CsvRow, legs []swap.SwapLeg) ([]swap.SwapLeg, error) {
	date, err := required(row, StartDateField, parseDate)
	if err != nil {
		return nil, err
	}
	out := make([]swap.SwapLeg, len(legs))
	found := false
	for i, leg := range legs {
		for _, sc := range stepColumns {
			field := legField(i+1, sc.column)
			if _, ok := row.Field(field); !ok {
				continue
			}
			value, err := required(row, field, sc.parse)
			if err != nil {
				return nil, err
			}
			stepped, ok := withStep(leg, sc.column, date, value)
			if !ok {
				return nil, fieldError(row, field, fmt.Errorf("%w: not applicable to a %s leg", common.ErrInvalidValue, leg.Type()))
			}
			leg = stepped
			found = true
		}
		out[i] = leg
	}
	if !found {
		return nil, fieldError(row, legField(1, NotionalField), fmt.Errorf("%w: continuation row has no leg values", ErrMissingField))
	}
	return out, nil
}

func withStep(leg swap.SwapLeg, column string, date civil.Date, v decimal.Decimal) (swap.SwapLeg, bool) {
	switch l := leg.(type) {
	case swap.FixedLeg:
		switch column {
		case NotionalField:
			l.Notional = l.Notional.WithStep(date, v)
		case FixedRateField:
			l.Rate = l.Rate.WithStep(date, v)
		default:
			return nil, false
		}
		return l, true
	case swap.IborLeg:
		switch column {
		case NotionalField:
			l.Notional = l.Notional.WithStep(date, v)
		case SpreadField:
			l.Spread = l.Spread.WithStep(date, v)
		default:
			return nil, false
		}
		return l, true
	case swap.OvernightLeg:
		switch column {
		case NotionalField:
			l.Notional = l.Notional.WithStep(date, v)
		case SpreadField:
			l.Spread = l.Spread.WithStep(date, v)
		default:
			return nil, false
		}
		return l, true
	case swap.InflationLeg:
		if column != NotionalField {
			return nil, false
		}
		l.Notional = l.Notional.WithStep(date, v)
		return l, true
	case swap.KnownAmountLeg:
		if column != KnownAmountField {
			return nil, false
		}
		l.Amount = l.Amount.WithStep(date, v)
		return l, true
	default:
		return nil, false
	}
}
