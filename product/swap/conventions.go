package swap

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/index"
)

// LegConvention captures standard swap leg settings.
type LegConvention struct {
	Currency   common.Currency
	Frequency  common.Frequency
	DayCount   common.DayCount
	Adjustment calendar.Adjustment
	// Index is zero for fixed legs.
	Index index.Index
}

// Convention is a vanilla fixed-vs-floating swap convention.
type Convention struct {
	Name     string
	FixedLeg LegConvention
	FloatLeg LegConvention
}

func mustIndex(name string) index.Index {
	ix, err := index.Of(name)
	if err != nil {
		panic(err)
	}
	return ix
}

var (
	targetMF = calendar.NewAdjustment(calendar.ModifiedFollowing, calendar.TARGET)
	jpnMF    = calendar.NewAdjustment(calendar.ModifiedFollowing, calendar.JPN)
	usdMF    = calendar.NewAdjustment(calendar.ModifiedFollowing, calendar.USD)
	krwMF    = calendar.NewAdjustment(calendar.ModifiedFollowing, calendar.KRW)

	// EUR IBOR IRS fixed leg: annual payments, 30/360, TARGET calendar.
	eurFixed30360 = LegConvention{Currency: common.EUR, Frequency: common.Annual, DayCount: common.Dc30360, Adjustment: targetMF}
	// EUR OIS fixed leg: annual payments, ACT/360.
	eurFixedAct360 = LegConvention{Currency: common.EUR, Frequency: common.Annual, DayCount: common.Act360, Adjustment: targetMF}
	// JPY IRS fixed leg: semiannual payments, ACT/365F, JPN calendar.
	jpyFixedSemi   = LegConvention{Currency: common.JPY, Frequency: common.SemiAnnual, DayCount: common.Act365F, Adjustment: jpnMF}
	jpyFixedAnnual = LegConvention{Currency: common.JPY, Frequency: common.Annual, DayCount: common.Act365F, Adjustment: jpnMF}
	usdFixedAnnual = LegConvention{Currency: common.USD, Frequency: common.Annual, DayCount: common.Act360, Adjustment: usdMF}
	// KRW IRS fixed leg: quarterly, ACT/365F.
	krwFixedQuarterly = LegConvention{Currency: common.KRW, Frequency: common.Quarterly, DayCount: common.Act365F, Adjustment: krwMF}
)

var conventions = map[string]Convention{}

func init() {
	for _, c := range []Convention{
		{
			Name:     "EUR-FIXED-1Y-EURIBOR-3M",
			FixedLeg: eurFixed30360,
			FloatLeg: LegConvention{Currency: common.EUR, Frequency: common.Quarterly, DayCount: common.Act360, Adjustment: targetMF, Index: mustIndex("EUR-EURIBOR-3M")},
		},
		{
			Name:     "EUR-FIXED-1Y-EURIBOR-6M",
			FixedLeg: eurFixed30360,
			FloatLeg: LegConvention{Currency: common.EUR, Frequency: common.SemiAnnual, DayCount: common.Act360, Adjustment: targetMF, Index: mustIndex("EUR-EURIBOR-6M")},
		},
		{
			Name:     "EUR-FIXED-1Y-ESTR-OIS",
			FixedLeg: eurFixedAct360,
			FloatLeg: LegConvention{Currency: common.EUR, Frequency: common.Annual, DayCount: common.Act360, Adjustment: targetMF, Index: mustIndex("EUR-ESTR")},
		},
		{
			Name:     "JPY-FIXED-6M-TIBOR-3M",
			FixedLeg: jpyFixedSemi,
			FloatLeg: LegConvention{Currency: common.JPY, Frequency: common.Quarterly, DayCount: common.Act365F, Adjustment: jpnMF, Index: mustIndex("TIBOR3M")},
		},
		{
			Name:     "JPY-FIXED-1Y-TONAR-OIS",
			FixedLeg: jpyFixedAnnual,
			FloatLeg: LegConvention{Currency: common.JPY, Frequency: common.Annual, DayCount: common.Act365F, Adjustment: jpnMF, Index: mustIndex("JPY-TONAR")},
		},
		{
			Name:     "USD-FIXED-1Y-SOFR-OIS",
			FixedLeg: usdFixedAnnual,
			FloatLeg: LegConvention{Currency: common.USD, Frequency: common.Annual, DayCount: common.Act360, Adjustment: usdMF, Index: mustIndex("USD-SOFR")},
		},
		{
			Name:     "KRW-FIXED-3M-CD-91D",
			FixedLeg: krwFixedQuarterly,
			FloatLeg: LegConvention{Currency: common.KRW, Frequency: common.Quarterly, DayCount: common.Act365F, Adjustment: krwMF, Index: mustIndex("KRW-CD-91D")},
		},
	} {
		conventions[c.Name] = c
	}
}

// ConventionOf looks up a preset convention by name, ignoring case.
func ConventionOf(name string) (Convention, error) {
	c, ok := conventions[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Convention{}, fmt.Errorf("%w: swap convention %q", common.ErrInvalidValue, name)
	}
	return c, nil
}

// ToSwap builds a two-leg swap. BUY pays the fixed leg and receives the floating leg.
// fixedRate is a decimal rate (0.025 == 2.5%).
func (c Convention) ToSwap(bs common.BuySell, start, end civil.Date, notional, fixedRate decimal.Decimal) (Swap, error) {
	fixedDir := bs.PayReceive()
	details := func(lc LegConvention, dir common.PayReceive) LegDetails {
		return LegDetails{
			Direction:       dir,
			AccrualStart:    start,
			AccrualEnd:      end,
			PaymentCurrency: lc.Currency,
			Frequency:       lc.Frequency,
			DayCount:        lc.DayCount,
			Adjustment:      lc.Adjustment,
		}
	}

	fixed := FixedLeg{
		LegDetails: details(c.FixedLeg, fixedDir),
		Notional:   Constant(notional),
		Rate:       Constant(fixedRate),
	}

	var float SwapLeg
	floatDetails := details(c.FloatLeg, fixedDir.Opposite())
	switch c.FloatLeg.Index.Kind {
	case index.Overnight:
		float = OvernightLeg{LegDetails: floatDetails, Notional: Constant(notional), Index: c.FloatLeg.Index, AccrualMethod: Compounded}
	case index.Ibor:
		float = IborLeg{LegDetails: floatDetails, Notional: Constant(notional), Index: c.FloatLeg.Index}
	default:
		return Swap{}, fmt.Errorf("ToSwap: %w: convention %s has no floating index", common.ErrInvariant, c.Name)
	}

	s, err := NewSwap(fixed, float)
	if err != nil {
		return Swap{}, fmt.Errorf("ToSwap %s: %w", c.Name, err)
	}
	return s, nil
}
