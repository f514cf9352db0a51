package swap

import (
	"fmt"
	"iter"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
)

// Swap is a rate swap made of one or more legs.
//
// Legs are conceptually unordered, but the construction order is kept because
// it is what users expect to see. Build one with NewSwap; the zero value has no legs.
type Swap struct {
	legs []SwapLeg
}

// NewSwap validates and copies the legs. At least one leg is required.
func NewSwap(legs ...SwapLeg) (Swap, error) {
	if len(legs) == 0 {
		return Swap{}, fmt.Errorf("NewSwap: %w: swap must have at least one leg", common.ErrInvariant)
	}
	out := make([]SwapLeg, len(legs))
	for i, leg := range legs {
		if isNilLeg(leg) {
			return Swap{}, fmt.Errorf("NewSwap: %w: leg %d is nil", common.ErrInvariant, i+1)
		}
		if err := leg.validate(); err != nil {
			return Swap{}, fmt.Errorf("NewSwap: leg %d: %w", i+1, err)
		}
		out[i] = leg.clone()
	}
	return Swap{legs: out}, nil
}

func isNilLeg(leg SwapLeg) bool {
	switch l := leg.(type) {
	case nil:
		return true
	case *FixedLeg:
		return l == nil
	case *IborLeg:
		return l == nil
	case *OvernightLeg:
		return l == nil
	case *InflationLeg:
		return l == nil
	case *KnownAmountLeg:
		return l == nil
	default:
		return false
	}
}

// Legs returns a copy of the legs in construction order.
func (s Swap) Legs() []SwapLeg {
	out := make([]SwapLeg, len(s.legs))
	for i, leg := range s.legs {
		out[i] = leg.clone()
	}
	return out
}

// LegsOfType yields the legs of the given type in construction order.
// The filter runs each time the sequence is ranged over.
func (s Swap) LegsOfType(t SwapLegType) iter.Seq[SwapLeg] {
	return func(yield func(SwapLeg) bool) {
		for _, leg := range s.legs {
			if leg.Type() != t {
				continue
			}
			if !yield(leg.clone()) {
				return
			}
		}
	}
}

// Leg returns the first leg with the given direction.
func (s Swap) Leg(pr common.PayReceive) (SwapLeg, bool) {
	for _, leg := range s.legs {
		if leg.PayReceive() == pr {
			return leg.clone(), true
		}
	}
	return nil, false
}

// StartDate is the earliest accrual start date of the legs, often known as the effective date.
func (s Swap) StartDate() civil.Date {
	var start civil.Date
	for i, leg := range s.legs {
		if d := leg.StartDate(); i == 0 || d.Before(start) {
			start = d
		}
	}
	return start
}

// EndDate is the latest accrual end date of the legs, often known as the termination date.
func (s Swap) EndDate() civil.Date {
	var end civil.Date
	for i, leg := range s.legs {
		if d := leg.EndDate(); i == 0 || d.After(end) {
			end = d
		}
	}
	return end
}

// AllCurrencies returns every currency referred to by the swap, not just the
// payment currencies, sorted and without duplicates.
func (s Swap) AllCurrencies() []common.Currency {
	var out []common.Currency
	for _, leg := range s.legs {
		out = append(out, ReferencedCurrencies(leg)...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// IsCrossCurrency reports whether the legs pay in more than one currency.
func (s Swap) IsCrossCurrency() bool {
	for _, leg := range s.legs[min(1, len(s.legs)):] {
		if leg.Currency() != s.legs[0].Currency() {
			return true
		}
	}
	return false
}

// SwapTrade is a swap with its trade metadata.
type SwapTrade struct {
	info    product.TradeInfo
	product Swap
}

// NewSwapTrade requires a swap built by NewSwap.
func NewSwapTrade(info product.TradeInfo, s Swap) (SwapTrade, error) {
	if len(s.legs) == 0 {
		return SwapTrade{}, fmt.Errorf("NewSwapTrade: %w: swap has no legs", common.ErrInvariant)
	}
	return SwapTrade{info: info, product: s}, nil
}

func (t SwapTrade) Info() product.TradeInfo          { return t.info }
func (t SwapTrade) Product() Swap                    { return t.product }
func (t SwapTrade) ProductType() product.ProductType { return product.ProductTypeSwap }
