package credit_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/credit"
)

func validIndex() credit.CdsIndex {
	return credit.CdsIndex{
		BuySell:          common.Buy,
		IndexID:          common.StandardID{Scheme: "RED", Value: "2I65BYDU6"},
		LegalEntityIDs:   []common.StandardID{{Scheme: "RED", Value: "A1"}, {Scheme: "RED", Value: "B2"}},
		Currency:         common.EUR,
		Notional:         decimal.RequireFromString("10000000"),
		StartDate:        civil.Date{Year: 2025, Month: time.March, Day: 20},
		EndDate:          civil.Date{Year: 2030, Month: time.June, Day: 20},
		Frequency:        common.Quarterly,
		DayCount:         common.Act360,
		Adjustment:       calendar.NewAdjustment(calendar.Following, calendar.TARGET),
		FixedRate:        decimal.RequireFromString("0.01"),
		PaymentOnDefault: credit.AccruedPremium,
		ProtectionStart:  credit.Beginning,
	}
}

func TestNewCdsIndex(t *testing.T) {
	t.Parallel()

	in := validIndex()
	got, err := credit.NewCdsIndex(in)
	require.NoError(t, err)

	in.LegalEntityIDs[0].Value = "CHANGED"
	assert.Equal(t, "A1", got.Entities()[0].Value)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.March, Day: 20}, got.AccrualStartDate())
}

func TestNewCdsIndex_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]func(c *credit.CdsIndex){
		"no index id":          func(c *credit.CdsIndex) { c.IndexID = common.StandardID{} },
		"bad currency":         func(c *credit.CdsIndex) { c.Currency = "EURO" },
		"zero notional":        func(c *credit.CdsIndex) { c.Notional = decimal.Zero },
		"negative coupon":      func(c *credit.CdsIndex) { c.FixedRate = decimal.RequireFromString("-0.01") },
		"end before start":     func(c *credit.CdsIndex) { c.StartDate, c.EndDate = c.EndDate, c.StartDate },
		"missing buy sell":     func(c *credit.CdsIndex) { c.BuySell = "" },
		"blank legal entity":   func(c *credit.CdsIndex) { c.LegalEntityIDs = append(c.LegalEntityIDs, common.StandardID{}) },
		"bad payment default":  func(c *credit.CdsIndex) { c.PaymentOnDefault = "SOMETIMES" },
		"missing frequency":    func(c *credit.CdsIndex) { c.Frequency = "" },
		"missing protection":   func(c *credit.CdsIndex) { c.ProtectionStart = "" },
		"unset schedule dates": func(c *credit.CdsIndex) { c.EndDate = civil.Date{} },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := validIndex()
			mutate(&c)
			_, err := credit.NewCdsIndex(c)
			assert.ErrorIs(t, err, common.ErrInvariant)
		})
	}
}

func TestNewCdsIndexTrade(t *testing.T) {
	t.Parallel()

	info := product.TradeInfo{TradeDate: civil.Date{Year: 2025, Month: time.March, Day: 18}}

	trade, err := credit.NewCdsIndexTrade(info, validIndex(), nil)
	require.NoError(t, err)
	assert.Equal(t, product.ProductTypeCdsIndex, trade.ProductType())
	_, ok := trade.UpfrontFee()
	assert.False(t, ok)

	fee := &credit.Payment{
		Direction: common.Pay,
		Currency:  common.EUR,
		Amount:    decimal.RequireFromString("25000"),
		Date:      civil.Date{Year: 2025, Month: time.March, Day: 21},
	}
	trade, err = credit.NewCdsIndexTrade(info, validIndex(), fee)
	require.NoError(t, err)
	fee.Amount = decimal.Zero

	got, ok := trade.UpfrontFee()
	require.True(t, ok)
	assert.True(t, got.SignedAmount().Equal(decimal.RequireFromString("-25000")))

	p := trade.Product()
	p.LegalEntityIDs[0].Value = "CHANGED"
	assert.Equal(t, "A1", trade.Product().LegalEntityIDs[0].Value)

	_, err = credit.NewCdsIndexTrade(info, validIndex(), &credit.Payment{Direction: common.Pay, Currency: common.EUR})
	assert.ErrorIs(t, err, common.ErrInvariant)
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	pod, err := credit.ParsePaymentOnDefault("Accrued Premium")
	require.NoError(t, err)
	assert.Equal(t, credit.AccruedPremium, pod)

	ps, err := credit.ParseProtectionStart("none")
	require.NoError(t, err)
	assert.Equal(t, credit.NoProtection, ps)

	_, err = credit.ParseProtectionStart("later")
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}
