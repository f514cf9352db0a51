package common_test

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/product/common"
)

func TestParsePayReceive(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Pay", "p", " PAY "} {
		got, err := common.ParsePayReceive(in)
		require.NoError(t, err)
		assert.Equal(t, common.Pay, got)
	}
	for _, in := range []string{"Receive", "rec", "R"} {
		got, err := common.ParsePayReceive(in)
		require.NoError(t, err)
		assert.Equal(t, common.Receive, got)
	}

	_, err := common.ParsePayReceive("give")
	assert.True(t, errors.Is(err, common.ErrInvalidValue))
}

func TestPayReceiveNormalize(t *testing.T) {
	t.Parallel()

	amt := decimal.RequireFromString("125.5")
	assert.True(t, common.Pay.Normalize(amt).Equal(amt.Neg()))
	assert.True(t, common.Receive.Normalize(amt.Neg()).Equal(amt))
	assert.Equal(t, common.Receive, common.Pay.Opposite())
	assert.Equal(t, common.Pay, common.Buy.PayReceive())
	assert.Equal(t, common.Receive, common.Sell.PayReceive())
}

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	ccy, err := common.ParseCurrency(" eur")
	require.NoError(t, err)
	assert.Equal(t, common.EUR, ccy)

	for _, bad := range []string{"", "EU", "EURO", "XYZ"} {
		_, err := common.ParseCurrency(bad)
		assert.ErrorIs(t, err, common.ErrInvalidValue, bad)
	}
}

func TestStandardID(t *testing.T) {
	t.Parallel()

	id, err := common.NewStandardID("RED", " 2I65BYDU6 ")
	require.NoError(t, err)
	assert.Equal(t, "RED~2I65BYDU6", id.String())
	assert.False(t, id.IsZero())

	_, err = common.NewStandardID("RED", " ")
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	tests := map[string]common.Frequency{
		"3M":        common.Quarterly,
		"quarterly": common.Quarterly,
		"P6M":       common.SemiAnnual,
		"1Y":        common.Annual,
		"Term":      common.Term,
	}
	for in, want := range tests {
		got, err := common.ParseFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	assert.Equal(t, 6, common.SemiAnnual.Months())
	assert.Equal(t, 0, common.Term.Months())
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := civil.Date{Year: 2025, Month: time.January, Day: 31}
	end := civil.Date{Year: 2025, Month: time.July, Day: 31}

	assert.InDelta(t, 181.0/360.0, common.Act360.YearFraction(start, end), 1e-12)
	assert.InDelta(t, 181.0/365.0, common.Act365F.YearFraction(start, end), 1e-12)
	assert.InDelta(t, 0.5, common.Dc30E.YearFraction(start, end), 1e-12)
	assert.InDelta(t, 0.5, common.Dc30360.YearFraction(start, end), 1e-12)

	dc, err := common.ParseDayCount("act/365 fixed")
	require.NoError(t, err)
	assert.Equal(t, common.Act365F, dc)
}

func TestTenor(t *testing.T) {
	t.Parallel()

	tenor, err := common.ParseTenor("5Y")
	require.NoError(t, err)
	assert.Equal(t, common.Tenor{Months: 60}, tenor)
	assert.Equal(t, "5Y", tenor.String())

	tenor, err = common.ParseTenor("1M")
	require.NoError(t, err)
	jan31 := civil.Date{Year: 2024, Month: time.January, Day: 31}
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 29}, tenor.AddTo(jan31))

	tenor, err = common.ParseTenor("2W")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.February, Day: 14}, tenor.AddTo(jan31))

	_, err = common.ParseTenor("Y")
	assert.ErrorIs(t, err, common.ErrInvalidValue)
	_, err = common.ParseTenor("3Q")
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}
