package loader

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/credit"
)

// ParseCdsIndexTrade reads a single-row CDS index trade. Continuation rows are ignored.
func (r StandardResolver) ParseCdsIndexTrade(row CsvRow, _ []CsvRow, info product.TradeInfo) (product.Trade, error) {
	var (
		c   credit.CdsIndex
		err error
	)
	if c.BuySell, err = required(row, BuySellField, common.ParseBuySell); err != nil {
		return nil, err
	}
	idValue, err := row.Value(CdsIndexIDField)
	if err != nil {
		return nil, err
	}
	idScheme, _ := optional(row, CdsIndexIDSchemeField, parseText, DefaultRedScheme)
	c.IndexID = common.StandardID{Scheme: idScheme, Value: idValue}
	if c.LegalEntityIDs, err = legalEntities(row); err != nil {
		return nil, err
	}
	if c.Currency, err = required(row, CurrencyField, common.ParseCurrency); err != nil {
		return nil, err
	}
	if c.Notional, err = required(row, NotionalField, parseDecimal); err != nil {
		return nil, err
	}
	if c.FixedRate, err = required(row, FixedRateField, parsePercent); err != nil {
		return nil, err
	}
	if c.StartDate, err = required(row, StartDateField, parseDate); err != nil {
		return nil, err
	}
	if c.EndDate, err = required(row, EndDateField, parseDate); err != nil {
		return nil, err
	}
	if c.Frequency, err = optional(row, FrequencyField, common.ParseFrequency, common.Quarterly); err != nil {
		return nil, err
	}
	if c.DayCount, err = optional(row, DayCountField, common.ParseDayCount, common.Act360); err != nil {
		return nil, err
	}
	c.Adjustment, err = r.adjustment(row, []string{DateConventionField}, []string{DateCalendarField}, calendar.Following)
	if err != nil {
		return nil, err
	}
	if c.PaymentOnDefault, err = optional(row, PaymentOnDefaultField, credit.ParsePaymentOnDefault, credit.AccruedPremium); err != nil {
		return nil, err
	}
	if c.ProtectionStart, err = optional(row, ProtectionStartField, credit.ParseProtectionStart, credit.Beginning); err != nil {
		return nil, err
	}

	fee, err := premium(row, c)
	if err != nil {
		return nil, err
	}
	trade, err := credit.NewCdsIndexTrade(info, c, fee)
	if err != nil {
		return nil, rowError(row, err)
	}
	return trade, nil
}

// legalEntities splits the Legal Entity Id column on '|' or ';'.
func legalEntities(row CsvRow) ([]common.StandardID, error) {
	v, ok := row.Field(LegalEntityIDField)
	if !ok {
		return nil, nil
	}
	scheme, _ := optional(row, LegalEntityIDSchemeField, parseText, DefaultRedScheme)
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == '|' || r == ';' })
	ids := make([]common.StandardID, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, common.StandardID{Scheme: scheme, Value: p})
		}
	}
	return ids, nil
}

// premium reads the optional upfront fee. Currency defaults to the trade
// currency and the direction to paying when buying protection.
func premium(row CsvRow, c credit.CdsIndex) (*credit.Payment, error) {
	if _, ok := row.Field(PremiumAmountField); !ok {
		return nil, nil
	}
	amount, err := required(row, PremiumAmountField, parseDecimal)
	if err != nil {
		return nil, err
	}
	fee := credit.Payment{Amount: amount.Abs()}
	if fee.Currency, err = optional(row, PremiumCurrencyField, common.ParseCurrency, c.Currency); err != nil {
		return nil, err
	}
	dir := c.BuySell.PayReceive()
	if amount.LessThan(decimal.Zero) {
		dir = dir.Opposite()
	}
	if fee.Direction, err = optional(row, PremiumDirectionField, common.ParsePayReceive, dir); err != nil {
		return nil, err
	}
	if fee.Date, err = optional(row, PremiumDateField, parseDate, civil.Date{}); err != nil {
		return nil, err
	}
	if !fee.Date.IsValid() {
		return nil, fieldError(row, PremiumDateField, ErrMissingField)
	}
	return &fee, nil
}
