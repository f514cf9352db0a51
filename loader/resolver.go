package loader

import (
	"cloud.google.com/go/civil"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
)

// Resolver turns the fields of a row into products. Plugins pick the trade
// type; the resolver does the field extraction.
//
// Implementations must be safe for concurrent use.
type Resolver interface {
	// ParseTradeInfo may enrich the metadata already read from the standard columns.
	ParseTradeInfo(row CsvRow, info product.TradeInfo) (product.TradeInfo, error)
	ParseCdsIndexTrade(row CsvRow, additional []CsvRow, info product.TradeInfo) (product.Trade, error)
	ParseSwapTrade(row CsvRow, additional []CsvRow, info product.TradeInfo) (product.Trade, error)
}

// StandardResolver reads the standard column layout.
type StandardResolver struct {
	// Calendar is used when a row has a date convention but no Date Calendar.
	Calendar calendar.ID
}

var _ Resolver = StandardResolver{}

func NewStandardResolver(cal calendar.ID) StandardResolver {
	if cal == "" {
		cal = calendar.NoHolidays
	}
	return StandardResolver{Calendar: cal}
}

func (StandardResolver) ParseTradeInfo(_ CsvRow, info product.TradeInfo) (product.TradeInfo, error) {
	return info, nil
}

// adjustment reads a business day convention and calendar from the first
// populated column of each list.
func (r StandardResolver) adjustment(row CsvRow, convFields, calFields []string, def calendar.Convention) (calendar.Adjustment, error) {
	conv := def
	if f, ok := firstField(row, convFields...); ok {
		c, err := required(row, f, calendar.ParseConvention)
		if err != nil {
			return calendar.Adjustment{}, err
		}
		conv = c
	}
	cal := r.Calendar
	if f, ok := firstField(row, calFields...); ok {
		c, err := required(row, f, calendar.ParseID)
		if err != nil {
			return calendar.Adjustment{}, err
		}
		cal = c
	}
	return calendar.NewAdjustment(conv, cal), nil
}

// parseTradeInfo reads the columns every trade type shares.
func parseTradeInfo(row CsvRow) (product.TradeInfo, error) {
	var info product.TradeInfo
	var err error

	if id, ok := row.Field(IDField); ok {
		scheme, _ := optional(row, IDSchemeField, parseText, DefaultTradeIDScheme)
		info.ID = common.StandardID{Scheme: scheme, Value: id}
	}
	if cp, ok := row.Field(CounterpartyField); ok {
		scheme, _ := optional(row, CounterpartySchemeField, parseText, DefaultCounterpartyScheme)
		info.Counterparty = common.StandardID{Scheme: scheme, Value: cp}
	}
	if info.TradeDate, err = optional(row, TradeDateField, parseDate, civil.Date{}); err != nil {
		return product.TradeInfo{}, err
	}
	if info.TradeTime, err = optional(row, TradeTimeField, parseTime, civil.Time{}); err != nil {
		return product.TradeInfo{}, err
	}
	if info.Zone, err = optional(row, TradeZoneField, parseZone, nil); err != nil {
		return product.TradeInfo{}, err
	}
	if info.SettlementDate, err = optional(row, SettlementDateField, parseDate, civil.Date{}); err != nil {
		return product.TradeInfo{}, err
	}
	return info, nil
}
