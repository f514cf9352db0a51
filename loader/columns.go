package loader

import "fmt"

// Column headers shared by every trade type.
const (
	TypeField               = "Trade Type"
	IDSchemeField           = "Id Scheme"
	IDField                 = "Id"
	CounterpartySchemeField = "Counterparty Scheme"
	CounterpartyField       = "Counterparty"
	TradeDateField          = "Trade Date"
	TradeTimeField          = "Trade Time"
	TradeZoneField          = "Trade Zone"
	SettlementDateField     = "Settlement Date"

	DefaultTradeIDScheme      = "Trade"
	DefaultCounterpartyScheme = "Counterparty"
)

// Product columns.
const (
	BuySellField        = "Buy Sell"
	DirectionField      = "Direction"
	CurrencyField       = "Currency"
	NotionalField       = "Notional"
	FixedRateField      = "Fixed Rate"
	StartDateField      = "Start Date"
	EndDateField        = "End Date"
	TenorField          = "Tenor"
	FrequencyField      = "Frequency"
	DayCountField       = "Day Count"
	DateConventionField = "Date Convention"
	DateCalendarField   = "Date Calendar"
	ConventionField     = "Convention"

	IndexField         = "Index"
	SpreadField        = "Spread"
	KnownAmountField   = "Known Amount"
	AccrualMethodField = "Accrual Method"
	InflationLagField  = "Inflation Lag"
	FxResetField       = "FX Reset Currency"

	CdsIndexIDSchemeField    = "CDS Index Id Scheme"
	CdsIndexIDField          = "CDS Index Id"
	LegalEntityIDSchemeField = "Legal Entity Id Scheme"
	LegalEntityIDField       = "Legal Entity Id"
	PaymentOnDefaultField    = "Payment On Default"
	ProtectionStartField     = "Protection Start"
	PremiumAmountField       = "Premium Amount"
	PremiumCurrencyField     = "Premium Currency"
	PremiumDirectionField    = "Premium Direction"
	PremiumDateField         = "Premium Date"

	DefaultRedScheme = "RED"
)

// legField prefixes a column with its 1-based leg number, as in "Leg 2 Index".
func legField(n int, column string) string {
	return fmt.Sprintf("Leg %d %s", n, column)
}
