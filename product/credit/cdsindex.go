package credit

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/tradelib/calendar"
	"github.com/meenmo/tradelib/product"
	"github.com/meenmo/tradelib/product/common"
)

// PaymentOnDefault controls whether accrued premium is paid when a credit event occurs.
type PaymentOnDefault string

const (
	AccruedPremium PaymentOnDefault = "ACCRUED_PREMIUM"
	NoPayment      PaymentOnDefault = "NONE"
)

// ProtectionStart controls whether protection starts at the beginning of the start date.
type ProtectionStart string

const (
	Beginning    ProtectionStart = "BEGINNING"
	NoProtection ProtectionStart = "NONE"
)

func ParsePaymentOnDefault(s string) (PaymentOnDefault, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_") {
	case "ACCRUED_PREMIUM", "ACCRUEDPREMIUM":
		return AccruedPremium, nil
	case "NONE":
		return NoPayment, nil
	default:
		return "", fmt.Errorf("%w: payment on default %q", common.ErrInvalidValue, s)
	}
}

func ParseProtectionStart(s string) (ProtectionStart, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BEGINNING":
		return Beginning, nil
	case "NONE":
		return NoProtection, nil
	default:
		return "", fmt.Errorf("%w: protection start %q", common.ErrInvalidValue, s)
	}
}

// CdsIndex is a credit default swap on an index of reference entities.
//
// Buying means buying protection: the fixed coupon is paid and protection is received.
type CdsIndex struct {
	BuySell        common.BuySell `validate:"required,oneof=BUY SELL"`
	IndexID        common.StandardID
	LegalEntityIDs []common.StandardID
	Currency       common.Currency `validate:"required,iso4217"`
	Notional       decimal.Decimal
	StartDate      civil.Date
	EndDate        civil.Date
	Frequency      common.Frequency `validate:"required,oneof=P1M P3M P6M P12M TERM"`
	DayCount       common.DayCount  `validate:"required"`
	Adjustment     calendar.Adjustment
	// FixedRate is the coupon as a decimal (0.01 == 100bp).
	FixedRate        decimal.Decimal
	PaymentOnDefault PaymentOnDefault `validate:"required,oneof=ACCRUED_PREMIUM NONE"`
	ProtectionStart  ProtectionStart  `validate:"required,oneof=BEGINNING NONE"`
}

// NewCdsIndex validates c and returns a copy that shares no slices with the input.
func NewCdsIndex(c CdsIndex) (CdsIndex, error) {
	if err := common.Validate(c); err != nil {
		return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w", err)
	}
	if c.IndexID.Scheme == "" || c.IndexID.Value == "" {
		return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w: CDS index id is required", common.ErrInvariant)
	}
	if !c.Notional.IsPositive() {
		return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w: notional must be positive, got %s", common.ErrInvariant, c.Notional)
	}
	if c.FixedRate.IsNegative() {
		return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w: fixed rate must not be negative, got %s", common.ErrInvariant, c.FixedRate)
	}
	if !c.StartDate.IsValid() || !c.EndDate.IsValid() || !c.StartDate.Before(c.EndDate) {
		return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w: start %s must be before end %s", common.ErrInvariant, c.StartDate, c.EndDate)
	}
	for i, id := range c.LegalEntityIDs {
		if id.IsZero() {
			return CdsIndex{}, fmt.Errorf("NewCdsIndex: %w: legal entity id %d is blank", common.ErrInvariant, i+1)
		}
	}
	c.LegalEntityIDs = slices.Clone(c.LegalEntityIDs)
	return c, nil
}

// AccrualStartDate is the adjusted start of the premium schedule.
func (c CdsIndex) AccrualStartDate() civil.Date { return c.Adjustment.Adjust(c.StartDate) }

// AccrualEndDate is the adjusted end of the premium schedule.
func (c CdsIndex) AccrualEndDate() civil.Date { return c.Adjustment.Adjust(c.EndDate) }

// Entities returns a copy of the legal entity identifiers.
func (c CdsIndex) Entities() []common.StandardID { return slices.Clone(c.LegalEntityIDs) }

// Payment is a single amount exchanged on a date, such as an upfront fee.
type Payment struct {
	Direction common.PayReceive `validate:"required,oneof=PAY RECEIVE"`
	Currency  common.Currency   `validate:"required,iso4217"`
	Amount    decimal.Decimal
	Date      civil.Date
}

// SignedAmount is negative when the payment is made.
func (p Payment) SignedAmount() decimal.Decimal { return p.Direction.Normalize(p.Amount) }

// CdsIndexTrade is a CDS index with trade metadata and an optional upfront fee.
type CdsIndexTrade struct {
	info       product.TradeInfo
	product    CdsIndex
	upfrontFee *Payment
}

// NewCdsIndexTrade validates the product and the upfront fee, if any.
func NewCdsIndexTrade(info product.TradeInfo, c CdsIndex, upfront *Payment) (CdsIndexTrade, error) {
	c, err := NewCdsIndex(c)
	if err != nil {
		return CdsIndexTrade{}, err
	}
	t := CdsIndexTrade{info: info, product: c}
	if upfront != nil {
		if err := common.Validate(*upfront); err != nil {
			return CdsIndexTrade{}, fmt.Errorf("NewCdsIndexTrade: upfront fee: %w", err)
		}
		if !upfront.Date.IsValid() {
			return CdsIndexTrade{}, fmt.Errorf("NewCdsIndexTrade: %w: upfront fee date is required", common.ErrInvariant)
		}
		fee := *upfront
		t.upfrontFee = &fee
	}
	return t, nil
}

func (t CdsIndexTrade) Info() product.TradeInfo          { return t.info }
func (t CdsIndexTrade) ProductType() product.ProductType { return product.ProductTypeCdsIndex }

// UpfrontFee returns the fee paid or received at inception, if any.
func (t CdsIndexTrade) UpfrontFee() (Payment, bool) {
	if t.upfrontFee == nil {
		return Payment{}, false
	}
	return *t.upfrontFee, true
}

// Product returns a copy of the CDS index.
func (t CdsIndexTrade) Product() CdsIndex {
	c := t.product
	c.LegalEntityIDs = slices.Clone(c.LegalEntityIDs)
	return c
}
