package product

import (
	"maps"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meenmo/tradelib/product/common"
)

// ProductType names the kind of product a trade holds.
type ProductType string

const (
	ProductTypeSwap     ProductType = "Swap"
	ProductTypeCdsIndex ProductType = "CdsIndex"
)

// Trade is a product paired with its trade-level metadata.
type Trade interface {
	Info() TradeInfo
	ProductType() ProductType
}

// TradeInfo holds trade-level attributes that are independent of the product.
//
// Every field is optional. Zero values mean "not specified".
type TradeInfo struct {
	ID             common.StandardID
	Counterparty   common.StandardID
	TradeDate      civil.Date
	TradeTime      civil.Time
	Zone           *time.Location
	SettlementDate civil.Date
	Attributes     map[string]string
}

// WithAttribute returns a copy of the info with the attribute set.
func (i TradeInfo) WithAttribute(key, value string) TradeInfo {
	attrs := make(map[string]string, len(i.Attributes)+1)
	maps.Copy(attrs, i.Attributes)
	attrs[key] = value
	i.Attributes = attrs
	return i
}

// Attribute looks up a free-form attribute.
func (i TradeInfo) Attribute(key string) (string, bool) {
	v, ok := i.Attributes[key]
	return v, ok
}
