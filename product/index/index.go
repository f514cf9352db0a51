package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meenmo/tradelib/product/common"
)

// ErrUnknownIndex is returned when an index name is not in the table.
var ErrUnknownIndex = errors.New("unknown index")

// Kind distinguishes term, overnight and price indices.
type Kind string

const (
	Ibor      Kind = "IBOR"
	Overnight Kind = "OVERNIGHT"
	Price     Kind = "PRICE"
)

// Index is a floating rate or price benchmark.
type Index struct {
	Name     string
	Kind     Kind
	Currency common.Currency
	// Tenor is empty for overnight and price indices.
	Tenor string
}

func (ix Index) String() string { return ix.Name }

func (ix Index) IsZero() bool { return ix.Name == "" }

var table = map[string]Index{}

func init() {
	for _, ix := range []Index{
		{Name: "ESTR", Kind: Overnight, Currency: common.EUR},
		{Name: "EURIBOR3M", Kind: Ibor, Currency: common.EUR, Tenor: "3M"},
		{Name: "EURIBOR6M", Kind: Ibor, Currency: common.EUR, Tenor: "6M"},
		{Name: "TONAR", Kind: Overnight, Currency: common.JPY},
		{Name: "TIBOR3M", Kind: Ibor, Currency: common.JPY, Tenor: "3M"},
		{Name: "TIBOR6M", Kind: Ibor, Currency: common.JPY, Tenor: "6M"},
		{Name: "SOFR", Kind: Overnight, Currency: common.USD},
		{Name: "CD91D", Kind: Ibor, Currency: common.KRW, Tenor: "91D"},

		{Name: "EUR-EURIBOR-3M", Kind: Ibor, Currency: common.EUR, Tenor: "3M"},
		{Name: "EUR-EURIBOR-6M", Kind: Ibor, Currency: common.EUR, Tenor: "6M"},
		{Name: "EUR-ESTR", Kind: Overnight, Currency: common.EUR},
		{Name: "USD-SOFR", Kind: Overnight, Currency: common.USD},
		{Name: "GBP-SONIA", Kind: Overnight, Currency: common.GBP},
		{Name: "JPY-TONAR", Kind: Overnight, Currency: common.JPY},
		{Name: "JPY-TIBOR-JAPAN-3M", Kind: Ibor, Currency: common.JPY, Tenor: "3M"},
		{Name: "KRW-CD-91D", Kind: Ibor, Currency: common.KRW, Tenor: "91D"},

		{Name: "EU-HICP", Kind: Price, Currency: common.EUR},
		{Name: "US-CPI-U", Kind: Price, Currency: common.USD},
		{Name: "GB-RPI", Kind: Price, Currency: common.GBP},
	} {
		table[ix.Name] = ix
	}
}

// Of looks up an index by name, ignoring case and surrounding spaces.
func Of(name string) (Index, error) {
	ix, ok := table[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Index{}, fmt.Errorf("%w: %q", ErrUnknownIndex, name)
	}
	return ix, nil
}

// IsOvernight reports whether the index is an overnight index used in OIS discounting/projection.
func IsOvernight(ix Index) bool { return ix.Kind == Overnight }

// IsIbor reports whether the index is a term (IBOR-style) rate.
func IsIbor(ix Index) bool { return ix.Kind == Ibor }

// IsPrice reports whether the index is an inflation price index.
func IsPrice(ix Index) bool { return ix.Kind == Price }
