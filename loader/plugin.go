package loader

import "github.com/meenmo/tradelib/product"

// Plugin decodes the rows of one family of trade types.
//
// Implementations must be safe for concurrent use: the loader calls ParseTrade
// from several goroutines.
type Plugin interface {
	// Name is used in logs, metrics and conflict errors. It is not a type token.
	Name() string
	// Types lists the trade type tokens the plugin accepts.
	Types() []string
	// AdditionalRow reports whether candidate continues the trade started by base.
	AdditionalRow(base, candidate CsvRow) bool
	// ParseTrade decodes a trade from its primary row and continuation rows.
	ParseTrade(row CsvRow, additional []CsvRow, info product.TradeInfo, resolver Resolver) (product.Trade, error)
}

// CdsIndexPlugin decodes CDS index trades. Each trade is a single row.
type CdsIndexPlugin struct{}

func (CdsIndexPlugin) Name() string    { return "CdsIndex" }
func (CdsIndexPlugin) Types() []string { return []string{"CDSINDEX", "CDS INDEX"} }

func (CdsIndexPlugin) AdditionalRow(CsvRow, CsvRow) bool { return false }

// ParseTrade hands the row to the resolver and returns its result as is.
func (CdsIndexPlugin) ParseTrade(row CsvRow, additional []CsvRow, info product.TradeInfo, resolver Resolver) (product.Trade, error) {
	return resolver.ParseCdsIndexTrade(row, additional, info)
}

// SwapPlugin decodes swap trades. Rows with a blank trade type after a swap
// carry value steps for its legs.
type SwapPlugin struct{}

func (SwapPlugin) Name() string    { return "Swap" }
func (SwapPlugin) Types() []string { return []string{"SWAP"} }

func (SwapPlugin) AdditionalRow(_, candidate CsvRow) bool {
	_, ok := candidate.Field(TypeField)
	return !ok
}

func (SwapPlugin) ParseTrade(row CsvRow, additional []CsvRow, info product.TradeInfo, resolver Resolver) (product.Trade, error) {
	return resolver.ParseSwapTrade(row, additional, info)
}
