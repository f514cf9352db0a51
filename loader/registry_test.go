package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/loader"
	"github.com/meenmo/tradelib/product"
)

type stubPlugin struct {
	name  string
	types []string
}

func (p stubPlugin) Name() string                                    { return p.name }
func (p stubPlugin) Types() []string                                 { return p.types }
func (p stubPlugin) AdditionalRow(loader.CsvRow, loader.CsvRow) bool { return false }
func (p stubPlugin) ParseTrade(loader.CsvRow, []loader.CsvRow, product.TradeInfo, loader.Resolver) (product.Trade, error) {
	return nil, nil
}

func TestDefaultRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := loader.DefaultRegistry()
	for _, token := range []string{"CDSINDEX", "CDS INDEX", "cds index", "  CdsIndex ", "C D S\tINDEX"} {
		p, ok := reg.Lookup(token)
		require.True(t, ok, token)
		assert.Equal(t, "CdsIndex", p.Name())
	}

	p, ok := reg.Lookup("swap")
	require.True(t, ok)
	assert.Equal(t, "Swap", p.Name())

	_, ok = reg.Lookup("FOOBAR")
	assert.False(t, ok)

	assert.Equal(t, []string{"CDSINDEX", "SWAP"}, reg.Tokens())
	assert.Len(t, reg.Plugins(), 2)
}

func TestCdsIndexPlugin_Contract(t *testing.T) {
	t.Parallel()

	p := loader.CdsIndexPlugin{}
	assert.Equal(t, "CdsIndex", p.Name())
	assert.ElementsMatch(t, []string{"CDSINDEX", "CDS INDEX"}, p.Types())
	assert.NotContains(t, p.Types(), p.Name())
	assert.False(t, p.AdditionalRow(loader.RowOf(2, nil), loader.RowOf(3, nil)))
}

func TestNewRegistry_Conflict(t *testing.T) {
	t.Parallel()

	_, err := loader.NewRegistry(
		loader.CdsIndexPlugin{},
		stubPlugin{name: "Other", types: []string{"cds index"}},
	)
	require.ErrorIs(t, err, loader.ErrRegistrationConflict)

	var conflict *loader.RegistrationConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "CDSINDEX", conflict.Token)
	assert.Equal(t, "CdsIndex", conflict.Existing)
	assert.Equal(t, "Other", conflict.Conflicting)

	assert.Panics(t, func() {
		loader.MustNewRegistry(loader.SwapPlugin{}, stubPlugin{name: "Dup", types: []string{"S W A P"}})
	})
}

func TestNewRegistry_InvalidPlugin(t *testing.T) {
	t.Parallel()

	tests := map[string]loader.Plugin{
		"no name":     stubPlugin{types: []string{"X"}},
		"no types":    stubPlugin{name: "Empty"},
		"blank token": stubPlugin{name: "Blank", types: []string{"  "}},
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loader.NewRegistry(p)
			assert.ErrorIs(t, err, loader.ErrInvalidPlugin)
		})
	}
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	reg := loader.DefaultRegistry()

	p, err := reg.Dispatch(loader.RowOf(2, map[string]string{"trade type": " Cds Index "}))
	require.NoError(t, err)
	assert.Equal(t, "CdsIndex", p.Name())

	_, err = reg.Dispatch(loader.RowOf(7, map[string]string{loader.TypeField: "FOOBAR"}))
	var unknown *loader.UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 7, unknown.Line)
	assert.Equal(t, "FOOBAR", unknown.Token)
	assert.ErrorIs(t, err, loader.ErrUnknownType)

	_, err = reg.Dispatch(loader.RowOf(9, map[string]string{loader.TypeField: ""}))
	var pe *loader.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, loader.TypeField, pe.Field)
	assert.ErrorIs(t, err, loader.ErrMissingField)
}
