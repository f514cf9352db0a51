package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/product/common"
	"github.com/meenmo/tradelib/product/index"
)

func TestOf(t *testing.T) {
	t.Parallel()

	ix, err := index.Of(" eur-euribor-6m ")
	require.NoError(t, err)
	assert.Equal(t, "EUR-EURIBOR-6M", ix.Name)
	assert.Equal(t, common.EUR, ix.Currency)
	assert.True(t, index.IsIbor(ix))

	ix, err = index.Of("SOFR")
	require.NoError(t, err)
	assert.True(t, index.IsOvernight(ix))
	assert.Equal(t, common.USD, ix.Currency)

	ix, err = index.Of("GB-RPI")
	require.NoError(t, err)
	assert.True(t, index.IsPrice(ix))

	_, err = index.Of("LIBOR")
	assert.ErrorIs(t, err, index.ErrUnknownIndex)
}
