package amountwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCurrencyTable(t *testing.T) {
	table := DefaultCurrencyTable()

	assert.Equal(t, []string{"cordoba", "dolar", "euro"}, table.Codes())

	c, ok := table.Find("NIO")
	require.True(t, ok)
	assert.Equal(t, "cordobas", c.Plural)
	assert.Equal(t, "C$", c.Symbol)

	c, ok = table.Find("usd")
	require.True(t, ok)
	assert.Equal(t, "dolar", c.Singular)
}

func TestCurrencyTable_LookupFallback(t *testing.T) {
	table := DefaultCurrencyTable()

	c := table.Lookup(" xyz ")
	assert.Equal(t, "XYZ", c.Code)
	assert.Equal(t, "XYZ", c.Singular)
	assert.Equal(t, "XYZ", c.Plural)
	assert.Empty(t, c.Symbol)

	_, ok := table.Find("xyz")
	assert.False(t, ok)
}

func TestCurrencyTable_Register(t *testing.T) {
	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewCurrencyTable(Currency{Singular: "peso", Plural: "pesos"})
		assert.Error(t, err)
	})

	t.Run("rejects missing names", func(t *testing.T) {
		_, err := NewCurrencyTable(Currency{Code: "peso", Singular: "peso"})
		assert.Error(t, err)
	})

	t.Run("replacing an entry keeps one code", func(t *testing.T) {
		table := DefaultCurrencyTable()
		err := table.Register(Currency{Code: "Dolar", Singular: "dolar americano", Plural: "dolares americanos"})
		require.NoError(t, err)

		assert.Equal(t, []string{"cordoba", "dolar", "euro"}, table.Codes())
		assert.Equal(t, "dolares americanos", table.Lookup("dolar").Plural)
	})
}

func TestCurrencyTable_Currencies(t *testing.T) {
	list := DefaultCurrencyTable().Currencies()
	require.Len(t, list, 3)
	assert.Equal(t, "euros", list[2].Plural)
}

func TestCurrency_Name(t *testing.T) {
	assert.Equal(t, "euro", Euro.Name(true))
	assert.Equal(t, "euros", Euro.Name(false))
}
