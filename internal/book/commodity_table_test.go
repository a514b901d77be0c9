package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/model"
)

func TestCommodityTable(t *testing.T) {
	gold := &model.Commodity{Namespace: "COMMODITY", Mnemonic: "XAU", FullName: "Gold"}
	table := book.NewCommodityTable([]*model.Commodity{usd, eur, gold})

	t.Run("lookup by unique name", func(t *testing.T) {
		assert.Same(t, usd, table.LookupUnique("CURRENCY::USD"))
		assert.Same(t, gold, table.LookupUnique("COMMODITY::XAU"))
		assert.Nil(t, table.LookupUnique("CURRENCY::XAU"))
	})

	t.Run("lookup by namespace and mnemonic", func(t *testing.T) {
		assert.Same(t, eur, table.Lookup(model.NamespaceCurrency, "EUR"))
		assert.Nil(t, table.Lookup("COMMODITY", "EUR"))
		assert.Nil(t, table.Lookup("UNKNOWN", "EUR"))
	})

	t.Run("namespaces are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"COMMODITY", "CURRENCY"}, table.Namespaces())
	})

	t.Run("insert after construction", func(t *testing.T) {
		jpy := usdLike("JPY")
		table.Insert(jpy)
		require.Same(t, jpy, table.Lookup(model.NamespaceCurrency, "JPY"))
	})
}
