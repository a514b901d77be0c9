package imports

import (
	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/model"
)

func init() {
	// Inverse rates need more headroom than the library default.
	if decimal.DivisionPrecision < 28 {
		decimal.DivisionPrecision = 28
	}
}

// conversionRate returns the factor that converts an amount denominated in
// the looked-up price's commodity into the transaction currency.
//
// A price record states: Value units of price.Currency buy one unit of
// price.Commodity (value = amount * price). When the record's currency side
// already is the transaction currency the rate applies as is; otherwise the
// record is oriented the other way round and the inverse applies.
func conversionRate(transCurrency *model.Commodity, price Price) decimal.Decimal {
	if price.Currency.Equiv(transCurrency) {
		return price.Value
	}
	return decimal.New(1, 0).Div(price.Value)
}
