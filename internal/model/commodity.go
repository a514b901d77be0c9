package model

// NamespaceCurrency is the reserved namespace for ISO currencies.
// All other namespaces (exchanges, funds, ...) hold non-currency commodities.
const NamespaceCurrency = "CURRENCY"

// Commodity is anything an account can be denominated in: a currency,
// a stock, a fund share.
type Commodity struct {
	Namespace string
	Mnemonic  string
	FullName  string
	Fraction  int64 // smallest tradable unit, e.g. 100 for cents
}

// UniqueName returns the table-wide unique identifier for the commodity.
func (c *Commodity) UniqueName() string {
	return c.Namespace + "::" + c.Mnemonic
}

// IsCurrency reports whether the commodity lives in the currency namespace.
func (c *Commodity) IsCurrency() bool {
	return c.Namespace == NamespaceCurrency
}

// Equiv reports whether two commodities refer to the same namespace/mnemonic
// pair, regardless of which table instance they came from.
func (c *Commodity) Equiv(other *Commodity) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Namespace == other.Namespace && c.Mnemonic == other.Mnemonic
}
