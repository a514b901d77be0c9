package constants

const (
	MaxNameLen = 100
)

const (
	TypeAsset     = "A"
	TypeLiability = "L"
	TypeEquity    = "C"
	TypeRevenue   = "R"
	TypeExpense   = "E"
)
