package store

type Commodity struct {
	ID        int64
	Namespace string
	Mnemonic  string
	FullName  string
	Fraction  int64
}

type Account struct {
	ID                int64
	Name              string
	Type              string
	ParentID          *int64
	CommodityNS       string
	CommodityMnemonic string
	Description       string
	IsHidden          bool
}

type Transaction struct {
	ID          int64
	Timestamp   int64
	Num         string
	Description string
	Notes       string
	Currency    string
	VoidReason  string
}

type Split struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	Amount        string // exact decimal, account commodity units
	Value         string // exact decimal, transaction currency units
	Memo          string
	Action        string
	RecState      string
	RecDate       int64 // unix seconds, 0 when not reconciled
}

type Price struct {
	ID                int64
	CommodityNS       string
	CommodityMnemonic string
	CurrencyNS        string
	CurrencyMnemonic  string
	Value             string // exact decimal
	Timestamp         int64
}
