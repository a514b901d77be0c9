package store

type Repository interface {
	// Commodity Operations
	CreateCommodity(namespace, mnemonic, fullName string, fraction int64) (int64, error)
	GetAllCommodities() ([]*Commodity, error)

	// Account Operations
	CreateAccount(name, accType, commodityNS, commodityMnemonic, description string, parentID *int64) (int64, error)
	GetAllAccounts() ([]*Account, error)
	GetAccountByName(name string) (*Account, error)
	AccountExists(name string) (bool, error)

	// Price Operations
	AddPrice(p Price) (int64, error)
	GetAllPrices() ([]*Price, error)

	// Transaction Operations
	CreateTransactionWithSplits(tx Transaction, splits []Split) (int64, error)
	GetTransactionByID(txID int64) (*Transaction, []*Split, error)
	GetAllTransactions(limit int) ([]*Transaction, error)

	Close() error
}
