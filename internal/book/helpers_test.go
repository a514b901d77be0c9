package book_test

import (
	"github.com/hance08/weka/internal/model"
	"github.com/hance08/weka/internal/store"
)

var (
	usd = &model.Commodity{Namespace: model.NamespaceCurrency, Mnemonic: "USD", FullName: "US Dollar", Fraction: 100}
	eur = &model.Commodity{Namespace: model.NamespaceCurrency, Mnemonic: "EUR", FullName: "Euro", Fraction: 100}
)

func usdLike(mnemonic string) *model.Commodity {
	return &model.Commodity{Namespace: model.NamespaceCurrency, Mnemonic: mnemonic, Fraction: 100}
}

// fakeRepo is an in-memory store.Repository for book tests. Reads serve
// the seeded rows; writes record what they were given.
type fakeRepo struct {
	commodities []*store.Commodity
	accounts    []*store.Account
	prices      []*store.Price

	committedTx     []store.Transaction
	committedSplits [][]store.Split
	nextTxID        int64
	commitErr       error
}

func (r *fakeRepo) CreateCommodity(namespace, mnemonic, fullName string, fraction int64) (int64, error) {
	row := &store.Commodity{
		ID:        int64(len(r.commodities) + 1),
		Namespace: namespace, Mnemonic: mnemonic, FullName: fullName, Fraction: fraction,
	}
	r.commodities = append(r.commodities, row)
	return row.ID, nil
}

func (r *fakeRepo) GetAllCommodities() ([]*store.Commodity, error) { return r.commodities, nil }

func (r *fakeRepo) CreateAccount(name, accType, commodityNS, commodityMnemonic, description string, parentID *int64) (int64, error) {
	row := &store.Account{
		ID:   int64(len(r.accounts) + 1),
		Name: name, Type: accType,
		CommodityNS: commodityNS, CommodityMnemonic: commodityMnemonic,
		Description: description, ParentID: parentID,
	}
	r.accounts = append(r.accounts, row)
	return row.ID, nil
}

func (r *fakeRepo) GetAllAccounts() ([]*store.Account, error) { return r.accounts, nil }

func (r *fakeRepo) GetAccountByName(name string) (*store.Account, error) {
	for _, a := range r.accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

func (r *fakeRepo) AccountExists(name string) (bool, error) {
	_, err := r.GetAccountByName(name)
	return err == nil, nil
}

func (r *fakeRepo) AddPrice(p store.Price) (int64, error) {
	p.ID = int64(len(r.prices) + 1)
	r.prices = append(r.prices, &p)
	return p.ID, nil
}

func (r *fakeRepo) GetAllPrices() ([]*store.Price, error) { return r.prices, nil }

func (r *fakeRepo) CreateTransactionWithSplits(tx store.Transaction, splits []store.Split) (int64, error) {
	if r.commitErr != nil {
		return 0, r.commitErr
	}
	r.nextTxID++
	r.committedTx = append(r.committedTx, tx)
	r.committedSplits = append(r.committedSplits, splits)
	return r.nextTxID, nil
}

func (r *fakeRepo) GetTransactionByID(txID int64) (*store.Transaction, []*store.Split, error) {
	return nil, nil, store.ErrRecordNotFound
}

func (r *fakeRepo) GetAllTransactions(limit int) ([]*store.Transaction, error) { return nil, nil }

func (r *fakeRepo) Close() error { return nil }
