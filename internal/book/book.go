package book

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
	"github.com/hance08/weka/internal/store"
)

// Book aggregates the ledger-side collaborators the import engine consults:
// the commodity table, the price history and account lookup, all loaded
// from the repository, plus the factory for open transaction edits.
type Book struct {
	repo        store.Repository
	commodities *CommodityTable
	prices      *PriceDB
	accounts    map[string]*model.Account
}

// Open loads the book state from the repository.
func Open(repo store.Repository) (*Book, error) {
	b := &Book{repo: repo}

	rows, err := repo.GetAllCommodities()
	if err != nil {
		return nil, fmt.Errorf("failed to load commodities: %w", err)
	}
	var commodities []*model.Commodity
	for _, row := range rows {
		commodities = append(commodities, &model.Commodity{
			Namespace: row.Namespace,
			Mnemonic:  row.Mnemonic,
			FullName:  row.FullName,
			Fraction:  row.Fraction,
		})
	}
	b.commodities = NewCommodityTable(commodities)

	accRows, err := repo.GetAllAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	b.accounts = make(map[string]*model.Account, len(accRows))
	for _, row := range accRows {
		acct := &model.Account{
			ID:          row.ID,
			Name:        row.Name,
			Type:        row.Type,
			ParentID:    row.ParentID,
			Description: row.Description,
			IsHidden:    row.IsHidden,
		}
		acct.Commodity = b.commodities.Lookup(row.CommodityNS, row.CommodityMnemonic)
		b.accounts[acct.Name] = acct
	}

	priceRows, err := repo.GetAllPrices()
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	b.prices = NewPriceDB(nil)
	for _, row := range priceRows {
		comm := b.commodities.Lookup(row.CommodityNS, row.CommodityMnemonic)
		curr := b.commodities.Lookup(row.CurrencyNS, row.CurrencyMnemonic)
		if comm == nil || curr == nil {
			continue
		}
		value, err := decimal.NewFromString(row.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", row.Value, err)
		}
		b.prices.Add(imports.Price{
			Commodity: comm,
			Currency:  curr,
			Value:     value,
			Time:      time.Unix(row.Timestamp, 0).UTC(),
		})
	}

	return b, nil
}

// NewTransaction opens an edit on a fresh transaction attached to this book.
func (b *Book) NewTransaction() *Transaction {
	tx := NewTransaction()
	tx.book = b
	return tx
}

// BeginTransaction satisfies the import engine's Ledger contract.
func (b *Book) BeginTransaction() imports.LedgerTransaction {
	return b.NewTransaction()
}

func (b *Book) Commodities() *CommodityTable { return b.commodities }
func (b *Book) Prices() *PriceDB             { return b.prices }

// AccountByName returns the account with the given full colon-separated
// name, or nil.
func (b *Book) AccountByName(name string) *model.Account {
	return b.accounts[name]
}

// Currency resolves a currency mnemonic against the commodity table.
func (b *Book) Currency(mnemonic string) *model.Commodity {
	return b.commodities.Lookup(model.NamespaceCurrency, mnemonic)
}
