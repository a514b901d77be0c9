package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/model"
	"github.com/hance08/weka/internal/store"
)

type AccountService struct {
	repo   store.Repository
	config *config.Config
}

func NewAccountService(repo store.Repository, cfg *config.Config) *AccountService {
	return &AccountService{repo: repo, config: cfg}
}

// CreateAccount validates and creates an account denominated in the given
// commodity ("NS::MNEMONIC" or a bare currency mnemonic).
func (as *AccountService) CreateAccount(name, accType, commodity, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("account name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return 0, fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}

	switch accType {
	case constants.TypeAsset, constants.TypeLiability, constants.TypeEquity,
		constants.TypeRevenue, constants.TypeExpense:
	default:
		return 0, fmt.Errorf("unknown account type %q (want A, L, C, R or E)", accType)
	}

	exists, err := as.repo.AccountExists(name)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("account '%s': %w", name, store.ErrAccountExists)
	}

	ns, mnemonic := splitCommodityName(commodity)
	if mnemonic == "" {
		mnemonic = as.config.Defaults.Currency
	}

	return as.repo.CreateAccount(name, accType, ns, mnemonic, description, nil)
}

// CreateCommodity registers a commodity; an empty namespace means currency.
func (as *AccountService) CreateCommodity(namespace, mnemonic, fullName string, fraction int64) (int64, error) {
	if namespace == "" {
		namespace = model.NamespaceCurrency
	}
	if mnemonic == "" {
		return 0, fmt.Errorf("commodity mnemonic can't be empty")
	}
	if fraction <= 0 {
		fraction = 100
	}
	return as.repo.CreateCommodity(namespace, mnemonic, fullName, fraction)
}

func (as *AccountService) GetAllAccounts() ([]*store.Account, error) {
	return as.repo.GetAllAccounts()
}

func (as *AccountService) GetAllCommodities() ([]*store.Commodity, error) {
	return as.repo.GetAllCommodities()
}

func (as *AccountService) AddPrice(p store.Price) (int64, error) {
	value, err := decimal.NewFromString(p.Value)
	if err != nil {
		return 0, fmt.Errorf("invalid price value %q: %w", p.Value, err)
	}
	if !value.IsPositive() {
		return 0, fmt.Errorf("price value must be positive, got %q", p.Value)
	}
	if p.CommodityNS == "" {
		p.CommodityNS = model.NamespaceCurrency
	}
	if p.CurrencyNS == "" {
		p.CurrencyNS = model.NamespaceCurrency
	}
	return as.repo.AddPrice(p)
}

func (as *AccountService) GetAllPrices() ([]*store.Price, error) {
	return as.repo.GetAllPrices()
}

func splitCommodityName(commodity string) (namespace, mnemonic string) {
	if ns, mn, ok := strings.Cut(commodity, "::"); ok {
		return ns, mn
	}
	return model.NamespaceCurrency, commodity
}
