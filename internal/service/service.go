package service

import (
	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/store"
)

type Service struct {
	Account *AccountService
	Import  *ImportService
}

func NewService(repo store.Repository, ledger *book.Book, cfg *config.Config) *Service {
	return &Service{
		Account: NewAccountService(repo, cfg),
		Import:  NewImportService(repo, ledger, cfg),
	}
}
