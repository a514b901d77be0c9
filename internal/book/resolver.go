package book

import (
	"github.com/hance08/weka/internal/model"
)

// AccountResolver maps import field values to accounts. An import-session
// alias table is consulted before the full-name lookup against the book,
// so users can map statement labels onto ledger accounts.
type AccountResolver struct {
	book    *Book
	aliases map[string]*model.Account
}

func (b *Book) NewAccountResolver() *AccountResolver {
	return &AccountResolver{
		book:    b,
		aliases: make(map[string]*model.Account),
	}
}

// AddAlias registers alias as a session-scoped name for the account with
// the given full name. Unresolvable targets are reported to the caller.
func (r *AccountResolver) AddAlias(alias, fullName string) bool {
	acct := r.book.AccountByName(fullName)
	if acct == nil {
		return false
	}
	r.aliases[alias] = acct
	return true
}

// Resolve returns the account for name, or nil when neither the alias
// table nor the book knows it.
func (r *AccountResolver) Resolve(name string) *model.Account {
	if acct, ok := r.aliases[name]; ok {
		return acct
	}
	return r.book.AccountByName(name)
}
