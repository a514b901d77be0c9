package imports_test

import (
	"sort"
	"time"

	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
)

// fakeTable is an in-memory CommodityTable for parser and bag tests.
type fakeTable struct {
	commodities []*model.Commodity
}

func newFakeTable(commodities ...*model.Commodity) *fakeTable {
	return &fakeTable{commodities: commodities}
}

func (t *fakeTable) LookupUnique(uniqueName string) *model.Commodity {
	for _, c := range t.commodities {
		if c.UniqueName() == uniqueName {
			return c
		}
	}
	return nil
}

func (t *fakeTable) Lookup(namespace, mnemonic string) *model.Commodity {
	for _, c := range t.commodities {
		if c.Namespace == namespace && c.Mnemonic == mnemonic {
			return c
		}
	}
	return nil
}

func (t *fakeTable) Namespaces() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range t.commodities {
		if !seen[c.Namespace] {
			seen[c.Namespace] = true
			names = append(names, c.Namespace)
		}
	}
	sort.Strings(names)
	return names
}

// fakeResolver resolves accounts from a fixed name map.
type fakeResolver struct {
	accounts map[string]*model.Account
}

func newFakeResolver(accounts ...*model.Account) *fakeResolver {
	r := &fakeResolver{accounts: make(map[string]*model.Account)}
	for _, a := range accounts {
		r.accounts[a.Name] = a
	}
	return r
}

func (r *fakeResolver) Resolve(name string) *model.Account {
	return r.accounts[name]
}

// fakeQuoter serves a fixed price list; an empty list means no price found.
type fakeQuoter struct {
	prices []imports.Price
}

func (q *fakeQuoter) NearestInTime(commodity, currency *model.Commodity, t time.Time) (imports.Price, bool) {
	for _, p := range q.prices {
		forward := p.Commodity.Equiv(commodity) && p.Currency.Equiv(currency)
		reverse := p.Commodity.Equiv(currency) && p.Currency.Equiv(commodity)
		if forward || reverse {
			return p, true
		}
	}
	return imports.Price{}, false
}

// fakeLedger hands out unattached in-memory transaction edits.
type fakeLedger struct{}

func (fakeLedger) BeginTransaction() imports.LedgerTransaction {
	return book.NewTransaction()
}
