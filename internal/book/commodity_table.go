package book

import (
	"sort"

	"github.com/hance08/weka/internal/model"
)

// CommodityTable holds every commodity the book knows about, indexed for
// the lookups the import parsers perform.
type CommodityTable struct {
	byUnique map[string]*model.Commodity
	byNS     map[string]map[string]*model.Commodity
}

func NewCommodityTable(commodities []*model.Commodity) *CommodityTable {
	t := &CommodityTable{
		byUnique: make(map[string]*model.Commodity),
		byNS:     make(map[string]map[string]*model.Commodity),
	}
	for _, c := range commodities {
		t.Insert(c)
	}
	return t
}

func (t *CommodityTable) Insert(c *model.Commodity) {
	t.byUnique[c.UniqueName()] = c
	ns, ok := t.byNS[c.Namespace]
	if !ok {
		ns = make(map[string]*model.Commodity)
		t.byNS[c.Namespace] = ns
	}
	ns[c.Mnemonic] = c
}

// LookupUnique finds a commodity by its table-wide unique name
// ("NAMESPACE::MNEMONIC"), or nil.
func (t *CommodityTable) LookupUnique(uniqueName string) *model.Commodity {
	return t.byUnique[uniqueName]
}

// Lookup finds a commodity by namespace and mnemonic, or nil.
func (t *CommodityTable) Lookup(namespace, mnemonic string) *model.Commodity {
	ns, ok := t.byNS[namespace]
	if !ok {
		return nil
	}
	return ns[mnemonic]
}

// Namespaces lists all namespaces in sorted order so lookups that walk the
// table are deterministic.
func (t *CommodityTable) Namespaces() []string {
	names := make([]string, 0, len(t.byNS))
	for ns := range t.byNS {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}
