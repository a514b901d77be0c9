package imports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/model"
)

// AccountResolver maps an import field value to an account, trying an
// import-session alias table before the full-path lookup against the book.
type AccountResolver interface {
	Resolve(name string) *model.Account
}

// CommodityTable is the read-only commodity lookup surface the parsers need.
// Namespaces must iterate in a deterministic order.
type CommodityTable interface {
	LookupUnique(uniqueName string) *model.Commodity
	Lookup(namespace, mnemonic string) *model.Commodity
	Namespaces() []string
}

// Price is one price-history record: Value units of Currency buy one unit
// of Commodity.
type Price struct {
	Commodity *model.Commodity
	Currency  *model.Commodity
	Value     decimal.Decimal
	Time      time.Time
}

// PriceQuoter looks up the price-history record for a commodity pair
// closest in time to the given timestamp.
type PriceQuoter interface {
	NearestInTime(commodity, currency *model.Commodity, t time.Time) (Price, bool)
}

// SplitRecord carries the fields of one split leg to the ledger.
type SplitRecord struct {
	Account  *model.Account
	Amount   decimal.Decimal
	Value    decimal.Decimal
	Action   string
	Memo     string
	RecState model.RecState
	RecDate  *time.Time
}

// LedgerTransaction is an open edit on a not-yet-committed ledger
// transaction. The import engine owns it through a DraftTransaction until
// the edit is either handed off or destroyed.
type LedgerTransaction interface {
	SetCurrency(c *model.Commodity)
	SetDatePosted(d time.Time)
	SetNum(num string)
	SetDescription(desc string)
	SetNotes(notes string)
	SetVoidReason(reason string)
	Currency() *model.Commodity
	DatePosted() time.Time
	AppendSplit(s SplitRecord)
	Commit() (int64, error)
	Destroy()
}

// Ledger allocates transaction edits.
type Ledger interface {
	BeginTransaction() LedgerTransaction
}
