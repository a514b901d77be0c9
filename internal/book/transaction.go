package book

import (
	"fmt"
	"time"

	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
	"github.com/hance08/weka/internal/store"
)

// Transaction is a not-yet-committed ledger transaction under edit. It is
// exclusively owned by its creator until Commit hands it to the store or
// Destroy abandons it; both close the edit exactly once.
type Transaction struct {
	book *Book

	currency    *model.Commodity
	datePosted  time.Time
	num         string
	description string
	notes       string
	voidReason  string
	splits      []imports.SplitRecord

	open      bool
	committed bool
}

// NewTransaction opens an edit on a fresh in-memory transaction that is not
// attached to a book. Commit requires a book; tests use this directly.
func NewTransaction() *Transaction {
	return &Transaction{open: true}
}

func (t *Transaction) SetCurrency(c *model.Commodity) { t.currency = c }
func (t *Transaction) SetDatePosted(d time.Time)      { t.datePosted = d }
func (t *Transaction) SetNum(num string)              { t.num = num }
func (t *Transaction) SetDescription(desc string)     { t.description = desc }
func (t *Transaction) SetNotes(notes string)          { t.notes = notes }
func (t *Transaction) SetVoidReason(reason string)    { t.voidReason = reason }

func (t *Transaction) Currency() *model.Commodity { return t.currency }
func (t *Transaction) DatePosted() time.Time      { return t.datePosted }
func (t *Transaction) Description() string        { return t.description }
func (t *Transaction) VoidReason() string         { return t.voidReason }
func (t *Transaction) Splits() []imports.SplitRecord { return t.splits }

// AppendSplit adds one leg to the open transaction.
func (t *Transaction) AppendSplit(s imports.SplitRecord) {
	t.splits = append(t.splits, s)
}

// Open reports whether the edit is still open (neither committed nor
// destroyed).
func (t *Transaction) Open() bool { return t.open }

// Commit closes the edit and persists the transaction with its splits.
func (t *Transaction) Commit() (int64, error) {
	if !t.open {
		return 0, fmt.Errorf("transaction edit is not open")
	}
	if t.book == nil {
		return 0, fmt.Errorf("transaction is not attached to a book")
	}

	currency := ""
	if t.currency != nil {
		currency = t.currency.Mnemonic
	}

	row := store.Transaction{
		Timestamp:   t.datePosted.Unix(),
		Num:         t.num,
		Description: t.description,
		Notes:       t.notes,
		Currency:    currency,
		VoidReason:  t.voidReason,
	}

	var splits []store.Split
	for _, s := range t.splits {
		if s.Account == nil {
			return 0, fmt.Errorf("split has no account")
		}
		sr := store.Split{
			AccountID: s.Account.ID,
			Amount:    s.Amount.String(),
			Value:     s.Value.String(),
			Memo:      s.Memo,
			Action:    s.Action,
			RecState:  s.RecState.String(),
		}
		if s.RecDate != nil {
			sr.RecDate = s.RecDate.Unix()
		}
		splits = append(splits, sr)
	}

	id, err := t.book.repo.CreateTransactionWithSplits(row, splits)
	if err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.open = false
	t.committed = true
	return id, nil
}

// Destroy abandons the open edit.
func (t *Transaction) Destroy() {
	if !t.open {
		return
	}
	t.open = false
	t.splits = nil
}
