package imports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/model"
)

// DraftTransaction is the final form of an imported transaction before it
// is passed on to the generic matcher.
//
// Trans is a possibly incomplete transaction built from the PreTrans and
// PreSplit data. The Pending* fields hold values harvested in single-line
// mode for which the transfer split could not yet be created (usually a
// missing or unconvertible transfer amount); the matcher can use them to
// complete the balancing split later.
//
// The draft exclusively owns the open transaction edit until Finalize hands
// it off or Release abandons it.
type DraftTransaction struct {
	Trans LedgerTransaction

	PendingPrice     *decimal.Decimal
	PendingTAction   *string
	PendingTMemo     *string
	PendingTAmount   *decimal.Decimal
	PendingTAccount  *model.Account
	PendingTRecState *model.RecState
	PendingTRecDate  *time.Time

	VoidReason *string

	finalized bool
	released  bool
}

func NewDraftTransaction(trans LedgerTransaction) *DraftTransaction {
	return &DraftTransaction{Trans: trans}
}

// HasPendingTransfer reports whether transfer-side hints were stashed for
// the matcher to complete the balancing split.
func (d *DraftTransaction) HasPendingTransfer() bool {
	return d.PendingTAccount != nil || d.PendingTAmount != nil ||
		d.PendingPrice != nil || d.PendingTAction != nil ||
		d.PendingTMemo != nil || d.PendingTRecState != nil ||
		d.PendingTRecDate != nil
}

// Finalize releases ownership of the underlying transaction to the caller.
// The draft will no longer destroy it on Release.
func (d *DraftTransaction) Finalize() LedgerTransaction {
	d.finalized = true
	return d.Trans
}

// Release abandons the draft. If the transaction was never finalized its
// open edit is destroyed; releasing twice is a no-op.
func (d *DraftTransaction) Release() {
	if d.released {
		return
	}
	d.released = true
	if !d.finalized && d.Trans != nil {
		d.Trans.Destroy()
	}
}
