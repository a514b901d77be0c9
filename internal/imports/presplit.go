package imports

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/model"
)

// PreSplit accumulates the split-scoped properties harvested from import
// rows, both for the main side and the transfer side of a single-line
// (two-split) row. Amount-like properties additionally support Add so
// several input columns can contribute to one semantic amount.
type PreSplit struct {
	accounts       AccountResolver
	prices         PriceQuoter
	dateFormat     int
	currencyFormat int

	action     *string
	account    *model.Account
	amount     *decimal.Decimal
	amountNeg  *decimal.Decimal
	price      *decimal.Decimal
	memo       *string
	recState   *model.RecState
	recDate    *time.Time
	taction    *string
	taccount   *model.Account
	tamount    *decimal.Decimal
	tamountNeg *decimal.Decimal
	tmemo      *string
	trecState  *model.RecState
	trecDate   *time.Time

	created bool
	errors  map[PropType]string
}

func NewPreSplit(accounts AccountResolver, prices PriceQuoter, dateFormat, currencyFormat int) *PreSplit {
	return &PreSplit{
		accounts:       accounts,
		prices:         prices,
		dateFormat:     dateFormat,
		currencyFormat: currencyFormat,
		errors:         make(map[PropType]string),
	}
}

func (p *PreSplit) SetDateFormat(dateFormat int)         { p.dateFormat = dateFormat }
func (p *PreSplit) SetCurrencyFormat(currencyFormat int) { p.currencyFormat = currencyFormat }

// Account returns the resolved main-side account, if any.
func (p *PreSplit) Account() *model.Account { return p.account }

// SetAccount overrides the main-side account with an already resolved one.
func (p *PreSplit) SetAccount(acct *model.Account) { p.account = acct }

// Set assigns the raw value to the given split property. Account-like
// properties must be non-empty and resolvable; amount-like properties and
// the price go through the monetary parser; reconcile dates are optional.
// Failures are recorded against the property and returned wrapped with its
// display name.
func (p *PreSplit) Set(prop PropType, value string) error {
	// Drop any existing error for the property we're about to set
	delete(p.errors, prop)

	var err error
	switch prop {
	case PropAction:
		p.action = optStr(value)

	case PropTAction:
		p.taction = optStr(value)

	case PropAccount:
		p.account = nil
		if value == "" {
			err = fmt.Errorf("%w (account value can't be empty)", ErrMissingRequiredField)
		} else if acct := p.accounts.Resolve(value); acct != nil {
			p.account = acct
		} else {
			err = fmt.Errorf("%w (account %q)", ErrUnresolvableReference, value)
		}

	case PropTAccount:
		p.taccount = nil
		if value == "" {
			err = fmt.Errorf("%w (transfer account value can't be empty)", ErrMissingRequiredField)
		} else if acct := p.accounts.Resolve(value); acct != nil {
			p.taccount = acct
		} else {
			err = fmt.Errorf("%w (transfer account %q)", ErrUnresolvableReference, value)
		}

	case PropMemo:
		p.memo = optStr(value)

	case PropTMemo:
		p.tmemo = optStr(value)

	case PropAmount:
		p.amount, err = p.parseAmount(value)

	case PropAmountNeg:
		p.amountNeg, err = p.parseAmount(value)

	case PropTAmount:
		p.tamount, err = p.parseAmount(value)

	case PropTAmountNeg:
		p.tamountNeg, err = p.parseAmount(value)

	case PropPrice:
		// While a price is not strictly a currency it will likely use the
		// same decimal point convention, so parse it the same way.
		p.price, err = p.parseAmount(value)

	case PropRecState:
		p.recState = nil
		var state model.RecState
		if state, err = ParseReconciled(value); err == nil {
			p.recState = &state
		}

	case PropTRecState:
		p.trecState = nil
		var state model.RecState
		if state, err = ParseReconciled(value); err == nil {
			p.trecState = &state
		}

	case PropRecDate:
		p.recDate, err = p.parseOptDate(value)

	case PropTRecDate:
		p.trecDate, err = p.parseOptDate(value)

	default:
		pterm.Warning.Printfln("%q is an invalid property for a split", prop.String())
		return nil
	}

	if err != nil {
		wrapped := propError(prop, err)
		p.errors[prop] = wrapped.Error()
		return wrapped
	}
	return nil
}

func (p *PreSplit) parseAmount(value string) (*decimal.Decimal, error) {
	val, err := ParseMonetary(value, p.currencyFormat)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

func (p *PreSplit) parseOptDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := ParseDate(value, p.dateFormat)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// Reset clears a property by setting it to the empty string, suppressing
// any error an empty value would record.
func (p *PreSplit) Reset(prop PropType) {
	_ = p.Set(prop, "")
	delete(p.errors, prop)
}

// Add parses the raw value and accumulates it into the property by exact
// addition. Only the amount-like properties support accumulation; the
// first call seeds the value.
func (p *PreSplit) Add(prop PropType, value string) error {
	// Drop any existing error for the property we're about to add to
	delete(p.errors, prop)

	accumulate := func(slot **decimal.Decimal) error {
		val, err := ParseMonetary(value, p.currencyFormat)
		if err != nil {
			return err
		}
		if *slot != nil {
			val = val.Add(**slot)
		}
		*slot = &val
		return nil
	}

	var err error
	switch prop {
	case PropAmount:
		err = accumulate(&p.amount)
	case PropAmountNeg:
		err = accumulate(&p.amountNeg)
	case PropTAmount:
		err = accumulate(&p.tamount)
	case PropTAmountNeg:
		err = accumulate(&p.tamountNeg)
	default:
		pterm.Warning.Printfln("%q can't be used to add values in a split", prop.String())
		return nil
	}

	if err != nil {
		wrapped := propError(prop, err)
		p.errors[prop] = wrapped.Error()
		return wrapped
	}
	return nil
}

// VerifyEssentials lists what is missing for the minimum viable split: an
// amount or negated amount, and a reconcile date whenever the matching
// reconcile state is fully reconciled. It never mutates state.
func (p *PreSplit) VerifyEssentials() []string {
	var missing []string

	if p.amount == nil && p.amountNeg == nil {
		missing = append(missing, "No amount or negated amount column.")
	}
	if p.recState != nil && *p.recState == model.RecReconciled && p.recDate == nil {
		missing = append(missing, "Split is reconciled but reconcile date column is missing or invalid.")
	}
	if p.trecState != nil && *p.trecState == model.RecReconciled && p.trecDate == nil {
		missing = append(missing, "Transfer split is reconciled but transfer reconcile date column is missing or invalid.")
	}

	return missing
}

// Errors returns the per-property error map.
func (p *PreSplit) Errors() map[PropType]string {
	out := make(map[PropType]string, len(p.errors))
	for k, v := range p.errors {
		out[k] = v
	}
	return out
}

// Created reports whether CreateSplit already produced splits on a draft.
func (p *PreSplit) Created() bool { return p.created }

// netAmount folds an amount/negated-amount pair into one signed value,
// treating absent components as zero. Returns nil when both are absent.
func netAmount(pos, neg *decimal.Decimal) *decimal.Decimal {
	if pos == nil && neg == nil {
		return nil
	}
	net := decimal.Zero
	if pos != nil {
		net = net.Add(*pos)
	}
	if neg != nil {
		net = net.Sub(*neg)
	}
	return &net
}

// CreateSplit creates one or two splits on the draft transaction.
//
// The main split's value in transaction currency is derived from, in order:
// the amount itself (same commodity), the negated transfer amount (transfer
// side in transaction currency), an explicit price, or the nearest-in-time
// price from the price history. If no conversion can be found the split is
// not created at all.
//
// A transfer account present means a single-line two-split row: the
// transfer split balances the main one. When its amount can't be
// determined either, the transfer-side details are stashed on the draft
// for the generic matcher to complete later.
func (p *PreSplit) CreateSplit(draft *DraftTransaction) {
	if p.created {
		return
	}

	// Gently refuse to create the split if the basics are not set
	// correctly. This should have been tested before calling this though.
	if check := p.VerifyEssentials(); len(check) > 0 {
		pterm.Warning.Printfln("Not creating split because essentials not set properly: %s",
			strings.Join(check, " "))
		return
	}

	amount := decimal.Zero
	if net := netAmount(p.amount, p.amountNeg); net != nil {
		amount = *net
	}
	tamount := netAmount(p.tamount, p.tamountNeg)

	transCurr := draft.Trans.Currency()
	var acctComm *model.Commodity
	if p.account != nil {
		acctComm = p.account.Commodity
	}

	var value decimal.Decimal
	switch {
	case acctComm.Equiv(transCurr):
		value = amount

	case tamount != nil && p.taccount != nil && p.taccount.Commodity.Equiv(transCurr):
		value = tamount.Neg()

	case p.price != nil && !p.price.IsZero():
		value = amount.Mul(*p.price)

	default:
		// No usable price in the import data, look up the nearest in time.
		// A zero price can never convert back, treat it as absent.
		price, ok := p.prices.NearestInTime(acctComm, transCurr, draft.Trans.DatePosted())
		if !ok || price.Value.IsZero() {
			pterm.Error.Println("No price found, can't create this split.")
			return
		}
		value = amount.Mul(conversionRate(transCurr, price))
	}

	// Add a split with the cumulative amount and derived value.
	draft.Trans.AppendSplit(p.splitRecord(p.account, amount, value))
	splitsCreated := 1

	if p.taccount != nil {
		// A transfer account forcibly means a single-line transaction.
		// Determine the transfer amount: use the harvested columns if the
		// file had them, otherwise derive it. The single-currency case is
		// just the negated value; multi-currency goes through a price.
		tvalue := value.Neg()
		if tamount == nil {
			switch {
			case p.taccount.Commodity.Equiv(transCurr):
				tamount = &tvalue

			case p.price != nil && !p.price.IsZero():
				derived := tvalue.Div(*p.price)
				tamount = &derived

			default:
				price, ok := p.prices.NearestInTime(p.taccount.Commodity, transCurr, draft.Trans.DatePosted())
				if ok && !price.Value.IsZero() {
					derived := tvalue.Div(conversionRate(transCurr, price))
					tamount = &derived
				} else {
					pterm.Warning.Println("No price found, defer creation of second split to generic import matcher.")
				}
			}
		}
		if tamount != nil {
			draft.Trans.AppendSplit(p.transferSplitRecord(p.taccount, *tamount, tvalue))
			splitsCreated++
		}
	}

	if splitsCreated == 1 {
		// Either multi-line mode, or single-line mode without enough detail
		// to build the transfer split. Pass what we know about the transfer
		// side on so the generic matcher can ask for the final details.
		draft.PendingPrice = p.price
		draft.PendingTAction = p.taction
		draft.PendingTMemo = p.tmemo
		draft.PendingTAmount = tamount
		draft.PendingTAccount = p.taccount
		draft.PendingTRecState = p.trecState
		draft.PendingTRecDate = p.trecDate
	}

	p.created = true
}

func (p *PreSplit) splitRecord(acct *model.Account, amount, value decimal.Decimal) SplitRecord {
	return newSplitRecord(acct, amount, value, p.action, p.memo, p.recState, p.recDate)
}

func (p *PreSplit) transferSplitRecord(acct *model.Account, amount, value decimal.Decimal) SplitRecord {
	return newSplitRecord(acct, amount, value, p.taction, p.tmemo, p.trecState, p.trecDate)
}

func newSplitRecord(acct *model.Account, amount, value decimal.Decimal,
	action, memo *string, recState *model.RecState, recDate *time.Time) SplitRecord {

	rec := SplitRecord{
		Account:  acct,
		Amount:   amount,
		Value:    value,
		RecState: model.RecNotReconciled,
	}
	if action != nil {
		rec.Action = *action
	}
	if memo != nil {
		rec.Memo = *memo
	}
	if recState != nil {
		rec.RecState = *recState
	}
	if recState != nil && *recState == model.RecReconciled && recDate != nil {
		rec.RecDate = recDate
	}
	return rec
}
