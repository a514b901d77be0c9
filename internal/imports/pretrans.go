package imports

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/hance08/weka/internal/model"
)

// PreTrans accumulates the transaction-scoped properties harvested from
// import rows. Each Set parses and validates immediately; the last failure
// per property is kept in an error map that successful re-sets clear.
type PreTrans struct {
	commodities CommodityTable
	dateFormat  int
	multiSplit  bool

	uniqueID   *string
	date       *time.Time
	num        *string
	desc       *string
	notes      *string
	commodity  *model.Commodity
	voidReason *string

	created bool
	errors  map[PropType]string
}

func NewPreTrans(commodities CommodityTable, dateFormat int, multiSplit bool) *PreTrans {
	return &PreTrans{
		commodities: commodities,
		dateFormat:  dateFormat,
		multiSplit:  multiSplit,
		errors:      make(map[PropType]string),
	}
}

func (p *PreTrans) SetDateFormat(dateFormat int) { p.dateFormat = dateFormat }
func (p *PreTrans) SetMultiSplit(multiSplit bool) { p.multiSplit = multiSplit }

// Set assigns the raw value to the given transaction property. An empty
// value clears the property; for date and description an empty value is
// additionally an error unless the importer runs in multi-split mode, where
// continuation rows legitimately leave them blank. Failures are recorded
// against the property and returned wrapped with its display name.
func (p *PreTrans) Set(prop PropType, value string) error {
	// Drop any existing error for the property we're about to set
	delete(p.errors, prop)

	var err error
	switch prop {
	case PropUniqueID:
		p.uniqueID = optStr(value)

	case PropDate:
		p.date = nil
		if value != "" {
			var date time.Time
			if date, err = ParseDate(value, p.dateFormat); err == nil {
				p.date = &date
			}
		} else if !p.multiSplit {
			err = fmt.Errorf("%w (date can not be empty if multi-split is unset)", ErrMissingRequiredField)
		}

	case PropNum:
		p.num = optStr(value)

	case PropDescription:
		p.desc = nil
		if value != "" {
			p.desc = &value
		} else if !p.multiSplit {
			err = fmt.Errorf("%w (description can not be empty if multi-split is unset)", ErrMissingRequiredField)
		}

	case PropNotes:
		p.notes = optStr(value)

	case PropCommodity:
		p.commodity = nil
		var comm *model.Commodity
		if comm, err = ParseCommodity(value, p.commodities); err == nil {
			p.commodity = comm
		}

	case PropVoidReason:
		p.voidReason = optStr(value)

	default:
		pterm.Warning.Printfln("%q is an invalid property for a transaction", prop.String())
		return nil
	}

	if err != nil {
		wrapped := propError(prop, err)
		p.errors[prop] = wrapped.Error()
		return wrapped
	}
	return nil
}

// Reset clears a property by setting it to the empty string, suppressing
// any error an empty value would record.
func (p *PreTrans) Reset(prop PropType) {
	_ = p.Set(prop, "")
	delete(p.errors, prop)
}

// VerifyEssentials lists what is missing for the minimum viable
// transaction: a date and a description. It never mutates state.
func (p *PreTrans) VerifyEssentials() []string {
	var missing []string
	if p.date == nil {
		missing = append(missing, "No valid date.")
	}
	if p.desc == nil {
		missing = append(missing, "No valid description.")
	}
	return missing
}

// CreateTrans builds the transaction header on a fresh ledger edit and
// wraps it in a draft. It declines (returning nil) when the essentials are
// not satisfied or when this PreTrans already created its transaction.
// If the harvested commodity is a currency it becomes the transaction
// currency, otherwise the fallback currency does.
func (p *PreTrans) CreateTrans(ledger Ledger, currency *model.Commodity) *DraftTransaction {
	if p.created {
		return nil
	}

	// Gently refuse to create the transaction if the basics are not set
	// correctly. This should have been tested before calling this though.
	if check := p.VerifyEssentials(); len(check) > 0 {
		pterm.Warning.Printfln("Not creating transaction because essentials not set properly: %s",
			strings.Join(check, " "))
		return nil
	}

	trans := ledger.BeginTransaction()

	if p.commodity != nil && p.commodity.IsCurrency() {
		trans.SetCurrency(p.commodity)
	} else {
		trans.SetCurrency(currency)
	}
	trans.SetDatePosted(*p.date)

	if p.num != nil {
		trans.SetNum(*p.num)
	}
	if p.desc != nil {
		trans.SetDescription(*p.desc)
	}
	if p.notes != nil {
		trans.SetNotes(*p.notes)
	}

	p.created = true
	draft := NewDraftTransaction(trans)
	draft.VoidReason = p.voidReason
	return draft
}

// IsPartOf checks whether the harvested properties of this instance match
// those of another one (the "parent"). Note this predicate is *not*
// symmetrical: a property left unset here matches whatever the parent
// holds, so a fully empty instance is part of any parent. It exists to
// discover multi-split transaction rows, where the first row defines the
// transaction and subsequent rows only add splits.
//
// A parent with any recorded error can never be matched.
func (p *PreTrans) IsPartOf(parent *PreTrans) bool {
	if parent == nil {
		return false
	}

	return matchStr(p.uniqueID, parent.uniqueID) &&
		matchDate(p.date, parent.date) &&
		matchStr(p.num, parent.num) &&
		matchStr(p.desc, parent.desc) &&
		matchStr(p.notes, parent.notes) &&
		matchCommodity(p.commodity, parent.commodity) &&
		matchStr(p.voidReason, parent.voidReason) &&
		len(parent.errors) == 0
}

// VoidReason returns the harvested void reason, if any.
func (p *PreTrans) VoidReason() *string { return p.voidReason }

// Errors returns the per-property error map. The caller may inspect it
// instead of reacting to Set failures row by row.
func (p *PreTrans) Errors() map[PropType]string {
	out := make(map[PropType]string, len(p.errors))
	for k, v := range p.errors {
		out[k] = v
	}
	return out
}

func optStr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// matchStr implements the one-sided comparison IsPartOf builds on: an unset
// value matches anything, a set value requires an equal parent value.
func matchStr(val, parent *string) bool {
	if val == nil {
		return true
	}
	return parent != nil && *val == *parent
}

func matchDate(val, parent *time.Time) bool {
	if val == nil {
		return true
	}
	return parent != nil && val.Equal(*parent)
}

func matchCommodity(val, parent *model.Commodity) bool {
	if val == nil {
		return true
	}
	return val.Equiv(parent)
}
