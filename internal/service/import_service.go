package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
	"github.com/hance08/weka/internal/store"
)

// ImportOptions configures one import run. The zero-valued formats fall
// back to the config defaults.
type ImportOptions struct {
	DateFormat       int
	CurrencyFormat   int
	MultiSplit       bool
	FallbackCurrency string            // transaction currency when no commodity column decides
	BaseAccount      string            // main-side account when no account column is mapped
	Aliases          map[string]string // import-session account aliases
}

// RowError records why an input row (or the transaction it belongs to)
// could not be imported.
type RowError struct {
	Row      int // 1-based input row
	Messages []string
}

// DeferredTransaction describes a draft whose balancing split could not be
// created; the pending transfer-side details are what a matching step
// would need to complete it.
type DeferredTransaction struct {
	Row         int
	Description string
	TAccount    string
	TAmount     *decimal.Decimal
	Price       *decimal.Decimal
}

// ImportResult summarizes one import run.
type ImportResult struct {
	RunID          string
	RowsRead       int
	TransactionIDs []int64
	Deferred       []DeferredTransaction
	Failed         []RowError
}

type ImportService struct {
	repo   store.Repository
	ledger *book.Book
	config *config.Config
}

func NewImportService(repo store.Repository, ledger *book.Book, cfg *config.Config) *ImportService {
	return &ImportService{repo: repo, ledger: ledger, config: cfg}
}

// txGroup is one logical transaction: the header bag of its first row plus
// one split bag per contributing row.
type txGroup struct {
	row      int
	pretrans *imports.PreTrans
	splits   []*splitRow
}

// pretrans is set on continuation rows only, so their transaction-level
// parse errors still surface; the head row's bag lives on txGroup.
type splitRow struct {
	row      int
	pretrans *imports.PreTrans
	presplit *imports.PreSplit
}

// ImportRows converts already-tokenized rows into ledger transactions
// according to the column mapping. Rows harvest into property bags first;
// in multi-split mode a row whose transaction properties are part of the
// previous row's continues that transaction. Groups that parse cleanly are
// built and committed; transactions whose balancing split cannot be valued
// are reported as deferred and not persisted.
func (is *ImportService) ImportRows(rows [][]string, mapping []imports.PropType, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{
		RunID:    uuid.NewString(),
		RowsRead: len(rows),
	}

	if err := validateMapping(mapping, opts); err != nil {
		return nil, err
	}

	fallback := is.ledger.Currency(opts.FallbackCurrency)
	if fallback == nil {
		return nil, fmt.Errorf("unknown fallback currency %q", opts.FallbackCurrency)
	}

	resolver := is.ledger.NewAccountResolver()
	for alias, target := range opts.Aliases {
		if !resolver.AddAlias(alias, target) {
			return nil, fmt.Errorf("alias %q points to unknown account %q", alias, target)
		}
	}

	var baseAccount *model.Account
	if opts.BaseAccount != "" {
		baseAccount = resolver.Resolve(opts.BaseAccount)
		if baseAccount == nil {
			return nil, fmt.Errorf("unknown base account %q", opts.BaseAccount)
		}
	}

	groups := is.harvest(rows, mapping, opts, resolver, baseAccount)

	for _, group := range groups {
		is.buildGroup(group, fallback, result)
	}

	return result, nil
}

func validateMapping(mapping []imports.PropType, opts ImportOptions) error {
	seen := make(map[imports.PropType]int)
	hasDate, hasAmount, hasAccount := false, false, false
	for _, prop := range mapping {
		if prop == imports.PropNone {
			continue
		}
		seen[prop]++
		if seen[prop] > 1 && !imports.IsMultiColProp(prop) {
			return fmt.Errorf("property %q can only be assigned to one column", prop.String())
		}
		switch prop {
		case imports.PropDate:
			hasDate = true
		case imports.PropAmount, imports.PropAmountNeg:
			hasAmount = true
		case imports.PropAccount:
			hasAccount = true
		}
	}
	if !hasDate {
		return fmt.Errorf("no column is mapped to %q", imports.PropDate.String())
	}
	if !hasAmount {
		return fmt.Errorf("no column is mapped to %q or %q",
			imports.PropAmount.String(), imports.PropAmountNeg.String())
	}
	if !hasAccount && opts.BaseAccount == "" {
		return fmt.Errorf("no column is mapped to %q and no base account given", imports.PropAccount.String())
	}
	return nil
}

// harvest runs stage one: feed every cell through the property bags and
// group rows into logical transactions.
func (is *ImportService) harvest(rows [][]string, mapping []imports.PropType, opts ImportOptions,
	resolver *book.AccountResolver, baseAccount *model.Account) []*txGroup {

	var groups []*txGroup
	var parent *imports.PreTrans

	for i, row := range rows {
		rowNum := i + 1
		pretrans := imports.NewPreTrans(is.ledger.Commodities(), opts.DateFormat, opts.MultiSplit)
		presplit := imports.NewPreSplit(resolver, is.ledger.Prices(), opts.DateFormat, opts.CurrencyFormat)

		for col, prop := range mapping {
			if col >= len(row) {
				break
			}
			prop = imports.SanitizeProp(prop, opts.MultiSplit)
			value := row[col]

			switch {
			case prop == imports.PropNone:
				// unmapped column

			case prop.IsTransProp():
				// Errors stay recorded in the bag; reported per group below.
				_ = pretrans.Set(prop, value)

			case imports.IsMultiColProp(prop):
				_ = presplit.Add(prop, value)

			default:
				_ = presplit.Set(prop, value)
			}
		}

		if presplit.Account() == nil && baseAccount != nil {
			presplit.SetAccount(baseAccount)
		}

		if opts.MultiSplit && pretrans.IsPartOf(parent) && len(groups) > 0 {
			last := groups[len(groups)-1]
			last.splits = append(last.splits, &splitRow{row: rowNum, pretrans: pretrans, presplit: presplit})
			continue
		}

		groups = append(groups, &txGroup{
			row:      rowNum,
			pretrans: pretrans,
			splits:   []*splitRow{{row: rowNum, presplit: presplit}},
		})
		parent = pretrans
	}

	return groups
}

// buildGroup runs stage two for one logical transaction: verify the bags,
// build the draft and its splits, then commit or defer.
func (is *ImportService) buildGroup(group *txGroup, fallback *model.Commodity, result *ImportResult) {
	messages := collectErrors(group)
	if len(messages) > 0 {
		result.Failed = append(result.Failed, RowError{Row: group.row, Messages: messages})
		return
	}

	draft := group.pretrans.CreateTrans(is.ledger, fallback)
	if draft == nil {
		result.Failed = append(result.Failed, RowError{
			Row:      group.row,
			Messages: group.pretrans.VerifyEssentials(),
		})
		return
	}
	defer draft.Release()

	for _, sr := range group.splits {
		sr.presplit.CreateSplit(draft)
		if !sr.presplit.Created() {
			result.Failed = append(result.Failed, RowError{
				Row:      group.row,
				Messages: []string{fmt.Sprintf("row %d: split could not be created (no price or essentials missing)", sr.row)},
			})
			return
		}
	}

	if draft.HasPendingTransfer() {
		deferred := DeferredTransaction{
			Row:     group.row,
			TAmount: draft.PendingTAmount,
			Price:   draft.PendingPrice,
		}
		if tx, ok := draft.Trans.(*book.Transaction); ok {
			deferred.Description = tx.Description()
		}
		if draft.PendingTAccount != nil {
			deferred.TAccount = draft.PendingTAccount.Name
		}
		result.Deferred = append(result.Deferred, deferred)
		pterm.Warning.Printfln("Transaction at row %d needs a balancing split, not importing it.", group.row)
		return
	}

	trans := draft.Finalize()
	if draft.VoidReason != nil {
		trans.SetVoidReason(*draft.VoidReason)
	}

	id, err := trans.Commit()
	if err != nil {
		result.Failed = append(result.Failed, RowError{
			Row:      group.row,
			Messages: []string{err.Error()},
		})
		return
	}
	result.TransactionIDs = append(result.TransactionIDs, id)
}

// collectErrors gathers every recorded bag error and essential failure for
// a group, prefixed with the input row it came from.
func collectErrors(group *txGroup) []string {
	var messages []string

	appendAll := func(row int, errs map[imports.PropType]string, essentials []string) {
		for _, msg := range errs {
			messages = append(messages, fmt.Sprintf("row %d: %s", row, msg))
		}
		for _, msg := range essentials {
			messages = append(messages, fmt.Sprintf("row %d: %s", row, msg))
		}
	}

	appendAll(group.row, group.pretrans.Errors(), group.pretrans.VerifyEssentials())
	for _, sr := range group.splits {
		if sr.pretrans != nil {
			// Continuation rows have no essentials of their own, but a
			// malformed transaction property on one still fails the group.
			appendAll(sr.row, sr.pretrans.Errors(), nil)
		}
		appendAll(sr.row, sr.presplit.Errors(), sr.presplit.VerifyEssentials())
	}

	return messages
}
