package imports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/weka/internal/book"
	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
)

var (
	checkingUSD = &model.Account{ID: 1, Name: "Assets:Checking", Type: "A", Commodity: usd}
	savingsEUR  = &model.Account{ID: 2, Name: "Assets:Savings", Type: "A", Commodity: eur}
	brokerGBP   = &model.Account{ID: 3, Name: "Assets:Broker", Type: "A", Commodity: gbp}
	rentUSD     = &model.Account{ID: 4, Name: "Expenses:Rent", Type: "E", Commodity: usd}
)

func newPreSplit(quoter *fakeQuoter) *imports.PreSplit {
	if quoter == nil {
		quoter = &fakeQuoter{}
	}
	resolver := newFakeResolver(checkingUSD, savingsEUR, brokerGBP, rentUSD)
	return imports.NewPreSplit(resolver, quoter, constants.DateFormatYMD, constants.CurrencyFormatPeriod)
}

func newDraftUSD(t *testing.T) (*imports.DraftTransaction, *book.Transaction) {
	t.Helper()
	trans := book.NewTransaction()
	trans.SetCurrency(usd)
	trans.SetDatePosted(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	return imports.NewDraftTransaction(trans), trans
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

func TestPreSplitSet(t *testing.T) {
	t.Run("account resolution", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
		assert.Same(t, checkingUSD, p.Account())
	})

	t.Run("empty account is required", func(t *testing.T) {
		p := newPreSplit(nil)
		require.ErrorIs(t, p.Set(imports.PropAccount, ""), imports.ErrMissingRequiredField)
	})

	t.Run("unknown account", func(t *testing.T) {
		p := newPreSplit(nil)
		err := p.Set(imports.PropTAccount, "Assets:Nowhere")
		require.ErrorIs(t, err, imports.ErrUnresolvableReference)
		assert.Contains(t, p.Errors()[imports.PropTAccount], "Transfer Account: ")
	})

	t.Run("malformed amount leaves an error, success clears it", func(t *testing.T) {
		p := newPreSplit(nil)
		require.ErrorIs(t, p.Set(imports.PropAmount, "abc"), imports.ErrMalformedNumber)
		require.Contains(t, p.Errors(), imports.PropAmount)

		require.NoError(t, p.Set(imports.PropAmount, "100"))
		assert.NotContains(t, p.Errors(), imports.PropAmount)
	})

	t.Run("reconcile date may be empty", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropRecDate, ""))
	})

	t.Run("transaction property is ignored without error", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropDate, "2024-05-01"))
		assert.Empty(t, p.Errors())
	})
}

func TestPreSplitAdd(t *testing.T) {
	t.Run("accumulates by exact addition in any order", func(t *testing.T) {
		a := newPreSplit(nil)
		require.NoError(t, a.Add(imports.PropAmount, "10.00"))
		require.NoError(t, a.Add(imports.PropAmount, "5.00"))

		b := newPreSplit(nil)
		require.NoError(t, b.Add(imports.PropAmount, "5.00"))
		require.NoError(t, b.Add(imports.PropAmount, "10.00"))

		for _, p := range []*imports.PreSplit{a, b} {
			require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
			draft, trans := newDraftUSD(t)
			p.CreateSplit(draft)
			require.Len(t, trans.Splits(), 1)
			assert.True(t, trans.Splits()[0].Amount.Equal(dec(t, "15.00")))
		}
	})

	t.Run("rejects non-amount properties", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Add(imports.PropMemo, "text"))
		assert.Empty(t, p.Errors())
	})

	t.Run("parse failure is recorded", func(t *testing.T) {
		p := newPreSplit(nil)
		require.ErrorIs(t, p.Add(imports.PropTAmountNeg, "x"), imports.ErrMalformedNumber)
		require.Contains(t, p.Errors(), imports.PropTAmountNeg)
	})
}

func TestPreSplitVerifyEssentials(t *testing.T) {
	t.Run("requires an amount", func(t *testing.T) {
		p := newPreSplit(nil)
		assert.Len(t, p.VerifyEssentials(), 1)

		require.NoError(t, p.Set(imports.PropAmountNeg, "5"))
		assert.Empty(t, p.VerifyEssentials())
	})

	t.Run("reconciled state demands a reconcile date", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAmount, "5"))
		require.NoError(t, p.Set(imports.PropRecState, "y"))
		require.Len(t, p.VerifyEssentials(), 1)

		require.NoError(t, p.Set(imports.PropRecDate, "2024-05-01"))
		assert.Empty(t, p.VerifyEssentials())
	})

	t.Run("cleared state does not", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAmount, "5"))
		require.NoError(t, p.Set(imports.PropRecState, "c"))
		assert.Empty(t, p.VerifyEssentials())
	})

	t.Run("transfer side checked symmetrically", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAmount, "5"))
		require.NoError(t, p.Set(imports.PropTRecState, "y"))
		require.Len(t, p.VerifyEssentials(), 1)

		require.NoError(t, p.Set(imports.PropTRecDate, "2024-05-02"))
		assert.Empty(t, p.VerifyEssentials())
	})
}

func TestCreateSplitSameCurrency(t *testing.T) {
	p := newPreSplit(nil)
	require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
	require.NoError(t, p.Set(imports.PropAmount, "100"))
	require.NoError(t, p.Set(imports.PropMemo, "paycheck"))

	draft, trans := newDraftUSD(t)
	p.CreateSplit(draft)

	require.True(t, p.Created())
	require.Len(t, trans.Splits(), 1)
	split := trans.Splits()[0]
	assert.Same(t, checkingUSD, split.Account)
	assert.True(t, split.Amount.Equal(dec(t, "100")))
	assert.True(t, split.Value.Equal(dec(t, "100")))
	assert.Equal(t, "paycheck", split.Memo)

	// Second call is a no-op
	p.CreateSplit(draft)
	assert.Len(t, trans.Splits(), 1)
}

func TestCreateSplitNetAmount(t *testing.T) {
	p := newPreSplit(nil)
	require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
	require.NoError(t, p.Set(imports.PropAmount, "100"))
	require.NoError(t, p.Set(imports.PropAmountNeg, "30"))

	draft, trans := newDraftUSD(t)
	p.CreateSplit(draft)

	require.Len(t, trans.Splits(), 1)
	assert.True(t, trans.Splits()[0].Amount.Equal(dec(t, "70")))
}

func TestCreateSplitExplicitPrice(t *testing.T) {
	p := newPreSplit(nil)
	require.NoError(t, p.Set(imports.PropAccount, "Assets:Savings")) // EUR
	require.NoError(t, p.Set(imports.PropAmount, "10"))
	require.NoError(t, p.Set(imports.PropPrice, "1.5"))

	draft, trans := newDraftUSD(t)
	p.CreateSplit(draft)

	require.True(t, p.Created())
	require.Len(t, trans.Splits(), 1)
	assert.True(t, trans.Splits()[0].Amount.Equal(dec(t, "10")))
	assert.True(t, trans.Splits()[0].Value.Equal(dec(t, "15")), "value = amount * price")
}

func TestCreateSplitPriceLookupDirections(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("quote currency matches transaction currency", func(t *testing.T) {
		quoter := &fakeQuoter{prices: []imports.Price{
			{Commodity: gbp, Currency: usd, Value: dec(t, "1.25"), Time: date},
		}}
		p := newPreSplit(quoter)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Broker")) // GBP
		require.NoError(t, p.Set(imports.PropAmount, "10"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 1)
		assert.True(t, trans.Splits()[0].Value.Equal(dec(t, "12.5")), "value = amount * rate")
	})

	t.Run("reversed quote applies the inverse rate", func(t *testing.T) {
		quoter := &fakeQuoter{prices: []imports.Price{
			{Commodity: usd, Currency: gbp, Value: dec(t, "0.8"), Time: date},
		}}
		p := newPreSplit(quoter)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Broker")) // GBP
		require.NoError(t, p.Set(imports.PropAmount, "10"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 1)
		assert.True(t, trans.Splits()[0].Value.Equal(dec(t, "12.5")), "value = amount / rate")
	})

	t.Run("zero explicit price counts as absent", func(t *testing.T) {
		p := newPreSplit(&fakeQuoter{})
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Savings")) // EUR
		require.NoError(t, p.Set(imports.PropAmount, "10"))
		require.NoError(t, p.Set(imports.PropPrice, "0"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Broker")) // GBP

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		assert.False(t, p.Created())
		assert.Empty(t, trans.Splits())
	})

	t.Run("zero stored price counts as absent", func(t *testing.T) {
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		quoter := &fakeQuoter{prices: []imports.Price{
			{Commodity: gbp, Currency: usd, Value: decimal.Zero, Time: date},
		}}
		p := newPreSplit(quoter)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Broker")) // GBP
		require.NoError(t, p.Set(imports.PropAmount, "10"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		assert.False(t, p.Created())
		assert.Empty(t, trans.Splits())
	})

	t.Run("no price anywhere refuses the split", func(t *testing.T) {
		p := newPreSplit(&fakeQuoter{})
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Broker"))
		require.NoError(t, p.Set(imports.PropAmount, "10"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		assert.False(t, p.Created(), "valuation failure must be distinguishable")
		assert.Empty(t, trans.Splits())
	})
}

func TestCreateSplitTwoSplitMode(t *testing.T) {
	t.Run("same-currency transfer balances directly", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
		require.NoError(t, p.Set(imports.PropAmount, "100"))
		require.NoError(t, p.Set(imports.PropTAccount, "Expenses:Rent"))
		require.NoError(t, p.Set(imports.PropTMemo, "rent for may"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 2)
		main, transfer := trans.Splits()[0], trans.Splits()[1]
		assert.True(t, main.Value.Equal(dec(t, "100")))
		assert.True(t, transfer.Value.Equal(dec(t, "-100")))
		assert.True(t, transfer.Amount.Equal(dec(t, "-100")))
		assert.Equal(t, "rent for may", transfer.Memo)
		assert.False(t, draft.HasPendingTransfer())
	})

	t.Run("explicit transfer amount wins", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
		require.NoError(t, p.Set(imports.PropAmount, "100"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Savings")) // EUR
		require.NoError(t, p.Set(imports.PropTAmount, "-90"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 2)
		transfer := trans.Splits()[1]
		assert.True(t, transfer.Amount.Equal(dec(t, "-90")))
		assert.True(t, transfer.Value.Equal(dec(t, "-100")))
	})

	t.Run("transfer amount via price lookup", func(t *testing.T) {
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		quoter := &fakeQuoter{prices: []imports.Price{
			{Commodity: eur, Currency: usd, Value: dec(t, "2"), Time: date},
		}}
		p := newPreSplit(quoter)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
		require.NoError(t, p.Set(imports.PropAmount, "100"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Savings")) // EUR

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 2)
		transfer := trans.Splits()[1]
		// tvalue = -100 USD; 2 USD buys 1 EUR, so the EUR amount is -50
		assert.True(t, transfer.Value.Equal(dec(t, "-100")))
		assert.True(t, transfer.Amount.Equal(dec(t, "-50")))
	})

	t.Run("transfer amount via explicit price inverse", func(t *testing.T) {
		p := newPreSplit(nil)
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Savings")) // EUR account
		require.NoError(t, p.Set(imports.PropAmount, "10"))
		require.NoError(t, p.Set(imports.PropPrice, "2"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Broker")) // GBP

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.Len(t, trans.Splits(), 2)
		main, transfer := trans.Splits()[0], trans.Splits()[1]
		assert.True(t, main.Value.Equal(dec(t, "20")), "value = amount * price")
		assert.True(t, transfer.Value.Equal(dec(t, "-20")))
		assert.True(t, transfer.Amount.Equal(dec(t, "-10")), "tamount = tvalue / price")
	})

	t.Run("zero price on the transfer side defers instead of dividing", func(t *testing.T) {
		p := newPreSplit(&fakeQuoter{})
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking")) // USD
		require.NoError(t, p.Set(imports.PropAmount, "100"))
		require.NoError(t, p.Set(imports.PropPrice, "0"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Savings")) // EUR

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.True(t, p.Created())
		require.Len(t, trans.Splits(), 1)
		assert.True(t, draft.HasPendingTransfer())
	})

	t.Run("unresolvable transfer defers to the matcher", func(t *testing.T) {
		p := newPreSplit(&fakeQuoter{})
		require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
		require.NoError(t, p.Set(imports.PropAmount, "100"))
		require.NoError(t, p.Set(imports.PropTAccount, "Assets:Savings")) // EUR, no price
		require.NoError(t, p.Set(imports.PropTAction, "xfer"))

		draft, trans := newDraftUSD(t)
		p.CreateSplit(draft)

		require.True(t, p.Created())
		require.Len(t, trans.Splits(), 1, "only the primary split")
		require.True(t, draft.HasPendingTransfer())
		assert.Same(t, savingsEUR, draft.PendingTAccount)
		assert.Nil(t, draft.PendingTAmount)
		assert.Nil(t, draft.PendingPrice)
		require.NotNil(t, draft.PendingTAction)
		assert.Equal(t, "xfer", *draft.PendingTAction)
	})
}

func TestCreateSplitRefusesWithoutEssentials(t *testing.T) {
	p := newPreSplit(nil)
	require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))

	draft, trans := newDraftUSD(t)
	p.CreateSplit(draft)

	assert.False(t, p.Created())
	assert.Empty(t, trans.Splits())
}

func TestCreateSplitReconcileFields(t *testing.T) {
	p := newPreSplit(nil)
	require.NoError(t, p.Set(imports.PropAccount, "Assets:Checking"))
	require.NoError(t, p.Set(imports.PropAmount, "10"))
	require.NoError(t, p.Set(imports.PropRecState, "y"))
	require.NoError(t, p.Set(imports.PropRecDate, "2024-04-30"))

	draft, trans := newDraftUSD(t)
	p.CreateSplit(draft)

	require.Len(t, trans.Splits(), 1)
	split := trans.Splits()[0]
	assert.Equal(t, model.RecReconciled, split.RecState)
	require.NotNil(t, split.RecDate)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), *split.RecDate)
}
