package book

import (
	"time"

	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/model"
)

// PriceDB is the in-memory price history consulted when an imported split
// needs a currency conversion and no explicit price was supplied.
type PriceDB struct {
	prices []imports.Price
}

func NewPriceDB(prices []imports.Price) *PriceDB {
	return &PriceDB{prices: prices}
}

func (db *PriceDB) Add(p imports.Price) {
	db.prices = append(db.prices, p)
}

// NearestInTime returns the price record for the commodity/currency pair
// (in either orientation) whose timestamp is closest to t.
func (db *PriceDB) NearestInTime(commodity, currency *model.Commodity, t time.Time) (imports.Price, bool) {
	var best imports.Price
	var bestDist time.Duration
	found := false

	for _, p := range db.prices {
		forward := p.Commodity.Equiv(commodity) && p.Currency.Equiv(currency)
		reverse := p.Commodity.Equiv(currency) && p.Currency.Equiv(commodity)
		if !forward && !reverse {
			continue
		}

		dist := t.Sub(p.Time)
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist {
			best, bestDist, found = p, dist, true
		}
	}

	return best, found
}
