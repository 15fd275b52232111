// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"math"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/shopspring/decimal"

	"github.com/staranto/icpq/internal/model"
)

// Normalize converts every plan price into the reference currency, ranks
// regions by the benchmark tier, and wraps the result in a Dataset ready
// to persist. The input slice is not modified.
func Normalize(regions []model.Region, rates model.RateTable, refCurrency, source string, now time.Time) model.Dataset {
	out := make([]model.Region, 0, len(regions))
	for _, r := range regions {
		region := r
		region.Plans = make([]model.Plan, len(r.Plans))
		for i, p := range r.Plans {
			p.PriceInCNY = convert(p.Price, r.Currency, refCurrency, rates)
			region.Plans[i] = p
		}
		out = append(out, region)
	}

	SortRegions(out, model.BenchmarkTier)

	return model.Dataset{
		LastUpdated: now.UTC(),
		Source:      source,
		Regions:     out,
	}
}

// convert maps a local price into the reference currency via the table's
// implicit USD base: local -> USD-equivalent -> reference. A price already
// in the reference currency passes through exactly, with no rounding
// drift. A missing rate on either side is a data-quality problem, not a
// failure: the local price passes through unconverted with a warning.
func convert(price float64, currency, refCurrency string, rates model.RateTable) float64 {
	if currency == refCurrency {
		return price
	}

	rate, ok := rates[currency]
	refRate, refOK := rates[refCurrency]
	if !ok || !refOK || rate <= 0 {
		log.Warnf("no exchange rate for %s->%s, passing price through", currency, refCurrency)
		return price
	}

	// Round half away from zero to 2 digits.
	v := decimal.NewFromFloat(price).
		Div(decimal.NewFromFloat(rate)).
		Mul(decimal.NewFromFloat(refRate)).
		Round(2)
	f, _ := v.Float64()
	return f
}

// SortRegions orders regions ascending by the named tier's converted
// price. A region without that tier sorts after every region that has it;
// relative order among such regions is preserved.
func SortRegions(regions []model.Region, tier string) {
	key := func(r model.Region) float64 {
		if p, ok := r.Plan(tier); ok {
			return p.PriceInCNY
		}
		return math.Inf(1)
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return key(regions[i]) < key(regions[j])
	})
}
