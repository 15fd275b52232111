// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"
	"time"
)

// ReferenceCurrency is the currency every plan price is normalized into.
const ReferenceCurrency = "CNY"

// BenchmarkTier is the smallest offered tier. It is the default sort and
// display key when no tier is specified.
const BenchmarkTier = "50GB"

// Tiers is the fixed storage-plan vocabulary, smallest first.
var Tiers = []string{"50GB", "200GB", "2TB", "6TB", "12TB"}

// Plan is a single storage tier priced in a region's local currency.
// PriceInCNY is derived during normalization; it is zero until then.
// The JSON field names are the wire contract between the collection and
// query sides and must not change.
type Plan struct {
	Name       string  `json:"Name"`
	Price      float64 `json:"Price"`
	PriceInCNY float64 `json:"PriceInCNY"`
}

// Region is one country's plan listing. Plans are ordered smallest tier
// first and tier names are unique within a region.
type Region struct {
	CountryISO string `json:"CountryISO"`
	Country    string `json:"Country"`
	Currency   string `json:"Currency"`
	Plans      []Plan `json:"Plans"`
}

// Plan returns the named tier, if the region offers it.
func (r Region) Plan(name string) (Plan, bool) {
	for _, p := range r.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}

// Dataset is the persisted document produced by a collection run and read
// by the query side. It is an immutable snapshot; a new run fully replaces
// it. Regions are ordered ascending by the benchmark tier's PriceInCNY,
// with regions lacking that tier last.
type Dataset struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
	Regions     []Region  `json:"regions"`
}

// RateTable maps a 3-letter currency code to its exchange rate, quoted as
// "1 USD = rate units of this currency". A missing code means the currency
// is unconvertible.
type RateTable map[string]float64

// CanonicalTier resolves a free-text token to a tier name from the fixed
// vocabulary. It accepts the full name in any case plus bare-size
// shorthands ("50", "200g", "2t"). Returns false when the token is not a
// tier at all.
func CanonicalTier(tok string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(tok))
	if t == "" {
		return "", false
	}
	for _, tier := range Tiers {
		if t == tier {
			return tier, true
		}
		// 50 / 50G / 2T style shorthands.
		base := strings.TrimSuffix(tier, "B")
		if t == base || t == strings.TrimSuffix(base, "G") || t+"B" == tier {
			return tier, true
		}
	}
	return "", false
}
