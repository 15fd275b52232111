// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"strings"

	"github.com/staranto/icpq/internal/model"
	"github.com/staranto/icpq/internal/normalize"
)

// Item is one display record handed to the presentation layer. ID is
// stable across runs (region code + tier name); Value is the converted
// price for machine consumption.
type Item struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Rank     int     `json:"rank"`
	Value    float64 `json:"value"`
}

// Tokenize splits free-text query arguments into an optional tier keyword
// and an optional region token. A token that reads as a tier keyword is
// always taken as one, never as a region filter; the first token that
// doesn't is the region filter. Anything further is ignored.
func Tokenize(args []string) (tier, region string) {
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if t, ok := model.CanonicalTier(arg); ok {
			if tier == "" {
				tier = t
			}
			continue
		}
		if region == "" {
			region = arg
		}
	}
	return tier, region
}

// Run filters and ranks the dataset. With a region filter that narrows to
// exactly one region and no tier given, the result is that region's full
// plan listing in stored order (rank is meaningless and reported as 0).
// An explicit tier always narrows, even for a single region. Otherwise
// the filtered set is ranked ascending by the selected tier's converted
// price, missing tier last, ties in dataset order.
func Run(ds model.Dataset, tier, region string) []Item {
	var regions []model.Region
	for _, r := range ds.Regions {
		if matchRegion(r, region) {
			regions = append(regions, r)
		}
	}

	if tier == "" && region != "" && len(regions) == 1 {
		r := regions[0]
		items := make([]Item, 0, len(r.Plans))
		for _, p := range r.Plans {
			items = append(items, newItem(r, p, 0))
		}
		return items
	}

	if tier == "" {
		tier = model.BenchmarkTier
	}

	normalize.SortRegions(regions, tier)

	var items []Item
	for i, r := range regions {
		item := Item{
			ID:       r.CountryISO + "/" + tier,
			Title:    fmt.Sprintf("%s %s", r.Country, tier),
			Subtitle: "not offered",
			Rank:     i + 1,
		}
		if p, ok := r.Plan(tier); ok {
			item = newItem(r, p, i+1)
		}
		items = append(items, item)
	}
	return items
}

// matchRegion is a case-insensitive substring match against the ISO code
// or the country name. An empty filter matches everything.
func matchRegion(r model.Region, filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(r.CountryISO), f) ||
		strings.Contains(strings.ToLower(r.Country), f)
}

func newItem(r model.Region, p model.Plan, rank int) Item {
	return Item{
		ID:       r.CountryISO + "/" + p.Name,
		Title:    fmt.Sprintf("%s %s", r.Country, p.Name),
		Subtitle: fmt.Sprintf("%s %.2f = CNY %.2f", r.Currency, p.Price, p.PriceInCNY),
		Rank:     rank,
		Value:    p.PriceInCNY,
	}
}
