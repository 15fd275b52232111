// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package output renders query results and previews. Exact presentation
// is deliberately thin; launcher front-ends consume the json format and
// do their own rendering.
package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"

	"github.com/staranto/icpq/internal/model"
	"github.com/staranto/icpq/internal/query"
)

// Items writes the result set in the requested format ("text" or "json").
// A positive limit caps the result set before rendering. With titles,
// text output gets column headers and an "updated X ago" trailer derived
// from the dataset timestamp.
func Items(w io.Writer, items []query.Item, format string, titles bool, limit int, updated time.Time) error {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	if format == "json" {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	var rows [][]string
	for _, item := range items {
		rank := "-"
		if item.Rank > 0 {
			rank = strconv.Itoa(item.Rank)
		}
		rows = append(rows, []string{rank, item.ID, item.Title, item.Subtitle})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Rows(rows...)

	if titles {
		t = t.Headers("#", "ID", "Item", "Price").BorderHeader(false)
	}

	fmt.Fprintln(w, t)

	if titles && !updated.IsZero() {
		fmt.Fprintf(w, "data updated %s\n", humanize.Time(updated))
	}

	return nil
}

// Preview renders a truncated view of a freshly collected dataset for
// dry runs. Only the benchmark tier is shown per region.
func Preview(w io.Writer, ds model.Dataset, limit int) {
	shown := ds.Regions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var rows [][]string
	for _, r := range shown {
		local, cny := "-", "-"
		if p, ok := r.Plan(model.BenchmarkTier); ok {
			local = fmt.Sprintf("%.2f", p.Price)
			cny = fmt.Sprintf("%.2f", p.PriceInCNY)
		}
		rows = append(rows, []string{r.CountryISO, r.Country, r.Currency, local, cny})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("ISO", "Country", "Currency", model.BenchmarkTier, "CNY").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintf(w, "%s: %d regions (showing %d)\n", ds.Source, len(ds.Regions), len(shown))
	fmt.Fprintln(w, t)
}
