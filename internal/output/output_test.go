// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/icpq/internal/model"
	"github.com/staranto/icpq/internal/query"
)

func testItems() []query.Item {
	return []query.Item{
		{ID: "CN/50GB", Title: "China mainland 50GB", Subtitle: "CNY 6.00 = CNY 6.00", Rank: 1, Value: 6},
		{ID: "US/50GB", Title: "United States 50GB", Subtitle: "USD 0.99 = CNY 7.13", Rank: 2, Value: 7.13},
		{ID: "JP/50GB", Title: "Japan 50GB", Subtitle: "JPY 130.00 = CNY 6.49", Rank: 3, Value: 6.49},
	}
}

func TestItemsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Items(&buf, testItems(), "json", false, 0, time.Time{})
	require.NoError(t, err)

	var got []query.Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testItems(), got)
}

func TestItemsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero means all", limit: 0, want: 3},
		{name: "caps the set", limit: 2, want: 2},
		{name: "larger than set", limit: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Items(&buf, testItems(), "json", false, tt.limit, time.Time{})
			require.NoError(t, err)

			var got []query.Item
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			assert.Len(t, got, tt.want)
		})
	}
}

func TestItemsTextLimit(t *testing.T) {
	var buf bytes.Buffer
	err := Items(&buf, testItems(), "text", false, 1, time.Time{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "CN/50GB")
	assert.NotContains(t, out, "US/50GB")
	assert.NotContains(t, out, "JP/50GB")
}

func TestItemsTextRankPlaceholder(t *testing.T) {
	items := []query.Item{
		{ID: "JP/2TB", Title: "Japan 2TB", Subtitle: "JPY 1311.22 = CNY 62.27", Rank: 0},
	}

	var buf bytes.Buffer
	err := Items(&buf, items, "text", false, 0, time.Time{})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "-")
	assert.NotContains(t, buf.String(), "0")
}

func TestItemsTextTitles(t *testing.T) {
	updated := time.Now().Add(-2 * time.Hour)

	var buf bytes.Buffer
	err := Items(&buf, testItems(), "text", true, 0, updated)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Item")
	assert.Contains(t, out, "Price")
	assert.Contains(t, out, "data updated")
}

func TestItemsTextNoTitlesNoTrailer(t *testing.T) {
	var buf bytes.Buffer
	err := Items(&buf, testItems(), "text", false, 0, time.Now())
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "data updated")
}

func previewDataset() model.Dataset {
	return model.Dataset{
		Source: "static",
		Regions: []model.Region{
			{CountryISO: "CN", Country: "China mainland", Currency: "CNY",
				Plans: []model.Plan{{Name: model.BenchmarkTier, Price: 6, PriceInCNY: 6}}},
			{CountryISO: "US", Country: "United States", Currency: "USD",
				Plans: []model.Plan{{Name: model.BenchmarkTier, Price: 0.99, PriceInCNY: 7.13}}},
			{CountryISO: "JP", Country: "Japan", Currency: "JPY",
				Plans: []model.Plan{{Name: "2TB", Price: 1300, PriceInCNY: 62.27}}},
		},
	}
}

func TestPreviewTruncation(t *testing.T) {
	var buf bytes.Buffer
	Preview(&buf, previewDataset(), 2)

	out := buf.String()
	assert.Contains(t, out, "static: 3 regions (showing 2)")
	assert.Contains(t, out, "CN")
	assert.Contains(t, out, "United States")
	assert.NotContains(t, out, "Japan")
}

func TestPreviewNoLimit(t *testing.T) {
	var buf bytes.Buffer
	Preview(&buf, previewDataset(), 0)

	assert.Contains(t, buf.String(), "static: 3 regions (showing 3)")
	assert.Contains(t, buf.String(), "Japan")
}

func TestPreviewMissingBenchmarkTier(t *testing.T) {
	// JP carries no benchmark-tier plan, so both price columns show "-".
	var buf bytes.Buffer
	Preview(&buf, previewDataset(), 0)

	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if bytes.Contains(line, []byte("Japan")) {
			assert.Contains(t, string(line), "-")
			assert.NotContains(t, string(line), "1300")
			return
		}
	}
	t.Fatal("no Japan row in preview output")
}
