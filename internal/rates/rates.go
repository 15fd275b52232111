// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/icpq/internal/config"
	"github.com/staranto/icpq/internal/fetch"
	"github.com/staranto/icpq/internal/model"
)

// Provider fetches the USD-based exchange-rate table. One attempt, no
// retry, no fallback: a failure here is the caller's problem and, on the
// collection path, its only fatal condition.
type Provider struct {
	URL     string
	Timeout time.Duration
}

// New constructs a Provider from settings.
func New(cfg config.Settings) *Provider {
	return &Provider{
		URL:     cfg.RatesURL,
		Timeout: cfg.Timeout,
	}
}

// Rates returns the currency -> units-per-USD table. The endpoint response
// is expected to carry a top-level "rates" object; everything else in the
// body is ignored. Non-positive or non-numeric entries are dropped.
func (p *Provider) Rates(ctx context.Context) (model.RateTable, error) {
	body, err := fetch.Get(ctx, p.URL, p.Timeout)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("exchange rates: %w: response is not JSON", fetch.ErrParse)
	}

	raw := gjson.GetBytes(body, "rates")
	if !raw.IsObject() {
		return nil, fmt.Errorf("exchange rates: %w: no rates object in response", fetch.ErrParse)
	}

	table := make(model.RateTable)
	raw.ForEach(func(key, value gjson.Result) bool {
		if rate := value.Float(); rate > 0 {
			table[key.String()] = rate
		} else {
			log.Debugf("dropping rate %s=%s", key.String(), value.String())
		}
		return true
	})

	if len(table) == 0 {
		return nil, fmt.Errorf("exchange rates: %w: rates object is empty", fetch.ErrParse)
	}

	log.Debugf("fetched %d exchange rates from %s", len(table), p.URL)
	return table, nil
}
