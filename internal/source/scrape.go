// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/icpq/internal/config"
	"github.com/staranto/icpq/internal/fetch"
	"github.com/staranto/icpq/internal/model"
)

var (
	tagRe = regexp.MustCompile(`<[^>]*>`)

	// "United States (USD)" style section headers.
	headerRe = regexp.MustCompile(`^(.{1,64}?)\s*\(([A-Z]{3})\)$`)

	// "50GB: $0.99" / "2 TB – 9,99 €" style plan items.
	planRe = regexp.MustCompile(`(?i)^(\d+)\s*(GB|TB)\s*[::–—-]\s*(.+)$`)
)

// Scraper pulls the pricing page and mines it with text-pattern
// heuristics. It is strictly best-effort: any failure or empty parse just
// pushes the caller to the next strategy.
type Scraper struct {
	URL     string
	Timeout time.Duration
}

// NewScraper constructs a Scraper from settings.
func NewScraper(cfg config.Settings) *Scraper {
	return &Scraper{
		URL:     cfg.PageURL,
		Timeout: cfg.Timeout,
	}
}

// Name implements Strategy.
func (s *Scraper) Name() string { return "remote scrape of " + s.URL }

// Regions implements Strategy.
func (s *Scraper) Regions(ctx context.Context) ([]model.Region, error) {
	body, err := fetch.Get(ctx, s.URL, s.Timeout)
	if err != nil {
		return nil, err
	}
	return s.parse(string(body)), nil
}

// parse scans the page line by line. A "Country (CUR)" header opens a
// region; subsequent "<size><unit>: <price>" items attach plans to it
// until the next header. Lines matching neither pattern are noise and
// skipped. Regions whose country name cannot be resolved to an ISO code,
// or that end up with no plans, are dropped.
func (s *Scraper) parse(page string) []model.Region {
	text := html.UnescapeString(tagRe.ReplaceAllString(page, "\n"))

	var regions []model.Region
	var current *model.Region

	flush := func() {
		if current != nil && len(current.Plans) > 0 {
			regions = append(regions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			name := strings.TrimSpace(m[1])
			iso, ok := lookupISO(name)
			if !ok {
				log.Debugf("unknown country %q, skipping section", name)
				continue
			}
			current = &model.Region{
				CountryISO: iso,
				Country:    name,
				Currency:   m[2],
			}
			continue
		}

		if current == nil {
			continue
		}

		if m := planRe.FindStringSubmatch(line); m != nil {
			tier, ok := model.CanonicalTier(m[1] + m[2])
			if !ok {
				continue
			}
			if _, dup := current.Plan(tier); dup {
				continue
			}
			price, err := ParsePrice(m[3])
			if err != nil {
				log.Debugf("discarding %s %s: %v", current.CountryISO, tier, err)
				continue
			}
			current.Plans = append(current.Plans, model.Plan{Name: tier, Price: price})
		}
	}
	flush()

	return regions
}
