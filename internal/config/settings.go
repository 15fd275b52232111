// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// Defaults for every recognized option. Anything here can be overridden in
// icpq.yaml.
const (
	DefaultPageURL        = "https://support.apple.com/en-us/108047"
	DefaultRatesURL       = "https://open.er-api.com/v6/latest/USD"
	DefaultDatasetURL     = "https://raw.githubusercontent.com/staranto/icpq/main/data/icloud-prices.json"
	DefaultOutputPath     = "icloud-prices.json"
	DefaultTimeoutSecs    = 15
	DefaultDatasetTimeout = 5
	DefaultCacheTTLHours  = 24
)

// Settings is the resolved configuration handed to each component at
// construction. Components never reach back into the config file or
// module-level state.
type Settings struct {
	// Collection side.
	PageURL    string        // remote pricing page to scrape
	RatesURL   string        // exchange-rate endpoint (USD-based table)
	OutputPath string        // where `up` writes the dataset
	Timeout    time.Duration // bound on collection-side requests

	// Query side.
	DatasetURL     string        // remote dataset copy for the cache chain
	DatasetTimeout time.Duration // bound on the remote dataset fetch
	CacheDir       string        // cache directory override, "" = default
	CacheTTL       time.Duration // cache freshness window
	CacheClean     int           // purge entries older than this many hours
}

// NewSettings builds Settings from the loaded config file, falling back to
// defaults for anything unset.
func NewSettings() Settings {
	pageURL, _ := GetString("page_url", DefaultPageURL)
	ratesURL, _ := GetString("rates_url", DefaultRatesURL)
	output, _ := GetString("output", DefaultOutputPath)
	timeout, _ := GetInt("timeout", DefaultTimeoutSecs)

	datasetURL, _ := GetString("dataset_url", DefaultDatasetURL)
	datasetTimeout, _ := GetInt("dataset_timeout", DefaultDatasetTimeout)
	cacheDir, _ := GetString("cache.dir", "")
	cacheTTL, _ := GetInt("cache.ttl", DefaultCacheTTLHours)
	cacheClean, _ := GetInt("cache.clean", 0)

	return Settings{
		PageURL:        pageURL,
		RatesURL:       ratesURL,
		OutputPath:     output,
		Timeout:        time.Duration(timeout) * time.Second,
		DatasetURL:     datasetURL,
		DatasetTimeout: time.Duration(datasetTimeout) * time.Second,
		CacheDir:       cacheDir,
		CacheTTL:       time.Duration(cacheTTL) * time.Hour,
		CacheClean:     cacheClean,
	}
}
