// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cache resolves the dataset the query side runs against. Sources
// are tried in a fixed order (fresh cache file, bundled copy, remote
// fetch, stale cache file) and every step is best-effort: a step either
// yields a fully parsed dataset or is skipped.
package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"github.com/staranto/icpq/internal/config"
	"github.com/staranto/icpq/internal/dataset"
	"github.com/staranto/icpq/internal/fetch"
	"github.com/staranto/icpq/internal/model"
)

// ErrNoData is the total-failure sentinel: every source in the chain was
// exhausted. Callers must render a "no data" result, never crash.
var ErrNoData = errors.New("no dataset available")

// cacheFile is the fixed name of the cached dataset inside the cache dir.
const cacheFile = "icloud-prices.json"

// Origin reports which source in the chain served the dataset.
type Origin int

const (
	OriginNone Origin = iota
	OriginFreshCache
	OriginBundled
	OriginRemote
	OriginStaleCache
)

func (o Origin) String() string {
	switch o {
	case OriginFreshCache:
		return "cache"
	case OriginBundled:
		return "bundled copy"
	case OriginRemote:
		return "remote"
	case OriginStaleCache:
		return "stale cache"
	default:
		return "none"
	}
}

// Resolver owns the fallback chain. Now is injectable so freshness can be
// tested without real filesystem timestamps.
type Resolver struct {
	Path      string        // cache file location
	TTL       time.Duration // freshness window for the cache file
	Bundled   string        // bundled dataset copy, "" = probe next to the executable
	RemoteURL string        // remote dataset copy, "" = skip the remote step
	Timeout   time.Duration // bound on the remote fetch
	Now       func() time.Time
}

// NewResolver constructs a Resolver from settings.
func NewResolver(cfg config.Settings) *Resolver {
	path := ""
	if dir, ok := Dir(cfg.CacheDir); ok {
		path = filepath.Join(dir, cacheFile)
	}
	return &Resolver{
		Path:      path,
		TTL:       cfg.CacheTTL,
		RemoteURL: cfg.DatasetURL,
		Timeout:   cfg.DatasetTimeout,
		Now:       time.Now,
	}
}

// Dir resolves the base cache directory.
// Precedence:
//  1. override argument (cache.dir config), if non-empty
//  2. ICPQ_CACHE_DIR, if set and non-empty
//  3. os.UserCacheDir()/icpq
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir(override string) (string, bool) {
	if override != "" {
		return override, true
	}
	if c, ok := os.LookupEnv("ICPQ_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "icpq"), true
	}
	return "", false
}

// Enabled returns true unless ICPQ_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("ICPQ_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Resolve walks the chain and returns the first parseable dataset along
// with its origin. Only when all four sources fail does it return
// ErrNoData.
func (r *Resolver) Resolve(ctx context.Context) (model.Dataset, Origin, error) {
	if ds, ok := r.readCache(true); ok {
		return ds, OriginFreshCache, nil
	}

	if data, ok := r.bundled(); ok {
		if ds, err := dataset.Decode(data); err == nil {
			r.writeCache(data)
			return ds, OriginBundled, nil
		} else {
			log.WithError(err).Debug("bundled dataset unusable")
		}
	}

	if r.RemoteURL != "" {
		if data, err := fetch.Get(ctx, r.RemoteURL, r.Timeout); err != nil {
			log.WithError(err).Debug("remote dataset fetch failed")
		} else if ds, err := dataset.Decode(data); err != nil {
			log.WithError(err).Debug("remote dataset unusable")
		} else {
			r.writeCache(data)
			return ds, OriginRemote, nil
		}
	}

	if ds, ok := r.readCache(false); ok {
		return ds, OriginStaleCache, nil
	}

	return model.Dataset{}, OriginNone, ErrNoData
}

// freshEnough is the TTL check, isolated so it can be tested directly.
func freshEnough(mtime time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(mtime) < ttl
}

// readCache reads and parses the cache file. With requireFresh, an entry
// older than TTL is ignored. Any failure reads as a miss.
func (r *Resolver) readCache(requireFresh bool) (model.Dataset, bool) {
	if !Enabled() || r.Path == "" {
		return model.Dataset{}, false
	}

	info, err := os.Stat(r.Path)
	if err != nil {
		return model.Dataset{}, false
	}
	if requireFresh && !freshEnough(info.ModTime(), r.TTL, r.Now()) {
		log.Debugf("cache file %s is older than %s", r.Path, r.TTL)
		return model.Dataset{}, false
	}

	ds, err := dataset.Read(r.Path)
	if err != nil {
		log.WithError(err).Debugf("cache file %s unusable", r.Path)
		return model.Dataset{}, false
	}

	return ds, true
}

// writeCache repopulates the cache file wholesale. Best-effort: the worst
// a failure costs is a re-fetch next run.
func (r *Resolver) writeCache(data []byte) {
	if !Enabled() || r.Path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil { //nolint:mnd
		log.WithError(err).Warn("failed to create cache directory")
		return
	}
	if err := os.WriteFile(r.Path, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		log.WithError(err).Warn("failed to write to cache")
	}
}

// bundled returns the dataset copy shipped alongside the binary: the
// configured path if set, otherwise a probe for the file next to the
// executable.
func (r *Resolver) bundled() ([]byte, bool) {
	path := r.Bundled
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, false
		}
		path = filepath.Join(filepath.Dir(exe), cacheFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Purge removes cache files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(base string, hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	dir, ok := Dir(base)
	if !ok {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best-effort walk
		}
		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	})
}
