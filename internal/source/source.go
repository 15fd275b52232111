// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"

	"github.com/apex/log"

	"github.com/staranto/icpq/internal/model"
)

// Strategy is one way of producing region price records. A strategy that
// cannot produce data returns an error or an empty slice; either way the
// caller moves on to the next one.
type Strategy interface {
	Name() string
	Regions(ctx context.Context) ([]model.Region, error)
}

// ErrNoSource is returned by Resolve when every strategy came up empty.
// With the static table last in the list this shouldn't happen in
// practice.
var ErrNoSource = errors.New("no pricing source yielded data")

// Resolve walks the prioritized strategy list and returns the first
// non-empty result. Individual strategy failures are logged and absorbed,
// never propagated.
func Resolve(ctx context.Context, strategies []Strategy) ([]model.Region, string, error) {
	for _, s := range strategies {
		regions, err := s.Regions(ctx)
		if err != nil {
			log.WithError(err).Warnf("pricing source %s failed", s.Name())
			continue
		}
		if len(regions) == 0 {
			log.Warnf("pricing source %s yielded no regions", s.Name())
			continue
		}
		log.Debugf("pricing source %s yielded %d regions", s.Name(), len(regions))
		return regions, s.Name(), nil
	}
	return nil, "", ErrNoSource
}
