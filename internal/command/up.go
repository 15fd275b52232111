// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/icpq/internal/dataset"
	"github.com/staranto/icpq/internal/meta"
	"github.com/staranto/icpq/internal/model"
	"github.com/staranto/icpq/internal/normalize"
	"github.com/staranto/icpq/internal/output"
	"github.com/staranto/icpq/internal/rates"
	"github.com/staranto/icpq/internal/source"
)

// previewRegions caps the dry-run table.
const previewRegions = 10

// UpCommandAction is the action handler for the "up" subcommand. It runs
// the collection pipeline: exchange rates plus region prices in, a
// normalized dataset document out. A rate-fetch failure is the one thing
// here with no fallback, so it aborts the run.
func UpCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	settings := m.Settings

	table, err := rates.New(settings).Rates(ctx)
	if err != nil {
		return fmt.Errorf("cannot update without exchange rates: %w", err)
	}

	regions, from, err := source.Resolve(ctx, []source.Strategy{
		source.NewScraper(settings),
		source.Static{},
	})
	if err != nil {
		return err
	}

	ds := normalize.Normalize(regions, table, model.ReferenceCurrency, from, time.Now())

	if cmd.Bool("dry-run") {
		output.Preview(os.Stdout, ds, previewRegions)
		return nil
	}

	if err := dataset.Write(ds, settings.OutputPath); err != nil {
		return err
	}
	log.Infof("wrote %d regions to %s", len(ds.Regions), settings.OutputPath)

	return nil
}

// UpCommandBuilder constructs the cli.Command for "up", wiring metadata,
// flags, and the action handler.
func UpCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "up",
		Usage:     "update the price dataset",
		UsageText: `icpq up [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "print a dataset preview instead of writing it",
				Value:   false,
			},
		},
		Action: UpCommandAction,
	}
}
