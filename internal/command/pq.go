// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/icpq/internal/cache"
	"github.com/staranto/icpq/internal/meta"
	"github.com/staranto/icpq/internal/output"
	"github.com/staranto/icpq/internal/query"
)

const pqUsage = `icpq pq [tier] [region]

  tier    one of 50GB, 200GB, 2TB, 6TB, 12TB (50, 2t, ... also work);
          defaults to 50GB
  region  case-insensitive match on an ISO code or country name

Examples:
  icpq pq              all regions ranked by 50GB price
  icpq pq 2tb          all regions ranked by 2TB price
  icpq pq us           every tier for the United States
  icpq pq 200gb jap    regions matching "jap" ranked by 200GB price
  icpq pq 2tb -l 5     the five cheapest 2TB regions`

// PqCommandAction is the action handler for the "pq" subcommand. It
// resolves a dataset through the cache chain, interprets the free-text
// arguments, and renders ranked results.
func PqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args := cmd.Args().Slice()
	if len(args) > 0 && (args[0] == "help" || args[0] == "?") {
		fmt.Println(pqUsage)
		return nil
	}

	ds, origin, err := cache.NewResolver(m.Settings).Resolve(ctx)
	if errors.Is(err, cache.ErrNoData) {
		// Degrade, don't crash: the front-end shows this line as-is.
		fmt.Println("no price data available; run `icpq up` or check the network")
		return nil
	}
	if err != nil {
		return err
	}
	log.Debugf("dataset served from %s", origin)

	tier, region := query.Tokenize(args)
	items := query.Run(ds, tier, region)

	return output.Items(os.Stdout, items, cmd.String("output"),
		cmd.Bool("titles"), cmd.Int("limit"), ds.LastUpdated)
}

// PqCommandBuilder constructs the cli.Command for "pq", wiring metadata,
// flags, and the action handler.
func PqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pq",
		Usage:     "price query",
		UsageText: `icpq pq [tier] [region] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit results returned (0 = all)",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("pq.limit", altsrc.StringSourcer(cfg.Source)),
					yaml.YAML("limit", altsrc.StringSourcer(cfg.Source)),
				),
				Value: 0,
			},
		}, NewGlobalFlags("pq")...),
		Action: PqCommandAction,
	}
}
