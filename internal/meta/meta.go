// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package meta carries per-invocation state handed to every command.
package meta

import (
	"context"

	"github.com/staranto/icpq/internal/config"
)

type Meta struct {
	Args     []string
	Config   config.Type
	Settings config.Settings
	Context  context.Context
}
