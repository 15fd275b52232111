// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for icpq. It wires flags,
// validators, and actions for the up and pq subcommands.
package command
