// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// icpq is the main package for the icpq command line tool. It collects
// iCloud+ storage prices across countries, normalizes them to CNY, and
// serves ranked lookups to interactive launcher front-ends.
package main
