// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var priceJunk = regexp.MustCompile(`[^0-9.,]`)

// ParsePrice extracts a float from a locale-formatted price string.
// Currency symbols and whitespace are stripped, commas become dots, and
// when more than one dot remains everything but the last segment is
// treated as integer-part grouping. Handles "$0.99", "1.234,56" (-> 1234.56)
// and "¥198" alike.
func ParsePrice(s string) (float64, error) {
	cleaned := priceJunk.ReplaceAllString(s, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if segs := strings.Split(cleaned, "."); len(segs) > 1 {
		cleaned = strings.Join(segs[:len(segs)-1], "") + "." + segs[len(segs)-1]
	}

	if cleaned == "" || cleaned == "." {
		return 0, fmt.Errorf("no price in %q", s)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q: %w", s, err)
	}
	return v, nil
}
