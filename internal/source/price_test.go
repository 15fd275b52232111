// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{
			name: "dollar prefix",
			in:   "$0.99",
			want: 0.99,
		},
		{
			name: "european grouping",
			in:   "1.234,56",
			want: 1234.56,
		},
		{
			name: "yen no decimals",
			in:   "¥198",
			want: 198,
		},
		{
			name: "plain dot decimal",
			in:   "1234.56",
			want: 1234.56,
		},
		{
			name: "comma decimal",
			in:   "9,99 €",
			want: 9.99,
		},
		{
			name: "trailing per month noise",
			in:   "HK$68/month",
			want: 68,
		},
		{
			name: "whitespace and symbol",
			in:   " ₹ 75 ",
			want: 75,
		},
		{
			name: "multiple groupings",
			in:   "1.199.000,00",
			want: 1199000,
		},
		{
			name:    "no digits",
			in:      "free",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "lone separator",
			in:      ".",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
