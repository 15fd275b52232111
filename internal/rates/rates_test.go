// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/staranto/icpq/internal/fetch"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRates(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		check   func(*testing.T, map[string]float64)
	}{
		{
			name:   "well-formed table",
			status: http.StatusOK,
			body:   `{"result":"success","base_code":"USD","rates":{"USD":1,"CNY":7.2,"JPY":150.4}}`,
			check: func(t *testing.T, table map[string]float64) {
				assert.Len(t, table, 3)
				assert.Equal(t, 7.2, table["CNY"])
				assert.Equal(t, 1.0, table["USD"])
			},
		},
		{
			name:    "non-positive rates dropped",
			status:  http.StatusOK,
			body:    `{"rates":{"USD":1,"BAD":0,"WORSE":-3,"UGLY":"x"}}`,
			wantErr: nil,
			check: func(t *testing.T, table map[string]float64) {
				assert.Len(t, table, 1)
			},
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "",
			wantErr: fetch.ErrNetwork,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    "<html>gateway</html>",
			wantErr: fetch.ErrParse,
		},
		{
			name:    "no rates object",
			status:  http.StatusOK,
			body:    `{"result":"success"}`,
			wantErr: fetch.ErrParse,
		},
		{
			name:    "rates not an object",
			status:  http.StatusOK,
			body:    `{"rates":[1,2,3]}`,
			wantErr: fetch.ErrParse,
		},
		{
			name:    "empty rates object",
			status:  http.StatusOK,
			body:    `{"rates":{}}`,
			wantErr: fetch.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			p := &Provider{URL: srv.URL, Timeout: 5 * time.Second}

			table, err := p.Rates(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if tt.check != nil {
				tt.check(t, table)
			}
		})
	}
}

func TestRatesUnreachableHost(t *testing.T) {
	p := &Provider{URL: "http://127.0.0.1:1", Timeout: time.Second}
	_, err := p.Rates(context.Background())
	assert.ErrorIs(t, err, fetch.ErrNetwork)
}
