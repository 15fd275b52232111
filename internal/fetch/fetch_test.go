// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/slow":
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	t.Run("success", func(t *testing.T) {
		body, err := Get(context.Background(), srv.URL+"/ok", time.Second)
		assert.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("non-2xx is a network error", func(t *testing.T) {
		_, err := Get(context.Background(), srv.URL+"/missing", time.Second)
		assert.ErrorIs(t, err, ErrNetwork)
	})

	t.Run("timeout is a network error", func(t *testing.T) {
		_, err := Get(context.Background(), srv.URL+"/slow", 50*time.Millisecond)
		assert.ErrorIs(t, err, ErrNetwork)
	})

	t.Run("connection refused is a network error", func(t *testing.T) {
		_, err := Get(context.Background(), "http://127.0.0.1:1/", time.Second)
		assert.ErrorIs(t, err, ErrNetwork)
	})
}
