// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokereview/internal/api"
	"github.com/taibuivan/pokereview/internal/core/seed"
	"github.com/taibuivan/pokereview/internal/platform/sec"
	"github.com/taibuivan/pokereview/internal/platform/store"
)

type corsConfig struct{}

func (corsConfig) IsDevelopment() bool      { return false }
func (corsConfig) AllowedOrigins() []string { return []string{"http://localhost:3000"} }

type downStore struct {
	*store.MemoryStore
}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func newServer(t *testing.T, s store.Store) http.Handler {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	handlers := api.NewHandlers(s, store.DriverMemory, tokens, logger)
	server := api.NewServer(t.Context(), api.Options{Port: "0", CORS: corsConfig{}}, logger, tokens, handlers)
	return server.Handler()
}

func seeded(t *testing.T) *store.MemoryStore {
	t.Helper()

	s := store.NewMemoryStore()
	_, err := seed.Demo(context.Background(), s)
	require.NoError(t, err)
	return s
}

func do(handler http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Probes covers liveness and readiness.
*/
func TestServer_Probes(t *testing.T) {
	handler := newServer(t, seeded(t))

	assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, "/ready", "", "").Code)

	down := newServer(t, downStore{store.NewMemoryStore()})
	recorder := do(down, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "degraded")
}

/*
TestServer_AuthFlow exchanges an identity for a token and uses it.
*/
func TestServer_AuthFlow(t *testing.T) {
	handler := newServer(t, seeded(t))

	// 1. Protected routes refuse anonymous callers
	assert.Equal(t, http.StatusUnauthorized, do(handler, http.MethodGet, "/api/pokemon", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(handler, http.MethodGet, "/api/pokemon", "", "garbage").Code)

	// 2. Exchange
	recorder := do(handler, http.MethodPost, "/api/auth", `{"id":1}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	token := envelope.Data.Token
	require.NotEmpty(t, token)

	// 3. Authenticated calls reach every facade
	for _, target := range []string{
		"/api/pokemon",
		"/api/pokemon/1/rating",
		"/api/category",
		"/api/owner",
		"/api/country",
		"/api/review",
		"/api/reviewer",
	} {
		assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, target, "", token).Code, target)
	}

	rating := do(handler, http.MethodGet, "/api/pokemon/1/rating", "", token)
	assert.JSONEq(t, `{"data":3.67}`, rating.Body.String())

	// 4. Unknown principal
	assert.Equal(t, http.StatusBadRequest, do(handler, http.MethodPost, "/api/auth", `{"id":9999}`, "").Code)
}

/*
TestServer_RequestID echoes a correlation id on every response.
*/
func TestServer_RequestID(t *testing.T) {
	handler := newServer(t, seeded(t))

	recorder := do(handler, http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	withHeader := func(value string) string {
		request := httptest.NewRequest(http.MethodGet, "/health", nil)
		request.RemoteAddr = "192.0.2.1:1234"
		request.Header.Set("X-Request-ID", value)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Header().Get("X-Request-ID")
	}

	// 1. A well-formed client id is kept
	clientID := "0190a6b2-7c3e-7d4f-8a1b-2c3d4e5f6a7b"
	assert.Equal(t, clientID, withHeader(clientID))

	// 2. Anything else is replaced
	replaced := withHeader("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", replaced)
	assert.Len(t, replaced, 36)
}
