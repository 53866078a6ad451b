package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestApplication() *application {
	cfg := &Config{Environment: "test", Version: "test"}
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 2

	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	middleware := app.recoverPanic(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestRateLimit(t *testing.T) {
	app := newTestApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.rateLimit(handler)

	// the burst allows two requests; the third must be rejected
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		res := httptest.NewRecorder()

		middleware.ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	res := httptest.NewRecorder()

	middleware.ServeHTTP(res, req)
	assert.Equal(t, http.StatusTooManyRequests, res.Code)

	// a different client gets its own bucket
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	res = httptest.NewRecorder()

	middleware.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApplication()

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	res := httptest.NewRecorder()

	app.healthCheckHandler(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "available")
}
