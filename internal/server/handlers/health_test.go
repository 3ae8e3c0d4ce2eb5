package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		db         Pinger
		name       string
		wantStatus string
		statusCode int
	}{
		{name: "no database", db: nil, statusCode: http.StatusOK, wantStatus: "ok"},
		{name: "database ok", db: pingerFunc(func(ctx context.Context) error { return nil }), statusCode: http.StatusOK, wantStatus: "ok"},
		{
			name:       "database down",
			db:         pingerFunc(func(ctx context.Context) error { return errors.New("closed") }),
			statusCode: http.StatusServiceUnavailable,
			wantStatus: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(testLogger(), tt.db, "1.2.3")

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp HealthResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "1.2.3", resp.Version)
		})
	}
}
