package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avasilyev/football-stats-service/internal/handler"
)

type stubPingerErr struct{ err error }

func (s stubPingerErr) Ping(ctx context.Context) error { return s.err }

func TestHealth_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, stubPingerErr{err: errors.New("db down")}, handler.Services{})

	// liveness ignores dependencies
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealth_Readiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ready", func(t *testing.T) {
		r := gin.New()
		handler.Register(r, stubPingerNoop{}, handler.Services{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("db unavailable", func(t *testing.T) {
		r := gin.New()
		handler.Register(r, stubPingerErr{err: errors.New("db down")}, handler.Services{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})
}
