package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2) // 1 rps, burst of 2
	t.Cleanup(rl.Stop)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(rl)(next)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	t.Cleanup(rl.Stop)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(rl)(next)

	// exhaust the first client's bucket
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// a different client is unaffected
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", nil)
	req2.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req2)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitStop(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop() // idempotent

	select {
	case _, ok := <-rl.stop:
		assert.False(t, ok, "stop channel should be closed")
	default:
		t.Error("stop channel still open after Stop")
	}

	// the limiter itself keeps working after the sweeper is gone
	assert.True(t, rl.get("10.0.0.3").Allow())
}
