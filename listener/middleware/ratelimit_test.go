package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func serve(handler http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/convert", nil))

	return rec
}

func TestRateLimit_BurstThenThrottle(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	handler := rateLimit(newTokenBucket(1, 2, clock.Now))(okHandler())

	require.Equal(t, http.StatusOK, serve(handler).Code)
	require.Equal(t, http.StatusOK, serve(handler).Code)

	rec := serve(handler)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, KindRateLimited, decodeError(t, rec).Kind)

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, serve(handler).Code, "one token refilled")
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	handler := RateLimit(0, 0)(okHandler())

	for range 100 {
		require.Equal(t, http.StatusOK, serve(handler).Code)
	}
}

func TestRateLimit_BurstAtLeastOne(t *testing.T) {
	t.Parallel()

	handler := RateLimit(0.001, 0)(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler).Code)
}
