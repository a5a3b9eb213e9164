package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// KindRateLimited is the error kind of a throttled request.
const KindRateLimited = "rate_limited"

// tokenBucket is a single global bucket refilled continuously.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64
	last       time.Time
	now        func() time.Time
}

func newTokenBucket(perSecond float64, burst int, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(burst),
		capacity:   float64(burst),
		refillRate: perSecond,
		last:       now(),
		now:        now,
	}
}

// take consumes one token or reports how long until one is available.
func (b *tokenBucket) take() (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := max(0, now.Sub(b.last).Seconds())
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--

		return true, 0
	}

	return false, time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
}

// RateLimit throttles requests with a global token bucket. Throttled requests
// get 429, a Retry-After header and a JSON error. A non-positive rate
// disables the limiter; a non-positive burst becomes 1.
func RateLimit(perSecond float64, burst int) Middleware {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return rateLimit(newTokenBucket(perSecond, max(burst, 1), time.Now))
}

func rateLimit(bucket *tokenBucket) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := bucket.take()
			if !ok {
				seconds := max(int(math.Ceil(retryAfter.Seconds())), 1)

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				WriteError(w, http.StatusTooManyRequests, ErrorDetail{
					Kind:    KindRateLimited,
					Message: http.StatusText(http.StatusTooManyRequests),
				})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
