package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout applies when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

const timeoutBody = `{"error":{"kind":"timeout","message":"conversion did not finish in time"}}` + "\n"

// Timeout answers 503 with a JSON error when the handler runs longer than d.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		slog.Warn("middleware: timeout must be positive, using default",
			slog.Duration("provided", d), slog.Duration("default", DefaultTimeout))

		d = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}
