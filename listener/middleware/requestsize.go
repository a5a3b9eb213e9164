package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize applies when MaxRequestSize is given a non-positive limit.
const DefaultMaxRequestSize int64 = 1 << 20

// KindTooLarge is the error kind of a rejected oversized body.
const KindTooLarge = "request_too_large"

// MaxRequestSize rejects bodies whose declared Content-Length exceeds limit
// with 413 and caps the rest with http.MaxBytesReader, so handlers see a
// *http.MaxBytesError when reading past the limit.
func MaxRequestSize(limit int64) Middleware {
	if limit <= 0 {
		slog.Warn("middleware: request size limit must be positive, using default",
			slog.Int64("provided", limit), slog.Int64("default", DefaultMaxRequestSize))

		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteError(w, http.StatusRequestEntityTooLarge, ErrorDetail{
					Kind:    KindTooLarge,
					Message: fmt.Sprintf("request body exceeds %d bytes", limit),
				})

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
