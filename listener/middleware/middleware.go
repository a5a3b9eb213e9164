// Package middleware provides the HTTP middleware of the conversion service.
// Error responses share one JSON shape, see WriteError.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so that the first one listed is outermost.
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// ErrorDetail describes a failed request. Line and Column are set for parse errors.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type errorBody struct {
	Error ErrorDetail `json:"error"`
}

// WriteError writes {"error": detail} with the given status.
func WriteError(w http.ResponseWriter, status int, detail ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(errorBody{Error: detail})
	if err != nil {
		slog.Debug("middleware: writing error body failed", slog.Any("error", err))
	}
}

func orDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}
