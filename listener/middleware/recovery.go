package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// recoveryWriter tracks whether the response has been started.
type recoveryWriter struct {
	http.ResponseWriter

	written bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	if code == http.StatusSwitchingProtocols || code >= http.StatusOK {
		w.written = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.written = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

func (w *recoveryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery turns a panic in a downstream handler into a logged error and a
// 500 JSON response of kind "internal". http.ErrAbortHandler is re-panicked.
// When the response was already started only the log entry is written.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recWriter := &recoveryWriter{ResponseWriter: w}

			defer func() { //nolint:contextcheck
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []slog.Attr{
					slog.String("panic", fmt.Sprintf("%v", rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if reqID := GetRequestID(r.Context()); reqID != "" {
					attrs = append(attrs, slog.String("request_id", reqID))
				}

				if recWriter.written {
					attrs = append(attrs, slog.Bool("response_already_written", true))
					orDefault(logger).LogAttrs(r.Context(), slog.LevelError,
						"panic recovered after response was already written", attrs...)

					return
				}

				orDefault(logger).LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

				WriteError(recWriter, http.StatusInternalServerError, ErrorDetail{
					Kind:    "internal",
					Message: http.StatusText(http.StatusInternalServerError),
				})
			}()

			next.ServeHTTP(recWriter, r)
		})
	}
}
