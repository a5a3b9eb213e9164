package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_LevelByStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "INFO"},
		{name: "client error", status: http.StatusUnprocessableEntity, wantLevel: "WARN"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			handler := Logging(bufferLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
				_, _ = io.WriteString(w, "{}")
			}))

			handler.ServeHTTP(httptest.NewRecorder(),
				httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader("a: 1")))

			var entry map[string]any

			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, testCase.wantLevel, entry["level"])
			assert.Equal(t, "http request", entry["msg"])
			assert.Equal(t, "/v1/convert", entry["path"])
			assert.InDelta(t, testCase.status, entry["status"], 0)
			assert.InDelta(t, 2, entry["bytes"], 0)
			assert.InDelta(t, 4, entry["request_bytes"], 0)
		})
	}
}

func TestLogging_DefaultStatusAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
		RequestID(),
		Logging(bufferLogger(&buf)),
	)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "trace-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.InDelta(t, http.StatusOK, entry["status"], 0)
	assert.Equal(t, "trace-1", entry["request_id"])
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusCreated, sw.status)
	assert.Same(t, rec, sw.Unwrap())
}
