package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/0xalexb/yamljson/config"
	"github.com/0xalexb/yamljson/convert"
	"github.com/0xalexb/yamljson/document"
	"github.com/0xalexb/yamljson/listener/middleware"
	"github.com/0xalexb/yamljson/metrics"
)

// Routes served by Handler.
const (
	ConvertPath = "/v1/convert"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// Error kinds produced by the service itself, in addition to convert's kinds.
const (
	KindUnknownParser    = "unknown_parser"
	KindMethodNotAllowed = "method_not_allowed"
)

// Service converts YAML request bodies into JSON responses.
type Service struct {
	converters    map[string]*convert.Converter
	defaultParser string
	cfg           *config.ServiceConfig
	collector     *metrics.Collector
	logger        *slog.Logger
}

// New builds one Converter per parser backend from cfg. A nil collector
// disables metrics.
func New(cfg *config.ServiceConfig, collector *metrics.Collector, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svc := &Service{
		converters: make(map[string]*convert.Converter, 2),
		cfg:        cfg,
		collector:  collector,
		logger:     logger,
	}

	for _, backend := range []string{document.BackendGoccy, document.BackendYAMLv3} {
		conv, err := convert.NewConverter(
			convert.WithBackend(backend),
			convert.WithMaxMergePairs(cfg.MaxMergePairs),
			convert.WithMaxValues(cfg.MaxValues),
			convert.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("creating %s converter: %w", backend, err)
		}

		svc.converters[backend] = conv
	}

	conv, err := svc.converter(cfg.Parser)
	if err != nil {
		return nil, err
	}

	svc.defaultParser = conv.Backend()

	return svc, nil
}

func (s *Service) converter(name string) (*convert.Converter, error) {
	if name == "" {
		name = s.defaultParser
	}

	backend, err := document.CanonicalBackend(name)
	if err != nil {
		return nil, err
	}

	return s.converters[backend], nil
}

// Handler returns the routed handler wrapped in the middleware chain:
// Recovery, RequestID, Logging and RateLimit for every route, plus
// MaxRequestSize and Timeout on the conversion route.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(ConvertPath, middleware.Chain(http.HandlerFunc(s.handleConvert),
		middleware.MaxRequestSize(s.cfg.MaxBodyBytes),
		middleware.Timeout(s.cfg.RequestTimeout),
	))
	mux.HandleFunc(HealthPath, handleHealth)

	if s.collector != nil {
		mux.Handle(MetricsPath, s.collector.Handler())
	}

	return middleware.Chain(mux,
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.RateLimit(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst),
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`+"\n")
}

func (s *Service) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		middleware.WriteError(w, http.StatusMethodNotAllowed, middleware.ErrorDetail{
			Kind:    KindMethodNotAllowed,
			Message: "use POST with a YAML body",
		})

		return
	}

	conv, err := s.converter(r.URL.Query().Get("parser"))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrorDetail{
			Kind:    KindUnknownParser,
			Message: err.Error(),
		})

		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, middleware.ErrorDetail{
				Kind:    middleware.KindTooLarge,
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})

			return
		}

		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrorDetail{
			Kind:    "read_body",
			Message: err.Error(),
		})

		return
	}

	start := time.Now()
	result, err := conv.Convert(string(body))
	elapsed := time.Since(start)

	if err != nil {
		s.observe(conv.Backend(), convert.KindOf(err), len(body), elapsed)
		writeConvertError(w, err)

		return
	}

	var out []byte
	if r.URL.Query().Has("pretty") {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}

	if err != nil {
		s.observe(conv.Backend(), convert.KindInternal, len(body), elapsed)
		writeConvertError(w, err)

		return
	}

	s.observe(conv.Backend(), metrics.ResultOK, len(body), elapsed)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-YAML-Parser", conv.Backend())
	_, _ = w.Write(append(out, '\n'))
}

func (s *Service) observe(parser, result string, size int, elapsed time.Duration) {
	if s.collector != nil {
		s.collector.Observe(parser, result, size, elapsed)
	}
}

// StatusFor maps a convert.KindOf kind to an HTTP status.
func StatusFor(kind string) int {
	switch kind {
	case convert.KindParse:
		return http.StatusBadRequest
	case convert.KindNonScalarKey, convert.KindUnsupportedNode:
		return http.StatusUnprocessableEntity
	case convert.KindAllocation:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeConvertError(w http.ResponseWriter, err error) {
	kind := convert.KindOf(err)
	detail := middleware.ErrorDetail{Kind: kind, Message: err.Error()}

	var parseErr *document.ParseError
	if errors.As(err, &parseErr) {
		detail.Message = parseErr.Message
		detail.Line = parseErr.Line
		detail.Column = parseErr.Column
	}

	if kind == convert.KindInternal {
		detail.Message = http.StatusText(http.StatusInternalServerError)
	}

	middleware.WriteError(w, StatusFor(kind), detail)
}
