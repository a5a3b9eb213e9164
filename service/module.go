package service

import (
	"log/slog"
	"net/http"

	"github.com/0xalexb/yamljson/config"
	"github.com/0xalexb/yamljson/listener"
	"github.com/0xalexb/yamljson/metrics"

	"go.uber.org/fx"
)

// ListenerName tags the http.Handler and listener.Config served by the API listener.
const ListenerName = "api"

// Module provides the Service, its metrics collector, and the http.Handler
// and listener.Config tagged ListenerName. It needs a *config.ServiceConfig
// and a *slog.Logger from the container.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module() fx.Option {
	tag := `name:"` + ListenerName + `"`

	return fx.Module("service",
		fx.Provide(
			NewCollector,
			New,
			fx.Annotate(
				func(svc *Service) http.Handler { return svc.Handler() },
				fx.ResultTags(tag),
			),
			fx.Annotate(ListenerConfig, fx.ResultTags(tag)),
		),
	)
}

// NewCollector returns a metrics collector, or nil when metrics are disabled.
func NewCollector(cfg *config.ServiceConfig) *metrics.Collector {
	if !cfg.MetricsEnabled() {
		return nil
	}

	return metrics.NewCollector(nil)
}

// ListenerConfig derives the API listener settings. The write timeout leaves
// room for the conversion timeout to answer first.
func ListenerConfig(cfg *config.ServiceConfig, logger *slog.Logger) listener.Config {
	lcfg := listener.Config{Address: cfg.Listen}

	if cfg.RequestTimeout > 0 {
		lcfg.WriteTimeout = cfg.RequestTimeout + cfg.RequestTimeout/2
	}

	logger.Debug("api listener configured",
		slog.String("address", lcfg.Address), slog.Duration("write_timeout", lcfg.WriteTimeout))

	return lcfg
}
