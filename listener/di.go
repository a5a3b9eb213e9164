package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates an Fx module serving the http.Handler tagged with name.
// With options the module supplies its own Config; otherwise a Config tagged
// with name must be provided, as the root App does from ServiceConfig. The
// resulting *Server is provided under the same name.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(nameTag(name)))))
	}

	newServer := func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, cfg Config) (*Server, error) {
		srv, err := NewServer(name, handler, cfg, func() {
			shutdownErr := shutdowner.Shutdown(fx.ExitCode(1))
			if shutdownErr != nil {
				slog.Error("failed to trigger shutdown", slog.String("listener", name), slog.Any("error", shutdownErr))
			}
		})
		if err != nil {
			return nil, err
		}

		lifecycle.Append(fx.Hook{
			OnStart: srv.Start,
			OnStop:  srv.Stop,
		})

		return srv, nil
	}

	moduleOpts = append(moduleOpts,
		fx.Provide(fx.Annotate(newServer,
			fx.ParamTags("", "", nameTag(name), nameTag(name)),
			fx.ResultTags(nameTag(name)),
		)),
		fx.Invoke(fx.Annotate(func(*Server) {}, fx.ParamTags(nameTag(name)))),
	)

	return fx.Module(name, moduleOpts...)
}
