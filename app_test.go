package yamljson_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/0xalexb/yamljson"
	"github.com/0xalexb/yamljson/config"
	"github.com/0xalexb/yamljson/listener"
	"github.com/0xalexb/yamljson/logging"
	"github.com/0xalexb/yamljson/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func populateServer(srv **listener.Server) fx.Option {
	return fx.Populate(fx.Annotate(srv, fx.ParamTags(`name:"`+service.ListenerName+`"`)))
}

func post(t *testing.T, addr, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
		"http://"+addr+service.ConvertPath, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(data)
}

func TestNewApp_WithModules(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	var invoked bool

	app := yamljson.NewApp(
		yamljson.WithLogWriter(io.Discard),
		yamljson.WithModules(fx.Invoke(func() { invoked = true })),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })
	assert.True(t, invoked)
}

func TestNewApp_LoggerAndConfigSupplied(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	var buf bytes.Buffer

	var (
		logger *slog.Logger
		logCfg logging.LoggerConfig
	)

	app := yamljson.NewApp(
		yamljson.WithLogLevel("warn"),
		yamljson.WithLogWriter(&buf),
		yamljson.WithModules(fx.Populate(&logger, &logCfg)),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Equal(t, "warn", logCfg.Level)

	logger.Info("hidden")
	logger.Warn("shown")

	var entry map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
}

func TestNewApp_ServesConversions(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	var srv *listener.Server

	app := yamljson.NewApp(
		yamljson.WithLogWriter(io.Discard),
		yamljson.WithServiceConfig(&config.ServiceConfig{Listen: "127.0.0.1:0"}),
		yamljson.WithModules(populateServer(&srv)),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	status, body := post(t, srv.Addr(), "defaults: &d {adapter: pg}\ndev:\n  <<: *d\n  host: db\n")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"defaults":{"adapter":"pg"},"dev":{"adapter":"pg","host":"db"}}`, body)

	status, body = post(t, srv.Addr(), "a: [\n")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, `"kind":"parse"`)
}

func TestNewApp_WithConfigFile(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	var (
		srv *listener.Server
		cfg *config.ServiceConfig
	)

	app := yamljson.NewApp(
		yamljson.WithLogWriter(io.Discard),
		yamljson.WithConfigFile("testdata/service.yaml"),
		yamljson.WithModules(populateServer(&srv), fx.Populate(&cfg)),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
	assert.Equal(t, 1024, cfg.MaxMergePairs)
	assert.Equal(t, "error", cfg.Log.Level)

	status, _ := post(t, srv.Addr(), "ok: yes")
	assert.Equal(t, http.StatusOK, status)
}

func TestNewApp_ConfigErrors(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	testCases := []struct {
		name string
		opt  yamljson.Option
	}{
		{name: "missing file", opt: yamljson.WithConfigFile("testdata/missing.yaml")},
		{name: "invalid parser", opt: yamljson.WithConfigFile("testdata/invalid.yaml")},
		{name: "invalid limits", opt: yamljson.WithServiceConfig(&config.ServiceConfig{MaxValues: -1})},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			app := yamljson.NewApp(yamljson.WithLogWriter(io.Discard), testCase.opt)

			require.Error(t, app.Start())
		})
	}
}

func TestApp_StartStop(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	var stopped bool

	app := yamljson.NewApp(
		yamljson.WithLogWriter(io.Discard),
		yamljson.WithModules(fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{OnStop: func(context.Context) error {
				stopped = true

				return nil
			}})
		})),
	)

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
	assert.True(t, stopped)
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *yamljson.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.NotPanics(t, app.Run)
}

func TestApp_Run(t *testing.T) { //nolint:paralleltest // NewApp replaces slog.Default
	app := yamljson.NewApp(
		yamljson.WithLogWriter(io.Discard),
		yamljson.WithModules(fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() { _ = shutdowner.Shutdown() }()
		})),
	)

	require.NotPanics(t, app.Run)
}
