package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/focusengine/dietitian-focus/pkg/analyzer"
	"github.com/focusengine/dietitian-focus/pkg/cache"
	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/gemini"
	"github.com/focusengine/dietitian-focus/pkg/logging"
	"github.com/focusengine/dietitian-focus/pkg/server"
	"github.com/focusengine/dietitian-focus/pkg/web"
)

const (
	name           = "focusd"
	versionDefault = "dev"

	// AnalyzePath is the proxy endpoint used by the web page.
	AnalyzePath = "/api/analyze"

	// EnvPromptStyle selects the default prompt style.
	EnvPromptStyle = "PROMPT_STYLE"
	// EnvRedisURL enables the response cache when set.
	EnvRedisURL = "REDIS_URL"
	// EnvCacheTTLSeconds overrides the cache entry lifetime.
	EnvCacheTTLSeconds = "CACHE_TTL_SECONDS"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/focusengine/dietitian-focus/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It loads .env, configures logging, wires the analyzer and serves the routes.
func Serve() error {
	ctx := context.Background()

	envErr := loadDotEnv()
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)
	if envErr != nil {
		slog.Warn("failed to load .env", "error", envErr)
	}

	svc, closeCache, err := newService()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}
	defer closeCache()

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(svc)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// routes maps paths to handlers: the analyze proxy and the web page.
func routes(svc *analyzer.Service) map[string]http.HandlerFunc {
	h := analyzer.NewHandler(svc, defaults.AnalyzeHandlerTimeout)
	return map[string]http.HandlerFunc{
		AnalyzePath: h.HandleAnalyze,
		"/":         web.Handler().ServeHTTP,
	}
}

// newService builds the analyzer from the environment. The returned func
// closes the cache connection.
func newService() (*analyzer.Service, func(), error) {
	client := gemini.NewClient(gemini.EnvOptions()...)
	if !client.HasAPIKey() {
		slog.Warn("GEMINI_API_KEY is not set; analyze requests will fail until it is configured")
	}

	opts := []analyzer.Option{}

	if v := strings.TrimSpace(os.Getenv(EnvPromptStyle)); v != "" {
		style, err := analyzer.ParseStyle(v)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", EnvPromptStyle, err)
		}
		opts = append(opts, analyzer.WithDefaultStyle(style))
	}

	closeCache := func() {}
	if c := openCache(); c != nil {
		opts = append(opts, analyzer.WithCache(c, cacheTTL()))
		closeCache = func() {
			if err := c.Close(); err != nil {
				slog.Warn("failed to close cache", "error", err)
			}
		}
	}

	svc := analyzer.NewService(client, opts...)
	slog.Info("analyzer configured",
		"model", client.Model(),
		"defaultStyle", string(svc.DefaultStyle()),
		"cache", svc.CacheEnabled(),
	)
	return svc, closeCache, nil
}

// openCache connects to REDIS_URL. It returns nil when the variable is unset
// or the server is unreachable; the service then runs without a cache.
func openCache() cache.Cache {
	url := strings.TrimSpace(os.Getenv(EnvRedisURL))
	if url == "" {
		return nil
	}
	c, err := cache.NewRedis(url)
	if err != nil {
		slog.Warn("response cache disabled", "error", err)
		return nil
	}
	return c
}

func cacheTTL() time.Duration {
	v := strings.TrimSpace(os.Getenv(EnvCacheTTLSeconds))
	if v == "" {
		return defaults.CacheTTL
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		slog.Warn("ignoring invalid cache ttl", "env", EnvCacheTTLSeconds, "value", v)
		return defaults.CacheTTL
	}
	return time.Duration(seconds) * time.Second
}

// loadDotEnv reads .env from the working directory if present. Variables
// already set in the environment win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
