package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkglog"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
	"github.com/shandysiswandi/gosheet/internal/sheet/inbound"
)

// configDefaults lets the service start from an almost empty config file.
//
//nolint:gochecknoglobals // read-only table
var configDefaults = map[string]any{
	"tz":                              "UTC",
	"log.level":                       "info",
	"server.address.http":             ":8080",
	"server.read_timeout_seconds":     30,
	"server.write_timeout_seconds":    30,
	"server.shutdown_timeout_seconds": 10,
	"server.cors.allowed_origins":     "*",
	"upload.max_bytes":                inbound.DefaultMaxUploadBytes,
	"modules.sheet.enabled":           true,
	"modules.sheet.point_scan_limit":  100,
	"store.driver":                    "memory",
	"store.redis.prefix":              "gosheet:",
	"store.postgres.node_id":          -1,
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, configDefaults)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})
}

func (a *App) initLogging() {
	pkglog.InitLogging(pkglog.Options{
		Service: serviceName,
		Level:   a.config.GetString("log.level"),
	})
}

func (a *App) initLibraries() {
	a.uuid = pkguid.NewUUID()
	a.metrics = pkgmetrics.New(serviceName)
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Use(a.metrics.Middleware)
	a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(a.config.GetInt("server.read_timeout_seconds")) * time.Second,
		WriteTimeout:      time.Duration(a.config.GetInt("server.write_timeout_seconds")) * time.Second,
		BaseContext:       func(net.Listener) context.Context { return a.ctx },
	}
}
