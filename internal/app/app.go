package app

import (
	"context"
	"net/http"
	"time"

	"github.com/shandysiswandi/gosheet/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gosheet/internal/pkg/pkguid"
)

const serviceName = "gosheet"

type closer struct {
	name string
	fn   func(context.Context) error
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid    pkguid.StringID
	metrics *pkgmetrics.Metrics

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// closed in reverse order of registration
	closers []closer
}

func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLogging()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}

// ShutdownTimeout bounds how long Stop may take.
func (a *App) ShutdownTimeout() time.Duration {
	if d := time.Duration(a.config.GetInt("server.shutdown_timeout_seconds")) * time.Second; d > 0 {
		return d
	}
	return 10 * time.Second
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
