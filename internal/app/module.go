package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gosheet/internal/sheet"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.sheet.enabled") {
		slog.Warn("module sheet is disabled")
		return
	}

	closeSheet, err := sheet.New(sheet.Dependency{
		Config:  a.config,
		Router:  a.router,
		ID:      a.uuid,
		Metrics: a.metrics,
	})
	if err != nil {
		slog.Error("failed to init module sheet", "error", err)
		os.Exit(1)
	}
	if closeSheet != nil {
		a.addCloser("Sheet Store", closeSheet)
	}
}
