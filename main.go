package main

import (
	"context"

	"github.com/shandysiswandi/gosheet/internal/app"
)

func main() {
	application := app.New()
	<-application.Start() // blocks until SIGINT/SIGTERM/SIGHUP

	ctx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()

	application.Stop(ctx)
}
