package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/nlwcopa/bolao-web/cmd"
)

//go:embed static
var staticFiles embed.FS

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	if err := cmd.Execute(rootCtx, staticFS); err != nil {
		stop()
		os.Exit(1)
	}
}
