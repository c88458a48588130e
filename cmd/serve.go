package cmd

import (
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/web/server"
	"github.com/urfave/cli"
)

// Serve renders over HTTP.
func Serve(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	webServer := server.NewServer(ctx.Int("port"), server.Options{
		ScenesDir: ctx.String("scenes"),
		DataDir:   ctx.String("data"),
		Render: renderer.Config{
			TileSize:   renderer.DefaultTileSize,
			NumWorkers: ctx.Int("workers"),
		},
	})

	return webServer.Start()
}
