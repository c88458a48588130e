package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFlags returns the flags of the render command
func RenderFlags() []cli.Flag {
	return append(sceneFlags(),
		cli.IntFlag{
			Name:  "workers, w",
			Usage: "number of render workers (0 = all CPUs)",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: renderer.DefaultTileSize,
			Usage: "tile edge in pixels",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "image filename for the rendered frame (default output/<scene>/render_<timestamp>.<format>)",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: "png",
			Usage: "image format when --out is not set: png, bmp or tiff",
		},
	)
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(sc, renderer.Config{
		TileSize:   ctx.Int("tile-size"),
		NumWorkers: ctx.Int("workers"),
	}, logger)
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, stats, err := rt.Render(renderCtx)
	if err != nil {
		return err
	}

	imgFile, err := outputPath(ctx, sc.Name)
	if err != nil {
		return err
	}
	if err := output.WriteFile(imgFile, fb); err != nil {
		return err
	}

	displayFrameStats(sc, stats)
	logger.Noticef("wrote frame to %s", imgFile)
	return nil
}

func displayFrameStats(sc *scene.Scene, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Frame", "Primitives", "Hit pixels", "Sphere hits", "Triangle hits", "Mean lightness", "Std dev", "Workers", "Tiles"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", sc.GetPrimitiveCount()),
		fmt.Sprintf("%d (%02.1f %%)", stats.HitPixels, 100*stats.Coverage()),
		fmt.Sprintf("%d", stats.SphereHits),
		fmt.Sprintf("%d", stats.TriangleHits),
		fmt.Sprintf("%.4f", stats.MeanLightness),
		fmt.Sprintf("%.4f", stats.StdDevLightness),
		fmt.Sprintf("%d", stats.NumWorkers),
		fmt.Sprintf("%d", stats.NumTiles),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
