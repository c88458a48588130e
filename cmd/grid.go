package cmd

import (
	"errors"

	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/urfave/cli"
)

// Write the checkerboard test image.
func RenderGrid(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	width, height, cell := ctx.Int("width"), ctx.Int("height"), ctx.Int("cell")
	if width <= 0 || height <= 0 || cell <= 0 {
		return errors.New("width, height and cell must be positive")
	}

	fb := renderer.Checkerboard(width, height, cell)

	imgFile := ctx.String("out")
	if err := output.WriteFile(imgFile, fb); err != nil {
		return err
	}

	logger.Noticef("wrote %dx%d grid with %d pixel cells to %s", width, height, cell, imgFile)
	return nil
}
