package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/urfave/cli"
)

// loadScene builds the scene selected by the --config or --scene flags. A scene file
// wins over a preset name; --width and --height override either when positive.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	width, height := ctx.Int("width"), ctx.Int("height")
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: got %dx%d", scene.ErrInvalidDimensions, width, height)
	}

	if configFile := ctx.String("config"); configFile != "" {
		return scene.LoadSceneFile(configFile, width, height)
	}

	name := ctx.String("scene")
	if name == "" {
		return nil, errors.New("missing --scene or --config")
	}

	return scene.NewPresetScene(name, scene.PresetOptions{
		Width:   width,
		Height:  height,
		DataDir: ctx.String("data"),
	})
}

// outputPath returns the --out flag, or output/<scene>/render_<timestamp>.<format>
// when it is empty.
func outputPath(ctx *cli.Context, sceneName string) (string, error) {
	if out := ctx.String("out"); out != "" {
		return out, nil
	}

	format, err := output.ParseFormat(ctx.String("format"))
	if err != nil {
		return "", err
	}
	if sceneName == "" {
		sceneName = "scene"
	}

	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format)), nil
}

// sceneFlags are shared by every command that builds a scene
func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "single-sphere",
			Usage: "built-in scene name (see the scenes command)",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "JSON scene file, overrides --scene",
		},
		cli.StringFlag{
			Name:  "data, d",
			Value: "data",
			Usage: "directory holding the OFF mesh files",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width (0 keeps the scene's width)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "frame height (0 keeps the scene's height)",
		},
	}
}
