package main

import (
	"fmt"
	"os"

	"github.com/df07/go-raycaster/cmd"
	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag claims -v, which is the verbose flag here
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raycaster"
	app.Usage = "render sphere and triangle mesh scenes with a ray caster"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Build a scene from a built-in preset or a JSON scene file, cast one primary ray per
pixel across a pool of tile workers and write the shaded frame as png, bmp or tiff.

Frame statistics are printed once the image has been written.`,
			Flags:  cmd.RenderFlags(),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:        "grid",
			Usage:       "write a checkerboard test image",
			Description: `Write a black and white checkerboard whose black cells are fully transparent.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: scene.DefaultWidth,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: scene.DefaultHeight,
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "cell",
					Value: 50,
					Usage: "checker cell edge in pixels",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "grid.png",
					Usage: "image filename for the grid",
				},
			},
			Action: cmd.RenderGrid,
		},
		{
			Name:   "inspect",
			Usage:  "trace a single pixel and print what it hits",
			Flags:  cmd.InspectFlags(),
			Action: cmd.InspectPixel,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				cli.StringFlag{
					Name:  "scenes",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
				cli.StringFlag{
					Name:  "data",
					Value: "data",
					Usage: "directory holding the OFF mesh files",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of render workers per request (0 = all CPUs)",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}
