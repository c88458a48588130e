package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Trace a single pixel and print the hit record.
func InspectPixel(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	x, y := ctx.Int("x"), ctx.Int("y")
	if x < 0 || x >= sc.Width || y < 0 || y >= sc.Height {
		return fmt.Errorf("pixel (%d,%d) outside the %dx%d frame", x, y, sc.Width, sc.Height)
	}

	rt, err := renderer.NewRaytracer(sc, renderer.DefaultConfig(), logger)
	if err != nil {
		return err
	}

	sample, hit := rt.TracePixel(x, y)
	logger.Noticef("pixel (%d,%d)\n%s", x, y, formatSample(sc, sample, hit))
	return nil
}

// formatSample renders the outcome of a pixel trace as a two column table
func formatSample(sc *scene.Scene, sample renderer.Sample, hit bool) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Field", "Value"})

	table.Append([]string{"ray origin", sample.Ray.Origin.String()})
	table.Append([]string{"ray direction", sample.Ray.Direction.String()})
	table.Append([]string{"hit", fmt.Sprintf("%t", hit)})

	if hit {
		record := sample.Hit
		table.Append([]string{"primitive", record.Kind.String()})
		switch record.Kind {
		case geometry.PrimitiveSphere:
			sphere := sc.Spheres[record.SphereIndex]
			table.Append([]string{"sphere", fmt.Sprintf("#%d center %v radius %g", record.SphereIndex, sphere.Center, sphere.Radius)})
		case geometry.PrimitiveTriangle:
			alpha, beta, gamma := record.Barycentric()
			table.Append([]string{"mesh", fmt.Sprintf("#%d %s face %d", record.MeshIndex, sc.Meshes[record.MeshIndex].Name, record.FaceIndex)})
			table.Append([]string{"barycentric", fmt.Sprintf("(%.6f, %.6f, %.6f)", alpha, beta, gamma)})
		}
		table.Append([]string{"point", record.Point.String()})
		table.Append([]string{"normal", record.Normal.String()})
		table.Append([]string{"t", fmt.Sprintf("%.6f", record.T)})
		table.Append([]string{"shading", record.Material.Model.String()})
		table.Append([]string{"lightness", fmt.Sprintf("%.6f", sample.Lightness)})
		table.Append([]string{"color", sample.Color.String()})
	}

	table.Render()
	return buf.String()
}

// InspectFlags returns the flags of the inspect command
func InspectFlags() []cli.Flag {
	return append(sceneFlags(),
		cli.IntFlag{
			Name:  "x",
			Usage: "pixel column",
		},
		cli.IntFlag{
			Name:  "y",
			Usage: "pixel row",
		},
	)
}
