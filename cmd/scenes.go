package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-raycaster/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Projection", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			info.Type,
			info.Projection,
			info.Description,
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%d", len(scenes))})

	table.Render()
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
