package main

import (
	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/ui"
)

func (c *cli) runTUI() error {
	app := ui.NewApp(c.app.Bookmarks, c.app.Folders, c.app.Notes, c.app.Log)
	return app.Run()
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse bookmark folders and notes in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}
}
