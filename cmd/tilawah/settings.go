package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/service"
)

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change reading settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range service.Fields {
				v, _ := c.app.Settings.Value(f)
				c.printf("%-20s %s\n", f, v)
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Change one setting",
		Long: `Changes one setting. Fields: theme (light, dark, sepia), reciter,
translation, tafsir (edition identifiers, see "surah editions"),
arabicFont (amiri, naskh), translationFont (poppins), arabicFontSize and
translationFontSize (10..72).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := service.ParseField(args[0])
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			if err := c.app.Settings.Set(field, args[1]); err != nil {
				return err
			}
			v, _ := c.app.Settings.Value(field)
			c.printf("%s = %s\n", field, v)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Settings.Reset()
			c.printf("Settings restored\n")
			return nil
		},
	}

	cmd.AddCommand(show, set, reset)
	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	var name, picture string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.app.Reading.Profile()
			changed := false
			if cmd.Flags().Changed("name") {
				p.Name = name
				changed = true
			}
			if cmd.Flags().Changed("picture") {
				p.Picture = picture
				changed = true
			}
			if changed {
				c.app.Reading.SetProfile(p)
				p = c.app.Reading.Profile()
			}
			display := p.Name
			if display == "" {
				display = "(no name)"
			}
			c.printf("Name:    %s\n", display)
			if p.Picture != "" {
				c.printf("Picture: %s\n", p.Picture)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&picture, "picture", "", "Path or URL of your picture")
	return cmd
}

func (c *cli) langCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lang [en|ar|fr]",
		Short: "Show or change the interface language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := c.app.Reading.SetLang(models.Lang(args[0])); err != nil {
					return err
				}
			}
			c.printf("%s\n", c.app.Reading.Lang())
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your reading streak and last read position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := c.app.Reading.Stats()
			streak := c.app.Reading.CurrentStreak(time.Now())
			c.printf("Streak:    %d day(s)\n", streak)
			if stats.LastReadDate != "" {
				c.printf("Last read: %s on %s\n", lastReadLine(c.app.Reading.LastRead()), stats.LastReadDate)
			} else {
				c.printf("Last read: %s\n", lastReadLine(c.app.Reading.LastRead()))
			}
			c.printf("Bookmarks: %d\n", countBookmarks(c.app.Folders.ListAll()))
			c.printf("Notes:     %d\n", len(c.app.Notes.All()))
			return nil
		},
	}
}

func countBookmarks(folders []models.Folder) int {
	n := 0
	for _, f := range folders {
		n += len(f.Bookmarks)
	}
	return n
}
