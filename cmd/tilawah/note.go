package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/commands"
	"github.com/dastanaron/tilawah/internal/models"
)

func (c *cli) noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage per-verse notes",
	}

	set := &cobra.Command{
		Use:   "set SURAH:AYAH TEXT",
		Short: "Write the note of a verse; empty text deletes it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			c.app.Notes.Set(ref.Surah, ref.Ayah, text)
			if strings.TrimSpace(text) == "" {
				c.printf("Deleted note %s\n", ref)
			} else {
				c.printf("Saved note %s\n", ref)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get SURAH:AYAH",
		Short: "Print the note of a verse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := models.ParseVerseRef(args[0])
			if err != nil {
				return err
			}
			text, ok := c.app.Notes.Get(ref.Surah, ref.Ayah)
			if !ok {
				c.printf("no note for %s\n", ref)
				return nil
			}
			c.printf("%s\n", text)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm SURAH:AYAH",
		Short: "Delete the note of a verse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := models.ParseVerseRef(args[0])
			if err != nil {
				return err
			}
			c.app.Notes.Delete(ref.Surah, ref.Ayah)
			c.printf("Deleted note %s\n", ref)
			return nil
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := c.app.Notes.All()
			keys := make([]string, 0, len(notes))
			for k := range notes {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				a, errA := models.ParseVerseRef(keys[i])
				b, errB := models.ParseVerseRef(keys[j])
				if errA != nil || errB != nil {
					return keys[i] < keys[j]
				}
				if a.Surah != b.Surah {
					return a.Surah < b.Surah
				}
				return a.Ayah < b.Ayah
			})
			for _, k := range keys {
				c.printf("%-8s %s\n", k, notes[k])
			}
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Export all notes to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewExportCommand(c.app.Folders, c.app.Notes, c.out).Execute(commands.FormatNotes, args[0])
		},
	}

	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge notes from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewImportCommand(c.app.Bookmarks, c.app.Notes, c.out).Execute(commands.FormatNotes, args[0])
		},
	}

	cmd.AddCommand(set, get, rm, ls, export, imp)
	return cmd
}

func (c *cli) transferFlags(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", string(commands.FormatBookmarks), "What to transfer: bookmarks (HTML) or notes (JSON)")
}

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export bookmarks to a Netscape HTML file, or notes to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := commands.ParseFormat(format)
			if err != nil {
				return err
			}
			return commands.NewExportCommand(c.app.Folders, c.app.Notes, c.out).Execute(f, args[0])
		},
	}
	c.transferFlags(cmd, &format)
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import bookmarks from a Netscape HTML file, or notes from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := commands.ParseFormat(format)
			if err != nil {
				return err
			}
			return commands.NewImportCommand(c.app.Bookmarks, c.app.Notes, c.out).Execute(f, args[0])
		},
	}
	c.transferFlags(cmd, &format)
	return cmd
}

func (c *cli) clearDoublesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-doubles",
		Short: "Remove duplicate bookmarks inside each folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewClearDoublesCommand(c.app.Bookmarks, c.out).Execute()
		},
	}
}
