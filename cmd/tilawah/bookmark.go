package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/parser"
	"github.com/dastanaron/tilawah/internal/quran"
)

func parseRef(s string) (models.VerseRef, error) {
	ref, err := models.ParseVerseRef(s)
	if err != nil {
		return ref, err
	}
	return ref, quran.Check(ref)
}

// fetchVerse fills the surah name and the translated text of ref from the
// content provider, using the translation chosen in the settings
func (c *cli) fetchVerse(ctx context.Context, ref models.VerseRef) (models.Bookmark, error) {
	st := c.app.Settings.Get()
	detail, err := c.app.Quran.SurahDetail(ctx, ref.Surah, st.Translation, st.Tafsir)
	if err != nil {
		return models.Bookmark{}, err
	}
	b := models.Bookmark{Surah: ref.Surah, Ayah: ref.Ayah, SurahName: detail.EnglishName}
	if ref.Ayah <= len(detail.Translation) {
		b.Text = parser.PlainText(detail.Translation[ref.Ayah-1].Text)
	}
	return b, nil
}

func (c *cli) bookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked verses",
	}

	var folder, name, text string
	var fetch bool
	add := &cobra.Command{
		Use:   "add SURAH:AYAH",
		Short: "Bookmark a verse",
		Long: `Adds a verse to a folder (Uncategorized when --folder is not given).
Adding a verse that is already in the folder does nothing.

> NOTICE: --fetch calls out to the network for the surah name and translation

Example:
tilawah bookmark add 2:255 --folder Duas --fetch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			b := models.Bookmark{Surah: ref.Surah, Ayah: ref.Ayah}
			if fetch {
				fetched, err := c.fetchVerse(cmd.Context(), ref)
				if err != nil {
					return err
				}
				b = fetched
			}
			if name != "" {
				b.SurahName = name
			}
			if text != "" {
				b.Text = text
			}
			c.app.Bookmarks.Add(folder, b)
			target := strings.TrimSpace(folder)
			if target == "" {
				target = models.DefaultFolder
			}
			c.printf("Bookmarked %s in %s\n", b.Title(), target)
			return nil
		},
	}
	add.Flags().StringVarP(&folder, "folder", "f", "", "Folder to add to")
	add.Flags().StringVarP(&name, "name", "n", "", "Surah name shown with the bookmark")
	add.Flags().StringVarP(&text, "text", "t", "", "Verse snippet")
	add.Flags().BoolVar(&fetch, "fetch", false, "Fetch the surah name and translation")

	var rmFolder string
	rm := &cobra.Command{
		Use:     "rm SURAH:AYAH",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark from one folder, or from every folder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := models.ParseVerseRef(args[0])
			if err != nil {
				return err
			}
			if rmFolder == "" {
				c.app.Bookmarks.RemoveEverywhere(ref.Surah, ref.Ayah)
				c.printf("Removed %s from every folder\n", ref)
				return nil
			}
			c.app.Bookmarks.Remove(rmFolder, ref.Surah, ref.Ayah)
			c.printf("Removed %s from %s\n", ref, rmFolder)
			return nil
		},
	}
	rm.Flags().StringVarP(&rmFolder, "folder", "f", "", "Only remove from this folder")

	var lsFolder string
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List bookmarks by folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders := c.app.Folders.ListAll()
			if lsFolder != "" {
				f, ok := c.app.Folders.GetByName(lsFolder)
				if !ok {
					return fmt.Errorf("folder %q not found", lsFolder)
				}
				folders = []models.Folder{f}
			}
			c.printFolders(folders)
			return nil
		},
	}
	ls.Flags().StringVarP(&lsFolder, "folder", "f", "", "Only list this folder")

	toggle := &cobra.Command{
		Use:   "toggle SURAH:AYAH",
		Short: "Bookmark a verse, or remove it everywhere when it is bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			if c.app.Bookmarks.Toggle(models.Bookmark{Surah: ref.Surah, Ayah: ref.Ayah}) {
				c.printf("Bookmarked %s\n", ref)
			} else {
				c.printf("Removed %s\n", ref)
			}
			return nil
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy search bookmark titles and snippets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits := c.app.Bookmarks.Search(strings.Join(args, " "))
			if len(hits) == 0 {
				c.printf("found no bookmarks\n")
				return nil
			}
			c.printFolders(hits)
			return nil
		},
	}

	surah := &cobra.Command{
		Use:   "surah NUMBER",
		Short: "Bookmark every verse of a surah, or remove them when all are bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid surah number %q", args[0])
			}
			refs, err := quran.SurahVerses(n)
			if err != nil {
				return err
			}
			c.toggleAll(fmt.Sprintf("surah %d", n), refs)
			return nil
		},
	}

	juz := &cobra.Command{
		Use:   "juz NUMBER",
		Short: "Bookmark every verse of a juz, or remove them when all are bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid juz number %q", args[0])
			}
			refs, err := quran.JuzVerses(n)
			if err != nil {
				return err
			}
			c.toggleAll(fmt.Sprintf("juz %d", n), refs)
			return nil
		},
	}

	cmd.AddCommand(add, rm, ls, toggle, search, surah, juz)
	return cmd
}

func (c *cli) toggleAll(label string, refs []models.VerseRef) {
	records := make([]models.Bookmark, len(refs))
	for i, r := range refs {
		records[i] = models.Bookmark{Surah: r.Surah, Ayah: r.Ayah}
	}
	if c.app.Bookmarks.ToggleAll(records) {
		c.printf("Bookmarked %d verses of %s\n", len(records), label)
	} else {
		c.printf("Removed %d verses of %s\n", len(records), label)
	}
}

func (c *cli) printFolders(folders []models.Folder) {
	for _, f := range folders {
		c.printf("%s (%d)\n", f.Name, len(f.Bookmarks))
		for _, b := range f.Bookmarks {
			if b.Text != "" {
				c.printf("  %-24s %s\n", b.Title(), parser.Truncate(b.Text, 60))
			} else {
				c.printf("  %s\n", b.Title())
			}
		}
	}
}

func (c *cli) folderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage bookmark folders",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range c.app.Folders.ListAll() {
				c.printf("%s (%d)\n", f.Name, len(f.Bookmarks))
			}
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if c.app.Folders.Create(name) {
				c.printf("Created folder %s\n", strings.TrimSpace(name))
			} else {
				c.printf("Folder %s already exists\n", strings.TrimSpace(name))
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a folder and its bookmarks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if err := c.app.Folders.Delete(name); err != nil {
				return err
			}
			c.printf("Deleted folder %s\n", name)
			return nil
		},
	}

	cmd.AddCommand(ls, create, del)
	return cmd
}
