package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/parser"
	"github.com/dastanaron/tilawah/internal/quran"
)

func (c *cli) listSurahs(ctx context.Context, query string) error {
	surahs, err := c.app.Quran.Surahs(ctx)
	if err != nil {
		return err
	}
	for _, s := range quran.SearchSurahs(surahs, query) {
		c.printf("%3d  %-18s %-28s %s  (%d)\n", s.Number, s.EnglishName, s.EnglishNameTranslation, s.Name, s.NumberOfAyahs)
	}
	return nil
}

func (c *cli) surahCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surah",
		Short: "Browse the surahs",
		Long: `Browse the surahs.

> NOTICE: These commands call out to the network`,
	}

	ls := &cobra.Command{
		Use:   "ls [QUERY]",
		Short: "List surahs, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.listSurahs(cmd.Context(), strings.Join(args, " "))
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy search surahs by name, meaning or number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.listSurahs(cmd.Context(), strings.Join(args, " "))
		},
	}

	var withTafsir bool
	show := &cobra.Command{
		Use:   "show NUMBER",
		Short: "Print a surah with its translation",
		Long: `Prints the Arabic text of a surah with the translation (and optionally the
tafsir) chosen in the settings. Bookmarked verses are marked with *, verses
with a note with +. Opening a surah counts toward your reading streak.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid surah number %q", args[0])
			}
			st := c.app.Settings.Get()
			detail, err := c.app.Quran.SurahDetail(cmd.Context(), n, st.Translation, st.Tafsir)
			if err != nil {
				return err
			}
			c.app.Reading.Open(detail.Surah, time.Now())

			c.printf("%d. %s (%s) - %s\n\n", detail.Number, detail.EnglishName, detail.Name, detail.EnglishNameTranslation)
			for i, a := range detail.Arabic {
				mark := " "
				if c.app.Bookmarks.IsBookmarked(n, a.NumberInSurah) {
					mark = "*"
				}
				if _, ok := c.app.Notes.Get(n, a.NumberInSurah); ok {
					mark += "+"
				} else {
					mark += " "
				}
				c.printf("%s %d:%d  %s\n", mark, n, a.NumberInSurah, a.Text)
				if i < len(detail.Translation) {
					c.printf("          %s\n", parser.PlainText(detail.Translation[i].Text))
				}
				if withTafsir && i < len(detail.Tafsir) {
					c.printf("          [tafsir] %s\n", parser.Truncate(parser.PlainText(detail.Tafsir[i].Text), 400))
				}
			}
			return nil
		},
	}
	show.Flags().BoolVar(&withTafsir, "tafsir", false, "Include the tafsir of each verse")

	var kind string
	editions := &cobra.Command{
		Use:   "editions",
		Short: "List available translation, tafsir or audio editions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.app.Quran.Editions(cmd.Context(), quran.EditionType(kind))
			if err != nil {
				return err
			}
			for _, e := range list {
				c.printf("%-28s %-4s %s\n", e.Identifier, e.Language, e.EnglishName)
			}
			return nil
		},
	}
	editions.Flags().StringVar(&kind, "type", string(quran.EditionTranslation), "translation, tafsir or audio")

	cmd.AddCommand(ls, search, show, editions)
	return cmd
}

func (c *cli) juzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "juz [QUERY]",
		Short: "List the 30 juz, optionally filtered by number or surah name",
		RunE: func(cmd *cobra.Command, args []string) error {
			surahs, err := c.app.Quran.Surahs(cmd.Context())
			if err != nil {
				// names are decoration; the boundaries are known offline
				c.log.WithError(err).Warn("failed to fetch surah names")
				surahs = nil
			}
			bookmarked := func(e quran.JuzEntry) bool {
				refs, err := quran.JuzVerses(e.Number)
				return err == nil && c.app.Bookmarks.AllBookmarked(refs)
			}
			for _, e := range quran.SearchJuz(quran.JuzList(surahs), strings.Join(args, " ")) {
				mark := " "
				if bookmarked(e) {
					mark = "*"
				}
				c.printf("%s Juz %2d  %-8s - %-8s %s\n", mark, e.Number, e.Start, e.End, e.SurahName)
			}
			return nil
		},
	}
}

func lastReadLine(lr models.LastRead) string {
	return fmt.Sprintf("%s %d:%d", lr.Name, lr.Surah, lr.Ayah)
}
