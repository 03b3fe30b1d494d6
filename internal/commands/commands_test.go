package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/repository"
	"github.com/dastanaron/tilawah/internal/service"
	"github.com/dastanaron/tilawah/internal/storage"
)

type services struct {
	bookmarks *service.BookmarkService
	folders   *service.FolderService
	notes     *service.NoteService
}

func newServices(t *testing.T, repo repository.Repository) services {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	local := storage.NewHub(repo, logger).Open()
	bm := storage.NewValue(local, service.KeyBookmarks, models.DefaultBookmarks)
	notes := storage.NewValue(local, service.KeyNotes, func() models.Notes { return models.Notes{} })
	return services{
		bookmarks: service.NewBookmarkService(bm),
		folders:   service.NewFolderService(bm),
		notes:     service.NewNoteService(notes),
	}
}

func TestExportImport_BookmarksRoundTrip(t *testing.T) {
	src := newServices(t, repository.NewMemoryRepository())
	src.bookmarks.Add("", models.Bookmark{Surah: 2, Ayah: 255, SurahName: "Al-Baqarah", Text: "His Kursi extends over the heavens & the earth"})
	src.bookmarks.Add("Duas <fav>", models.Bookmark{Surah: 1, Ayah: 1})
	src.folders.Create("Empty")

	path := filepath.Join(t.TempDir(), "bookmarks.html")
	var out bytes.Buffer
	require.NoError(t, NewExportCommand(src.folders, src.notes, &out).Execute(FormatBookmarks, path))
	assert.Contains(t, out.String(), "Exported 2 bookmarks")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `<A HREF="https://quran.com/2/255">Al-Baqarah 2:255</A>`)
	assert.Contains(t, string(raw), "Duas &lt;fav&gt;")

	dst := newServices(t, repository.NewMemoryRepository())
	out.Reset()
	require.NoError(t, NewImportCommand(dst.bookmarks, dst.notes, &out).Execute(FormatBookmarks, path))
	assert.Contains(t, out.String(), "Imported 2 bookmarks")

	assert.Equal(t, src.folders.ListAll(), dst.folders.ListAll())
}

func TestExportImport_Notes(t *testing.T) {
	src := newServices(t, repository.NewMemoryRepository())
	src.notes.Set(2, 255, "Ayat al-Kursi")
	src.notes.Set(36, 1, "heart of the Quran")

	path := filepath.Join(t.TempDir(), "notes.json")
	var out bytes.Buffer
	require.NoError(t, NewExportCommand(src.folders, src.notes, &out).Execute(FormatNotes, path))

	dst := newServices(t, repository.NewMemoryRepository())
	dst.notes.Set(1, 1, "mine")
	require.NoError(t, NewImportCommand(dst.bookmarks, dst.notes, &out).Execute(FormatNotes, path))

	assert.Equal(t, models.Notes{"1:1": "mine", "2:255": "Ayat al-Kursi", "36:1": "heart of the Quran"}, dst.notes.All())
}

func TestImport_MalformedNotes(t *testing.T) {
	s := newServices(t, repository.NewMemoryRepository())
	s.notes.Set(1, 1, "keep")
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad json"), 0o644))

	err := NewImportCommand(s.bookmarks, s.notes, &bytes.Buffer{}).Execute(FormatNotes, path)

	var malformed *service.MalformedImportError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, models.Notes{"1:1": "keep"}, s.notes.All())
}

func TestImport_MissingFile(t *testing.T) {
	s := newServices(t, repository.NewMemoryRepository())
	err := NewImportCommand(s.bookmarks, s.notes, &bytes.Buffer{}).Execute(FormatNotes, filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestImport_SkipsForeignLinks(t *testing.T) {
	s := newServices(t, repository.NewMemoryRepository())
	path := filepath.Join(t.TempDir(), "browser.html")
	page := strings.Join([]string{
		"<!DOCTYPE NETSCAPE-Bookmark-file-1>",
		"<DL><p>",
		`    <DT><A HREF="https://example.com">Example</A>`,
		`    <DT><A HREF="https://quran.com/112:1">Al-Ikhlas 112:1</A>`,
		"    <DT><H3>Night</H3>",
		"    <DL><p>",
		`        <DT><A HREF="https://www.quran.com/67/1">Al-Mulk 67:1</A>`,
		"        <DD>Blessed is He",
		"    </DL><p>",
		"</DL><p>",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	require.NoError(t, NewImportCommand(s.bookmarks, s.notes, &bytes.Buffer{}).Execute(FormatBookmarks, path))

	def, _ := s.folders.GetByName(models.DefaultFolder)
	require.Len(t, def.Bookmarks, 1)
	assert.Equal(t, models.Bookmark{Surah: 112, Ayah: 1, SurahName: "Al-Ikhlas"}, def.Bookmarks[0])

	night, ok := s.folders.GetByName("Night")
	require.True(t, ok)
	require.Len(t, night.Bookmarks, 1)
	assert.Equal(t, "Blessed is He", night.Bookmarks[0].Text)
}

func TestClearDoubles(t *testing.T) {
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Set(service.KeyBookmarks,
		`{"Uncategorized":[{"surah":1,"ayah":1},{"surah":1,"ayah":1},{"surah":1,"ayah":2}],"Duas":[{"surah":1,"ayah":1}]}`))
	s := newServices(t, repo)

	var out bytes.Buffer
	require.NoError(t, NewClearDoublesCommand(s.bookmarks, &out).Execute())
	assert.Contains(t, out.String(), "Deleted 1 duplicate")

	def, _ := s.folders.GetByName(models.DefaultFolder)
	assert.Len(t, def.Bookmarks, 2)
	duas, _ := s.folders.GetByName("Duas")
	assert.Len(t, duas.Bookmarks, 1)

	out.Reset()
	require.NoError(t, NewClearDoublesCommand(s.bookmarks, &out).Execute())
	assert.Contains(t, out.String(), "No duplicate bookmarks found.")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("notes")
	require.NoError(t, err)
	assert.Equal(t, FormatNotes, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}
