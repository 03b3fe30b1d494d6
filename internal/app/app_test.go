package app

import (
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/config"
	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/storage"
)

func TestApp_TwoWindowsShareState(t *testing.T) {
	cfg := config.NewConfig().WithMemory()
	repo, err := OpenRepository(cfg)
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()
	hub := storage.NewHub(repo, logger)

	a := New(cfg, hub)
	b := New(cfg, hub)
	defer a.Close()

	a.Bookmarks.Add("Duas", models.Bookmark{Surah: 2, Ayah: 255})
	a.Notes.Set(2, 255, "Ayat al-Kursi")
	require.NoError(t, a.Settings.SetTheme(models.ThemeSepia))

	assert.True(t, b.Bookmarks.IsBookmarked(2, 255))
	text, ok := b.Notes.Get(2, 255)
	assert.True(t, ok)
	assert.Equal(t, "Ayat al-Kursi", text)
	assert.Equal(t, models.ThemeSepia, b.Settings.Get().Theme)

	b.Close()
	assert.Equal(t, 1, hub.Contexts())
}

func TestApp_SQLitePersists(t *testing.T) {
	cfg := config.NewConfig().WithDBPath(filepath.Join(t.TempDir(), "nested", "tilawah.db"))
	logger, _ := logtest.NewNullLogger()

	repo, err := OpenRepository(cfg)
	require.NoError(t, err)
	a := New(cfg, storage.NewHub(repo, logger))
	a.Notes.Set(1, 1, "opening")
	a.Close()
	require.NoError(t, repo.Close())

	repo, err = OpenRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()
	b := New(cfg, storage.NewHub(repo, logger))
	defer b.Close()

	text, ok := b.Notes.Get(1, 1)
	assert.True(t, ok)
	assert.Equal(t, "opening", text)
}
