// Package app wires the storage, services and remote clients into one
// injectable container. Each App is one storage context; several Apps can
// share a Hub to observe each other's writes.
package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dastanaron/tilawah/internal/config"
	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/prayer"
	"github.com/dastanaron/tilawah/internal/qibla"
	"github.com/dastanaron/tilawah/internal/quran"
	"github.com/dastanaron/tilawah/internal/repository"
	"github.com/dastanaron/tilawah/internal/service"
	"github.com/dastanaron/tilawah/internal/storage"
)

// App holds everything a command or view needs
type App struct {
	Config *config.Config
	Log    logrus.FieldLogger

	Bookmarks *service.BookmarkService
	Folders   *service.FolderService
	Notes     *service.NoteService
	Settings  *service.SettingsService
	Reading   *service.ReadingService

	Quran   *quran.Client
	Prayers *prayer.Client
	Locator qibla.Locator

	local  *storage.Local
	closer []func()
}

// OpenRepository opens the backend selected by cfg, creating the database
// directory when needed
func OpenRepository(cfg *config.Config) (repository.Repository, error) {
	if cfg.Memory {
		return repository.NewMemoryRepository(), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	repo, err := repository.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// New opens a new storage context on hub and builds the services over it
func New(cfg *config.Config, hub *storage.Hub) *App {
	local := hub.Open()
	a := &App{Config: cfg, Log: local.Logger(), local: local}

	bookmarks := storage.NewValue(local, service.KeyBookmarks, models.DefaultBookmarks)
	notes := storage.NewValue(local, service.KeyNotes, func() models.Notes { return models.Notes{} })
	settings := storage.NewValue(local, service.KeySettings, models.DefaultSettings)
	lastRead := storage.NewValue(local, service.KeyLastRead, models.DefaultLastRead)
	stats := storage.NewValue(local, service.KeyReadingStats, func() models.ReadingStats { return models.ReadingStats{} })
	profile := storage.NewValue(local, service.KeyUserProfile, func() models.UserProfile { return models.UserProfile{} })
	lang := storage.NewValue(local, service.KeyAppLang, func() models.Lang { return models.LangEnglish })
	a.closer = append(a.closer, bookmarks.Close, notes.Close, settings.Close,
		lastRead.Close, stats.Close, profile.Close, lang.Close)

	a.Bookmarks = service.NewBookmarkService(bookmarks)
	a.Folders = service.NewFolderService(bookmarks)
	a.Notes = service.NewNoteService(notes)
	a.Settings = service.NewSettingsService(settings)
	a.Reading = service.NewReadingService(lastRead, stats, profile, lang)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	a.Quran = quran.NewClient(cfg.QuranAPI, httpClient)
	a.Prayers = prayer.NewClient(cfg.PrayerAPI, httpClient)
	a.Locator = qibla.StaticLocator{Position: cfg.Location}
	return a
}

// Close detaches the app from its hub. The repository is owned by the caller.
func (a *App) Close() {
	for _, c := range a.closer {
		c()
	}
	a.local.Close()
}
