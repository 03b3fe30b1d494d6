package service

import (
	"strings"
	"time"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/storage"
)

// Storage keys of the reading state
const (
	KeyLastRead     = "lastRead"
	KeyUserProfile  = "userProfile"
	KeyReadingStats = "readingStats"
	KeyAppLang      = "appLang"
)

const dayLayout = "2006-01-02"

// ReadingService tracks where the reader is, their streak, profile and language
type ReadingService struct {
	lastRead *storage.Value[models.LastRead]
	stats    *storage.Value[models.ReadingStats]
	profile  *storage.Value[models.UserProfile]
	lang     *storage.Value[models.Lang]
}

// NewReadingService creates a new reading service
func NewReadingService(
	lastRead *storage.Value[models.LastRead],
	stats *storage.Value[models.ReadingStats],
	profile *storage.Value[models.UserProfile],
	lang *storage.Value[models.Lang],
) *ReadingService {
	return &ReadingService{lastRead: lastRead, stats: stats, profile: profile, lang: lang}
}

func (s *ReadingService) LastRead() models.LastRead {
	return s.lastRead.Get()
}

func (s *ReadingService) SetLastRead(lr models.LastRead) {
	s.lastRead.Set(lr)
}

func (s *ReadingService) Stats() models.ReadingStats {
	return s.stats.Get()
}

// CurrentStreak is the stored streak while it is unbroken, i.e. the last
// reading was today or yesterday, and 0 otherwise
func (s *ReadingService) CurrentStreak(now time.Time) int {
	st := s.stats.Get()
	switch st.LastReadDate {
	case now.UTC().Format(dayLayout), now.UTC().AddDate(0, 0, -1).Format(dayLayout):
		return st.Streak
	}
	return 0
}

// RecordReading updates the daily streak: reading again the same day changes
// nothing, reading the day after the last one extends the streak, any longer
// gap restarts it at 1. Days are UTC calendar days.
func (s *ReadingService) RecordReading(now time.Time) models.ReadingStats {
	today := now.UTC().Format(dayLayout)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(dayLayout)

	var out models.ReadingStats
	s.stats.Update(func(prev models.ReadingStats) models.ReadingStats {
		if prev.LastReadDate == today {
			out = prev
			return prev
		}
		streak := 1
		if prev.LastReadDate == yesterday {
			streak = prev.Streak + 1
		}
		out = models.ReadingStats{LastReadDate: today, Streak: streak}
		return out
	})
	return out
}

// Open records that surah was opened: it becomes the last read position and
// counts toward the streak
func (s *ReadingService) Open(surah models.Surah, now time.Time) {
	s.SetLastRead(models.LastRead{Surah: surah.Number, Ayah: 1, Name: surah.EnglishName, ArabicName: surah.Name})
	s.RecordReading(now)
}

func (s *ReadingService) Profile() models.UserProfile {
	return s.profile.Get()
}

func (s *ReadingService) SetProfile(p models.UserProfile) {
	p.Name = strings.TrimSpace(p.Name)
	s.profile.Set(p)
}

func (s *ReadingService) Lang() models.Lang {
	return s.lang.Get()
}

// SetLang changes the interface language; unsupported values are rejected
func (s *ReadingService) SetLang(l models.Lang) error {
	if !l.Valid() {
		return &SettingError{Field: KeyAppLang, Value: string(l), Msg: "expected en, ar or fr"}
	}
	s.lang.Set(l)
	return nil
}
