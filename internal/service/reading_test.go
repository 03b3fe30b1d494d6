package service

import (
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/repository"
	"github.com/dastanaron/tilawah/internal/storage"
)

func newSettings(t *testing.T) *SettingsService {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	local := storage.NewHub(repository.NewMemoryRepository(), logger).Open()
	return NewSettingsService(storage.NewValue(local, KeySettings, models.DefaultSettings))
}

func newReading(t *testing.T) *ReadingService {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	local := storage.NewHub(repository.NewMemoryRepository(), logger).Open()
	return NewReadingService(
		storage.NewValue(local, KeyLastRead, models.DefaultLastRead),
		storage.NewValue(local, KeyReadingStats, func() models.ReadingStats { return models.ReadingStats{} }),
		storage.NewValue(local, KeyUserProfile, func() models.UserProfile { return models.UserProfile{} }),
		storage.NewValue(local, KeyAppLang, func() models.Lang { return models.LangEnglish }),
	)
}

func TestSettingsService_Defaults(t *testing.T) {
	s := newSettings(t)
	assert.Equal(t, models.DefaultSettings(), s.Get())
}

func TestSettingsService_Set(t *testing.T) {
	s := newSettings(t)

	require.NoError(t, s.Set(FieldTheme, "dark"))
	require.NoError(t, s.Set(FieldArabicFontSize, "36"))
	require.NoError(t, s.Set(FieldReciter, "ar.husary"))
	require.NoError(t, s.Set(FieldArabicFont, "naskh"))

	st := s.Get()
	assert.Equal(t, models.ThemeDark, st.Theme)
	assert.Equal(t, 36, st.ArabicFontSize)
	assert.Equal(t, "ar.husary", st.Reciter)
	assert.Equal(t, models.ArabicFontNaskh, st.ArabicFont)
	assert.Equal(t, models.DefaultSettings().Translation, st.Translation)

	v, ok := s.Value(FieldArabicFontSize)
	require.True(t, ok)
	assert.Equal(t, "36", v)

	s.Reset()
	assert.Equal(t, models.DefaultSettings(), s.Get())
}

func TestSettingsService_RejectsInvalid(t *testing.T) {
	s := newSettings(t)

	cases := []struct {
		field Field
		value string
	}{
		{FieldTheme, "neon"},
		{FieldArabicFont, "comic"},
		{FieldTranslationFont, "arial"},
		{FieldArabicFontSize, "big"},
		{FieldTranslationFontSize, "4"},
		{FieldArabicFontSize, "200"},
		{FieldReciter, "  "},
		{Field("volume"), "3"},
	}
	for _, tc := range cases {
		err := s.Set(tc.field, tc.value)
		var se *SettingError
		require.True(t, errors.As(err, &se), "%s=%s", tc.field, tc.value)
		assert.Equal(t, tc.field, se.Field)
	}
	assert.Equal(t, models.DefaultSettings(), s.Get())
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("ARABICFONTSIZE")
	require.True(t, ok)
	assert.Equal(t, FieldArabicFontSize, f)

	_, ok = ParseField("volume")
	assert.False(t, ok)
}

func TestReadingService_Streak(t *testing.T) {
	r := newReading(t)
	day := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, r.RecordReading(day).Streak)
	assert.Equal(t, 1, r.RecordReading(day.Add(time.Hour)).Streak)
	assert.Equal(t, 2, r.RecordReading(day.AddDate(0, 0, 1)).Streak)
	assert.Equal(t, 3, r.RecordReading(day.AddDate(0, 0, 2)).Streak)

	stats := r.RecordReading(day.AddDate(0, 0, 5))
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, "2024-03-15", stats.LastReadDate)
	assert.Equal(t, stats, r.Stats())

	assert.Equal(t, 1, r.CurrentStreak(day.AddDate(0, 0, 6)))
	assert.Equal(t, 0, r.CurrentStreak(day.AddDate(0, 0, 7)))
}

func TestReadingService_Open(t *testing.T) {
	r := newReading(t)
	assert.Equal(t, models.DefaultLastRead(), r.LastRead())

	r.Open(models.Surah{Number: 36, Name: "يس", EnglishName: "Ya-Sin"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	lr := r.LastRead()
	assert.Equal(t, 36, lr.Surah)
	assert.Equal(t, 1, lr.Ayah)
	assert.Equal(t, "Ya-Sin", lr.Name)
	assert.Equal(t, 1, r.Stats().Streak)
}

func TestReadingService_LangAndProfile(t *testing.T) {
	r := newReading(t)
	assert.Equal(t, models.LangEnglish, r.Lang())

	require.NoError(t, r.SetLang(models.LangArabic))
	assert.Equal(t, models.LangArabic, r.Lang())

	var se *SettingError
	assert.True(t, errors.As(r.SetLang("de"), &se))
	assert.Equal(t, models.LangArabic, r.Lang())

	r.SetProfile(models.UserProfile{Name: "  Amina "})
	assert.Equal(t, "Amina", r.Profile().Name)
}
