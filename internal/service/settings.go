package service

import (
	"strconv"
	"strings"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/storage"
)

// KeySettings is the storage key of the reader settings
const KeySettings = "settings"

// Field names a settings field, as written in the persisted JSON
type Field string

const (
	FieldTheme               Field = "theme"
	FieldReciter             Field = "reciter"
	FieldTranslation         Field = "translation"
	FieldTafsir              Field = "tafsir"
	FieldArabicFont          Field = "arabicFont"
	FieldTranslationFont     Field = "translationFont"
	FieldArabicFontSize      Field = "arabicFontSize"
	FieldTranslationFontSize Field = "translationFontSize"
)

// Fields lists every settable field in display order
var Fields = []Field{
	FieldTheme, FieldReciter, FieldTranslation, FieldTafsir,
	FieldArabicFont, FieldTranslationFont, FieldArabicFontSize, FieldTranslationFontSize,
}

// ParseField resolves a field name, case-insensitively
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// Font size bounds accepted by the setters
const (
	MinFontSize = 10
	MaxFontSize = 72
)

// SettingsService manages the fixed-shape settings record
type SettingsService struct {
	value *storage.Value[models.Settings]
}

// NewSettingsService creates a new settings service
func NewSettingsService(value *storage.Value[models.Settings]) *SettingsService {
	return &SettingsService{value: value}
}

// Get returns the current settings
func (s *SettingsService) Get() models.Settings {
	return s.value.Get()
}

func (s *SettingsService) update(fn func(*models.Settings)) {
	s.value.Update(func(prev models.Settings) models.Settings {
		fn(&prev)
		return prev
	})
}

func (s *SettingsService) SetTheme(t models.Theme) error {
	switch t {
	case models.ThemeLight, models.ThemeDark, models.ThemeSepia:
	default:
		return &SettingError{Field: FieldTheme, Value: string(t), Msg: "expected light, dark or sepia"}
	}
	s.update(func(st *models.Settings) { st.Theme = t })
	return nil
}

func (s *SettingsService) SetReciter(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &SettingError{Field: FieldReciter, Value: id, Msg: "edition identifier required"}
	}
	s.update(func(st *models.Settings) { st.Reciter = id })
	return nil
}

func (s *SettingsService) SetTranslation(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &SettingError{Field: FieldTranslation, Value: id, Msg: "edition identifier required"}
	}
	s.update(func(st *models.Settings) { st.Translation = id })
	return nil
}

func (s *SettingsService) SetTafsir(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &SettingError{Field: FieldTafsir, Value: id, Msg: "edition identifier required"}
	}
	s.update(func(st *models.Settings) { st.Tafsir = id })
	return nil
}

func (s *SettingsService) SetArabicFont(f models.ArabicFont) error {
	switch f {
	case models.ArabicFontAmiri, models.ArabicFontNaskh:
	default:
		return &SettingError{Field: FieldArabicFont, Value: string(f), Msg: "expected amiri or naskh"}
	}
	s.update(func(st *models.Settings) { st.ArabicFont = f })
	return nil
}

func (s *SettingsService) SetTranslationFont(f models.TranslationFont) error {
	if f != models.TranslationFontPoppins {
		return &SettingError{Field: FieldTranslationFont, Value: string(f), Msg: "expected poppins"}
	}
	s.update(func(st *models.Settings) { st.TranslationFont = f })
	return nil
}

func checkFontSize(field Field, size int) error {
	if size < MinFontSize || size > MaxFontSize {
		return &SettingError{Field: field, Value: strconv.Itoa(size), Msg: "font size out of range 10..72"}
	}
	return nil
}

func (s *SettingsService) SetArabicFontSize(size int) error {
	if err := checkFontSize(FieldArabicFontSize, size); err != nil {
		return err
	}
	s.update(func(st *models.Settings) { st.ArabicFontSize = size })
	return nil
}

func (s *SettingsService) SetTranslationFontSize(size int) error {
	if err := checkFontSize(FieldTranslationFontSize, size); err != nil {
		return err
	}
	s.update(func(st *models.Settings) { st.TranslationFontSize = size })
	return nil
}

// Set assigns a field from its textual form, dispatching to the typed setter
func (s *SettingsService) Set(field Field, value string) error {
	switch field {
	case FieldTheme:
		return s.SetTheme(models.Theme(value))
	case FieldReciter:
		return s.SetReciter(value)
	case FieldTranslation:
		return s.SetTranslation(value)
	case FieldTafsir:
		return s.SetTafsir(value)
	case FieldArabicFont:
		return s.SetArabicFont(models.ArabicFont(value))
	case FieldTranslationFont:
		return s.SetTranslationFont(models.TranslationFont(value))
	case FieldArabicFontSize, FieldTranslationFontSize:
		size, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &SettingError{Field: field, Value: value, Msg: "expected a whole number"}
		}
		if field == FieldArabicFontSize {
			return s.SetArabicFontSize(size)
		}
		return s.SetTranslationFontSize(size)
	}
	return &SettingError{Field: field, Value: value, Msg: "unknown setting"}
}

// Value returns the textual form of a field
func (s *SettingsService) Value(field Field) (string, bool) {
	st := s.Get()
	switch field {
	case FieldTheme:
		return string(st.Theme), true
	case FieldReciter:
		return st.Reciter, true
	case FieldTranslation:
		return st.Translation, true
	case FieldTafsir:
		return st.Tafsir, true
	case FieldArabicFont:
		return string(st.ArabicFont), true
	case FieldTranslationFont:
		return string(st.TranslationFont), true
	case FieldArabicFontSize:
		return strconv.Itoa(st.ArabicFontSize), true
	case FieldTranslationFontSize:
		return strconv.Itoa(st.TranslationFontSize), true
	}
	return "", false
}

// Reset restores the defaults
func (s *SettingsService) Reset() {
	s.value.Set(models.DefaultSettings())
}

// Subscribe calls fn with the settings after every change
func (s *SettingsService) Subscribe(fn func(models.Settings)) (cancel func()) {
	return s.value.Subscribe(fn)
}
