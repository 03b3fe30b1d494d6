package models

// Theme is the reading theme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

// ArabicFont is the font family used for the Arabic text
type ArabicFont string

const (
	ArabicFontAmiri ArabicFont = "amiri"
	ArabicFontNaskh ArabicFont = "naskh"
)

// TranslationFont is the font family used for translations
type TranslationFont string

const (
	TranslationFontPoppins TranslationFont = "poppins"
)

// Settings holds reader preferences, persisted under the "settings" key
type Settings struct {
	Theme               Theme           `json:"theme"`
	Reciter             string          `json:"reciter"`
	Translation         string          `json:"translation"`
	Tafsir              string          `json:"tafsir"`
	ArabicFont          ArabicFont      `json:"arabicFont"`
	TranslationFont     TranslationFont `json:"translationFont"`
	ArabicFontSize      int             `json:"arabicFontSize"`
	TranslationFontSize int             `json:"translationFontSize"`
}

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeLight,
		Reciter:             "ar.alafasy",
		Translation:         "en.asad",
		Tafsir:              "en.tafsir.ibn.kathir",
		ArabicFont:          ArabicFontAmiri,
		TranslationFont:     TranslationFontPoppins,
		ArabicFontSize:      30,
		TranslationFontSize: 16,
	}
}

// LastRead is the most recently opened position
type LastRead struct {
	Surah      int    `json:"surah"`
	Ayah       int    `json:"ayah"`
	Name       string `json:"name"`
	ArabicName string `json:"arabicName"`
}

// DefaultLastRead points at the opening surah
func DefaultLastRead() LastRead {
	return LastRead{Surah: 1, Ayah: 1, Name: "Al-Fatihah", ArabicName: "ٱلْفَاتِحَة"}
}

// UserProfile is the local reader profile
type UserProfile struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ReadingStats tracks the daily reading streak.
// LastReadDate is a YYYY-MM-DD day, empty until the first reading.
type ReadingStats struct {
	LastReadDate string `json:"lastReadDate,omitempty"`
	Streak       int    `json:"streak"`
}

// Lang is the interface language
type Lang string

const (
	LangEnglish Lang = "en"
	LangArabic  Lang = "ar"
	LangFrench  Lang = "fr"
)

// Valid reports whether the language is supported
func (l Lang) Valid() bool {
	switch l {
	case LangEnglish, LangArabic, LangFrench:
		return true
	}
	return false
}
