package models

// Surah is a chapter as listed by the content provider
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
}

// Ayah is a verse in one edition. Number is the global verse number (1..6236).
type Ayah struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Manzil        int    `json:"manzil"`
	Page          int    `json:"page"`
	Ruku          int    `json:"ruku"`
	HizbQuarter   int    `json:"hizbQuarter"`
}

// Edition describes a text or audio edition
type Edition struct {
	Identifier  string `json:"identifier"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	Format      string `json:"format"`
	Type        string `json:"type"`
	Direction   string `json:"direction,omitempty"`
}

// SurahEdition is one surah in one edition
type SurahEdition struct {
	Surah
	Ayahs   []Ayah  `json:"ayahs"`
	Edition Edition `json:"edition"`
}

// SurahDetail joins the Arabic text with a translation and a tafsir
type SurahDetail struct {
	Surah
	Arabic      []Ayah
	Translation []Ayah
	Tafsir      []Ayah
}

// PrayerTimes holds the daily timings keyed by canonical prayer names
type PrayerTimes struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// HijriDate is the Hijri calendar date returned with prayer times
type HijriDate struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Month struct {
		En string `json:"en"`
	} `json:"month"`
	Year string `json:"year"`
}

// PrayerTimeData is the timings payload with its dates
type PrayerTimeData struct {
	Timings PrayerTimes `json:"timings"`
	Date    struct {
		Readable string    `json:"readable"`
		Hijri    HijriDate `json:"hijri"`
	} `json:"date"`
}
