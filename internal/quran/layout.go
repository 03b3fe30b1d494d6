// Package quran holds the fixed layout of the mushaf (surah lengths, juz
// boundaries) and a client for the verse content provider.
package quran

import (
	"fmt"

	"github.com/dastanaron/tilawah/internal/models"
)

const (
	SurahCount = 114
	JuzCount   = 30
	TotalAyahs = 6236
)

var ayahCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109, 123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60, 34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45, 60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44, 28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20, 15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3, 5, 4, 5, 6,
}

// juzStarts is the first verse of each juz
var juzStarts = [JuzCount]models.VerseRef{
	{Surah: 1, Ayah: 1}, {Surah: 2, Ayah: 142}, {Surah: 2, Ayah: 253}, {Surah: 3, Ayah: 93},
	{Surah: 4, Ayah: 24}, {Surah: 4, Ayah: 148}, {Surah: 5, Ayah: 82}, {Surah: 6, Ayah: 111},
	{Surah: 7, Ayah: 88}, {Surah: 8, Ayah: 41}, {Surah: 9, Ayah: 93}, {Surah: 11, Ayah: 6},
	{Surah: 12, Ayah: 53}, {Surah: 15, Ayah: 1}, {Surah: 17, Ayah: 1}, {Surah: 18, Ayah: 75},
	{Surah: 21, Ayah: 1}, {Surah: 23, Ayah: 1}, {Surah: 25, Ayah: 21}, {Surah: 27, Ayah: 56},
	{Surah: 29, Ayah: 46}, {Surah: 33, Ayah: 31}, {Surah: 36, Ayah: 28}, {Surah: 39, Ayah: 32},
	{Surah: 41, Ayah: 47}, {Surah: 46, Ayah: 1}, {Surah: 51, Ayah: 31}, {Surah: 58, Ayah: 1},
	{Surah: 67, Ayah: 1}, {Surah: 78, Ayah: 1},
}

// AyahCount returns the number of verses in surah, or 0 if out of range
func AyahCount(surah int) int {
	if surah < 1 || surah > SurahCount {
		return 0
	}
	return ayahCounts[surah-1]
}

// Valid reports whether ref points at an existing verse
func Valid(ref models.VerseRef) bool {
	return ref.Ayah >= 1 && ref.Ayah <= AyahCount(ref.Surah)
}

// Check returns an error describing why ref is invalid
func Check(ref models.VerseRef) error {
	if ref.Surah < 1 || ref.Surah > SurahCount {
		return fmt.Errorf("surah %d out of range 1..%d", ref.Surah, SurahCount)
	}
	if n := AyahCount(ref.Surah); ref.Ayah < 1 || ref.Ayah > n {
		return fmt.Errorf("ayah %d out of range 1..%d for surah %d", ref.Ayah, n, ref.Surah)
	}
	return nil
}

// next returns the verse after ref in reading order
func next(ref models.VerseRef) (models.VerseRef, bool) {
	if ref.Ayah < AyahCount(ref.Surah) {
		return models.VerseRef{Surah: ref.Surah, Ayah: ref.Ayah + 1}, true
	}
	if ref.Surah < SurahCount {
		return models.VerseRef{Surah: ref.Surah + 1, Ayah: 1}, true
	}
	return models.VerseRef{}, false
}

// prev returns the verse before ref in reading order
func prev(ref models.VerseRef) (models.VerseRef, bool) {
	if ref.Ayah > 1 {
		return models.VerseRef{Surah: ref.Surah, Ayah: ref.Ayah - 1}, true
	}
	if ref.Surah > 1 {
		return models.VerseRef{Surah: ref.Surah - 1, Ayah: AyahCount(ref.Surah - 1)}, true
	}
	return models.VerseRef{}, false
}

// Range enumerates the verses from start to end inclusive, crossing surah boundaries
func Range(start, end models.VerseRef) ([]models.VerseRef, error) {
	if err := Check(start); err != nil {
		return nil, err
	}
	if err := Check(end); err != nil {
		return nil, err
	}
	if Less(end, start) {
		return nil, fmt.Errorf("range end %s precedes start %s", end, start)
	}

	var out []models.VerseRef
	for ref := start; ; {
		out = append(out, ref)
		if ref == end {
			break
		}
		ref, _ = next(ref)
	}
	return out, nil
}

// Less orders verses in reading order
func Less(a, b models.VerseRef) bool {
	if a.Surah != b.Surah {
		return a.Surah < b.Surah
	}
	return a.Ayah < b.Ayah
}

// SurahVerses lists every verse of surah
func SurahVerses(surah int) ([]models.VerseRef, error) {
	n := AyahCount(surah)
	if n == 0 {
		return nil, fmt.Errorf("surah %d out of range 1..%d", surah, SurahCount)
	}
	return Range(models.VerseRef{Surah: surah, Ayah: 1}, models.VerseRef{Surah: surah, Ayah: n})
}

// Juz returns the first and last verse of juz n
func Juz(n int) (start, end models.VerseRef, err error) {
	if n < 1 || n > JuzCount {
		return start, end, fmt.Errorf("juz %d out of range 1..%d", n, JuzCount)
	}
	start = juzStarts[n-1]
	if n == JuzCount {
		return start, models.VerseRef{Surah: SurahCount, Ayah: AyahCount(SurahCount)}, nil
	}
	end, _ = prev(juzStarts[n])
	return start, end, nil
}

// JuzVerses lists every verse of juz n, spanning surahs where the juz does
func JuzVerses(n int) ([]models.VerseRef, error) {
	start, end, err := Juz(n)
	if err != nil {
		return nil, err
	}
	return Range(start, end)
}

// JuzOf returns the juz containing ref
func JuzOf(ref models.VerseRef) (int, error) {
	if err := Check(ref); err != nil {
		return 0, err
	}
	for i := JuzCount - 1; i >= 0; i-- {
		if !Less(ref, juzStarts[i]) {
			return i + 1, nil
		}
	}
	return 1, nil
}

// GlobalNumber converts ref to its position 1..6236 in the whole text,
// the numbering used by the audio CDN
func GlobalNumber(ref models.VerseRef) (int, error) {
	if err := Check(ref); err != nil {
		return 0, err
	}
	n := ref.Ayah
	for s := 1; s < ref.Surah; s++ {
		n += AyahCount(s)
	}
	return n, nil
}
