package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/models"
)

func TestAyahCounts(t *testing.T) {
	total := 0
	for s := 1; s <= SurahCount; s++ {
		total += AyahCount(s)
	}
	assert.Equal(t, TotalAyahs, total)
	assert.Equal(t, 0, AyahCount(0))
	assert.Equal(t, 0, AyahCount(115))
	assert.Equal(t, 286, AyahCount(2))
}

func TestJuz_CoversWholeText(t *testing.T) {
	total := 0
	for n := 1; n <= JuzCount; n++ {
		verses, err := JuzVerses(n)
		require.NoError(t, err)
		total += len(verses)
	}
	assert.Equal(t, TotalAyahs, total)
}

func TestJuz_SpansSurahs(t *testing.T) {
	start, end, err := Juz(2)
	require.NoError(t, err)
	assert.Equal(t, models.VerseRef{Surah: 2, Ayah: 142}, start)
	assert.Equal(t, models.VerseRef{Surah: 2, Ayah: 252}, end)

	verses, err := JuzVerses(3)
	require.NoError(t, err)
	assert.Equal(t, models.VerseRef{Surah: 2, Ayah: 253}, verses[0])
	assert.Equal(t, models.VerseRef{Surah: 3, Ayah: 92}, verses[len(verses)-1])
	assert.Contains(t, verses, models.VerseRef{Surah: 3, Ayah: 1})

	_, end, err = Juz(30)
	require.NoError(t, err)
	assert.Equal(t, models.VerseRef{Surah: 114, Ayah: 6}, end)

	_, _, err = Juz(31)
	assert.Error(t, err)
}

func TestJuzOf(t *testing.T) {
	n, err := JuzOf(models.VerseRef{Surah: 2, Ayah: 255})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = JuzOf(models.VerseRef{Surah: 1, Ayah: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = JuzOf(models.VerseRef{Surah: 114, Ayah: 1})
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	_, err = JuzOf(models.VerseRef{Surah: 1, Ayah: 8})
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	verses, err := Range(models.VerseRef{Surah: 1, Ayah: 6}, models.VerseRef{Surah: 2, Ayah: 2})
	require.NoError(t, err)
	assert.Equal(t, []models.VerseRef{{Surah: 1, Ayah: 6}, {Surah: 1, Ayah: 7}, {Surah: 2, Ayah: 1}, {Surah: 2, Ayah: 2}}, verses)

	_, err = Range(models.VerseRef{Surah: 2, Ayah: 2}, models.VerseRef{Surah: 1, Ayah: 1})
	assert.Error(t, err)

	verses, err = SurahVerses(112)
	require.NoError(t, err)
	assert.Len(t, verses, 4)
}

func TestGlobalNumber(t *testing.T) {
	n, err := GlobalNumber(models.VerseRef{Surah: 2, Ayah: 255})
	require.NoError(t, err)
	assert.Equal(t, 262, n)

	n, err = GlobalNumber(models.VerseRef{Surah: 114, Ayah: 6})
	require.NoError(t, err)
	assert.Equal(t, TotalAyahs, n)
}

func TestSearchSurahs(t *testing.T) {
	surahs := []models.Surah{
		{Number: 1, Name: "سُورَةُ ٱلْفَاتِحَةِ", EnglishName: "Al-Faatiha", EnglishNameTranslation: "The Opening"},
		{Number: 2, Name: "سورة البقرة", EnglishName: "Al-Baqara", EnglishNameTranslation: "The Cow"},
		{Number: 18, Name: "سورة الكهف", EnglishName: "Al-Kahf", EnglishNameTranslation: "The Cave"},
	}

	assert.Equal(t, surahs, SearchSurahs(surahs, "  "))

	got := SearchSurahs(surahs, "baqara")
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Number)

	got = SearchSurahs(surahs, "cave")
	require.Len(t, got, 1)
	assert.Equal(t, 18, got[0].Number)

	got = SearchSurahs(surahs, "18")
	require.NotEmpty(t, got)
	assert.Equal(t, 18, got[0].Number)

	assert.Empty(t, SearchSurahs(surahs, "zzzz"))
}

func TestSearchJuz(t *testing.T) {
	entries := JuzList([]models.Surah{{Number: 1, EnglishName: "Al-Faatiha"}, {Number: 2, EnglishName: "Al-Baqara"}})
	require.Len(t, entries, JuzCount)

	got := SearchJuz(entries, "baqara")
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Number)
	assert.Equal(t, 3, got[1].Number)

	got = SearchJuz(entries, "30")
	require.NotEmpty(t, got)
	assert.Equal(t, 30, got[0].Number)
}
