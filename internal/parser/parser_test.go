package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dastanaron/tilawah/internal/models"
)

func TestParseVerseURL(t *testing.T) {
	cases := map[string]bool{
		"https://quran.com/2/255":     true,
		"https://www.quran.com/2:255": true,
		"https://quran.com/2":         false,
		"https://example.com/2/255":   false,
		"not a url":                   false,
	}
	for raw, ok := range cases {
		ref, got := ParseVerseURL(raw)
		assert.Equal(t, ok, got, raw)
		if ok {
			assert.Equal(t, models.VerseRef{Surah: 2, Ayah: 255}, ref, raw)
		}
	}
	assert.Equal(t, "https://quran.com/36/1", VerseURL(models.VerseRef{Surah: 36, Ayah: 1}))
}

func TestParseBookmarksHTML_Nested(t *testing.T) {
	page := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Memorise</H3>
    <DL><p>
        <DT><A HREF="https://quran.com/67/1">Al-Mulk 67:1</A>
        <DT><H3>Short</H3>
        <DL><p>
            <DT><A HREF="https://quran.com/112/1">Al-Ikhlas 112:1</A>
            <DD>Say, He is Allah, the One
        </DL><p>
        <DT><A HREF="https://quran.com/67/2">Al-Mulk 67:2</A>
    </DL><p>
</DL><p>`

	got, err := ParseBookmarksHTML(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, []models.Bookmark{
		{Surah: 67, Ayah: 1, SurahName: "Al-Mulk"},
		{Surah: 67, Ayah: 2, SurahName: "Al-Mulk"},
	}, got["Memorise"])
	assert.Equal(t, []models.Bookmark{
		{Surah: 112, Ayah: 1, SurahName: "Al-Ikhlas", Text: "Say, He is Allah, the One"},
	}, got["Short"])
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "In the name of God", PlainText("  In the   name of God "))
	assert.Equal(t, "Say: He is God, the One.", PlainText("Say: <b>He</b> is God,<sup>1</sup> the One.<br/>"))
	assert.Equal(t, "a & b first second", PlainText("a &amp; b<p>first</p><p>second</p>"))
	assert.Equal(t, "", PlainText("<script>alert(1)</script>"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc…", Truncate("abcdef", 3))
	assert.Equal(t, "ٱللَّهُ", Truncate("ٱللَّهُ", 0))
}
