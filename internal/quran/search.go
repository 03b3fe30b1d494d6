package quran

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dastanaron/tilawah/internal/models"
)

// JuzEntry is one juz as shown in listings
type JuzEntry struct {
	Number    int
	Start     models.VerseRef
	End       models.VerseRef
	SurahName string // English name of the surah the juz starts in
}

// JuzList builds the 30 juz entries, naming them from surahs when available
func JuzList(surahs []models.Surah) []JuzEntry {
	names := make(map[int]string, len(surahs))
	for _, s := range surahs {
		names[s.Number] = s.EnglishName
	}
	out := make([]JuzEntry, 0, JuzCount)
	for n := 1; n <= JuzCount; n++ {
		start, end, _ := Juz(n)
		out = append(out, JuzEntry{Number: n, Start: start, End: end, SurahName: names[start.Surah]})
	}
	return out
}

type scored struct {
	index int
	rank  int
}

// rankBest returns the best (lowest) fuzzy distance of query against any of fields, or -1
func rankBest(query string, fields ...string) int {
	best := -1
	for _, f := range fields {
		if f == "" {
			continue
		}
		r := fuzzy.RankMatchNormalizedFold(query, f)
		if r >= 0 && (best < 0 || r < best) {
			best = r
		}
	}
	return best
}

func sortScored(s []scored) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].rank < s[j].rank })
}

// SearchSurahs fuzzy-matches query against the surah names and number.
// A blank query returns surahs unchanged.
func SearchSurahs(surahs []models.Surah, query string) []models.Surah {
	query = strings.TrimSpace(query)
	if query == "" {
		return surahs
	}

	var hits []scored
	for i, s := range surahs {
		if query == strconv.Itoa(s.Number) {
			hits = append(hits, scored{index: i, rank: -1})
			continue
		}
		if r := rankBest(query, s.EnglishName, s.Name, s.EnglishNameTranslation); r >= 0 {
			hits = append(hits, scored{index: i, rank: r})
		}
	}
	sortScored(hits)

	out := make([]models.Surah, 0, len(hits))
	for _, h := range hits {
		out = append(out, surahs[h.index])
	}
	return out
}

// SearchJuz fuzzy-matches query against the surah name each juz starts in
func SearchJuz(entries []JuzEntry, query string) []JuzEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	var hits []scored
	for i, e := range entries {
		if query == strconv.Itoa(e.Number) {
			hits = append(hits, scored{index: i, rank: -1})
			continue
		}
		if r := rankBest(query, e.SurahName); r >= 0 {
			hits = append(hits, scored{index: i, rank: r})
		}
	}
	sortScored(hits)

	out := make([]JuzEntry, 0, len(hits))
	for _, h := range hits {
		out = append(out, entries[h.index])
	}
	return out
}
