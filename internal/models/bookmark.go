package models

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFolder is the reserved folder that always exists and cannot be deleted
const DefaultFolder = "Uncategorized"

// VerseRef identifies a single ayah inside a surah
type VerseRef struct {
	Surah int
	Ayah  int
}

// String returns the "surah:ayah" form used for note keys
func (r VerseRef) String() string {
	return fmt.Sprintf("%d:%d", r.Surah, r.Ayah)
}

// ParseVerseRef parses "2:255" (also accepts "2/255")
func ParseVerseRef(s string) (VerseRef, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":/")
	if sep <= 0 || sep == len(s)-1 {
		return VerseRef{}, fmt.Errorf("invalid verse reference %q: expected surah:ayah", s)
	}
	surah, err := strconv.Atoi(s[:sep])
	if err != nil {
		return VerseRef{}, fmt.Errorf("invalid surah in %q: %w", s, err)
	}
	ayah, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return VerseRef{}, fmt.Errorf("invalid ayah in %q: %w", s, err)
	}
	if surah <= 0 || ayah <= 0 {
		return VerseRef{}, fmt.Errorf("invalid verse reference %q: numbers must be positive", s)
	}
	return VerseRef{Surah: surah, Ayah: ayah}, nil
}

// Bookmark represents a bookmarked ayah.
// Identity is the (Surah, Ayah) pair and is unique within one folder only.
type Bookmark struct {
	Surah     int    `json:"surah"`
	Ayah      int    `json:"ayah"`
	SurahName string `json:"surahName"`
	Text      string `json:"text"`
}

// Ref returns the verse the bookmark points at
func (b Bookmark) Ref() VerseRef {
	return VerseRef{Surah: b.Surah, Ayah: b.Ayah}
}

// Title is the label shown in listings, e.g. "Al-Baqarah 2:255"
func (b Bookmark) Title() string {
	if b.SurahName == "" {
		return b.Ref().String()
	}
	return b.SurahName + " " + b.Ref().String()
}

// Matches reports whether the bookmark points at surah:ayah
func (b Bookmark) Matches(surah, ayah int) bool {
	return b.Surah == surah && b.Ayah == ayah
}

// Bookmarks is the persisted folder map: folder name -> ordered bookmark list
type Bookmarks map[string][]Bookmark

// DefaultBookmarks returns the initial value of the bookmarks key
func DefaultBookmarks() Bookmarks {
	return Bookmarks{DefaultFolder: {}}
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (b Bookmarks) Clone() Bookmarks {
	out := make(Bookmarks, len(b))
	for name, list := range b {
		cp := make([]Bookmark, len(list))
		copy(cp, list)
		out[name] = cp
	}
	return out
}

// Folder is a named bookmark list as returned by listings
type Folder struct {
	Name      string
	Bookmarks []Bookmark
}

// IsDefault reports whether this is the reserved folder
func (f Folder) IsDefault() bool {
	return f.Name == DefaultFolder
}

// Notes maps "surah:ayah" to note text. A missing key means no note.
type Notes map[string]string

// NoteKey builds the composite key of a note
func NoteKey(surah, ayah int) string {
	return VerseRef{Surah: surah, Ayah: ayah}.String()
}

// Clone returns a copy of the note map
func (n Notes) Clone() Notes {
	out := make(Notes, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}
