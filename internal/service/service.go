package service

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/storage"
)

// KeyBookmarks is the storage key of the folder map
const KeyBookmarks = "bookmarks"

// withDefault returns b with the reserved folder present
func withDefault(b models.Bookmarks) models.Bookmarks {
	if _, ok := b[models.DefaultFolder]; ok {
		return b
	}
	out := b.Clone()
	out[models.DefaultFolder] = []models.Bookmark{}
	return out
}

func containsRef(list []models.Bookmark, surah, ayah int) bool {
	for _, b := range list {
		if b.Matches(surah, ayah) {
			return true
		}
	}
	return false
}

func withoutRef(list []models.Bookmark, surah, ayah int) []models.Bookmark {
	out := make([]models.Bookmark, 0, len(list))
	for _, b := range list {
		if !b.Matches(surah, ayah) {
			out = append(out, b)
		}
	}
	return out
}

// BookmarkService provides business logic for bookmarks
type BookmarkService struct {
	value *storage.Value[models.Bookmarks]
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(value *storage.Value[models.Bookmarks]) *BookmarkService {
	return &BookmarkService{value: value}
}

// Add appends b to folder unless the folder already holds the same verse.
// A blank folder name means the default folder; a missing folder is created.
func (s *BookmarkService) Add(folder string, b models.Bookmark) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = models.DefaultFolder
	}
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		if containsRef(prev[folder], b.Surah, b.Ayah) {
			return prev
		}
		next := withDefault(prev).Clone()
		next[folder] = append(next[folder], b)
		return next
	})
}

// Remove drops the verse from one folder
func (s *BookmarkService) Remove(folder string, surah, ayah int) {
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		list, ok := prev[folder]
		if !ok || !containsRef(list, surah, ayah) {
			return prev
		}
		next := prev.Clone()
		next[folder] = withoutRef(list, surah, ayah)
		return next
	})
}

// RemoveEverywhere drops the verse from every folder
func (s *BookmarkService) RemoveEverywhere(surah, ayah int) {
	s.removeRefs([]models.VerseRef{{Surah: surah, Ayah: ayah}})
}

func (s *BookmarkService) removeRefs(refs []models.VerseRef) {
	drop := make(map[models.VerseRef]bool, len(refs))
	for _, r := range refs {
		drop[r] = true
	}
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		next := make(models.Bookmarks, len(prev))
		for name, list := range prev {
			kept := make([]models.Bookmark, 0, len(list))
			for _, b := range list {
				if !drop[b.Ref()] {
					kept = append(kept, b)
				}
			}
			next[name] = kept
		}
		return next
	})
}

// IsBookmarked reports whether any folder holds the verse
func (s *BookmarkService) IsBookmarked(surah, ayah int) bool {
	for _, list := range s.value.Get() {
		if containsRef(list, surah, ayah) {
			return true
		}
	}
	return false
}

// Toggle removes the verse everywhere when it is bookmarked, otherwise adds
// it to the default folder. It returns the new bookmarked state.
func (s *BookmarkService) Toggle(b models.Bookmark) bool {
	if s.IsBookmarked(b.Surah, b.Ayah) {
		s.RemoveEverywhere(b.Surah, b.Ayah)
		return false
	}
	s.Add(models.DefaultFolder, b)
	return true
}

// AllBookmarked reports whether every verse in refs is bookmarked somewhere.
// An empty refs is never bookmarked.
func (s *BookmarkService) AllBookmarked(refs []models.VerseRef) bool {
	if len(refs) == 0 {
		return false
	}
	have := make(map[models.VerseRef]bool)
	for _, list := range s.value.Get() {
		for _, b := range list {
			have[b.Ref()] = true
		}
	}
	for _, r := range refs {
		if !have[r] {
			return false
		}
	}
	return true
}

// AddAll bookmarks every record in the default folder in one write,
// skipping verses already there
func (s *BookmarkService) AddAll(records []models.Bookmark) {
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		next := withDefault(prev).Clone()
		list := next[models.DefaultFolder]
		for _, b := range records {
			if !containsRef(list, b.Surah, b.Ayah) {
				list = append(list, b)
			}
		}
		next[models.DefaultFolder] = list
		return next
	})
}

// RemoveAll drops every verse in refs from every folder in one write
func (s *BookmarkService) RemoveAll(refs []models.VerseRef) {
	s.removeRefs(refs)
}

// ToggleAll bookmarks a whole surah or juz, or removes it when it is fully
// bookmarked already. It returns the new state.
func (s *BookmarkService) ToggleAll(records []models.Bookmark) bool {
	refs := make([]models.VerseRef, len(records))
	for i, b := range records {
		refs[i] = b.Ref()
	}
	if s.AllBookmarked(refs) {
		s.RemoveAll(refs)
		return false
	}
	s.AddAll(records)
	return true
}

// Search fuzzy-matches query against bookmark titles and snippets across folders
func (s *BookmarkService) Search(query string) []models.Folder {
	query = strings.TrimSpace(query)
	var out []models.Folder
	for _, f := range sortedFolders(s.value.Get()) {
		var hits []models.Bookmark
		for _, b := range f.Bookmarks {
			if query == "" ||
				fuzzy.MatchNormalizedFold(query, b.Title()) ||
				strings.Contains(strings.ToLower(b.Text), strings.ToLower(query)) {
				hits = append(hits, b)
			}
		}
		if len(hits) > 0 {
			out = append(out, models.Folder{Name: f.Name, Bookmarks: hits})
		}
	}
	return out
}

// Dedupe removes repeated verses within each folder, keeping the first one.
// Data written by older versions could contain them. Returns the number removed.
func (s *BookmarkService) Dedupe() int {
	removed := 0
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		next := make(models.Bookmarks, len(prev))
		for name, list := range prev {
			seen := make(map[models.VerseRef]bool, len(list))
			kept := make([]models.Bookmark, 0, len(list))
			for _, b := range list {
				if seen[b.Ref()] {
					removed++
					continue
				}
				seen[b.Ref()] = true
				kept = append(kept, b)
			}
			next[name] = kept
		}
		return next
	})
	return removed
}

// Merge adds every folder and bookmark of in, keeping existing entries.
// Returns the number of bookmarks added.
func (s *BookmarkService) Merge(in models.Bookmarks) int {
	added := 0
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		next := withDefault(prev).Clone()
		for name, list := range in {
			name = strings.TrimSpace(name)
			if name == "" {
				name = models.DefaultFolder
			}
			cur := next[name]
			if cur == nil {
				cur = []models.Bookmark{}
			}
			for _, b := range list {
				if !containsRef(cur, b.Surah, b.Ayah) {
					cur = append(cur, b)
					added++
				}
			}
			next[name] = cur
		}
		return next
	})
	return added
}

// Subscribe calls fn with the folder map after every change, local or remote
func (s *BookmarkService) Subscribe(fn func(models.Bookmarks)) (cancel func()) {
	return s.value.Subscribe(func(b models.Bookmarks) { fn(withDefault(b)) })
}

// FolderService provides business logic for folders
type FolderService struct {
	value *storage.Value[models.Bookmarks]
}

// NewFolderService creates a new folder service
func NewFolderService(value *storage.Value[models.Bookmarks]) *FolderService {
	return &FolderService{value: value}
}

func sortedFolders(b models.Bookmarks) []models.Folder {
	b = withDefault(b)
	out := make([]models.Folder, 0, len(b))
	for name, list := range b {
		out = append(out, models.Folder{Name: name, Bookmarks: list})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault() != out[j].IsDefault() {
			return out[i].IsDefault()
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ListAll returns all folders, the default folder first and the rest by name.
// The bookmark slices are copies.
func (s *FolderService) ListAll() []models.Folder {
	folders := sortedFolders(s.value.Get())
	for i := range folders {
		folders[i].Bookmarks = slices.Clone(folders[i].Bookmarks)
	}
	return folders
}

// GetByName returns a copy of one folder
func (s *FolderService) GetByName(name string) (models.Folder, bool) {
	list, ok := withDefault(s.value.Get())[name]
	if !ok {
		return models.Folder{}, false
	}
	return models.Folder{Name: name, Bookmarks: slices.Clone(list)}, true
}

// Create adds an empty folder. Blank or existing names are ignored.
// It reports whether a folder was created.
func (s *FolderService) Create(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if _, ok := withDefault(s.value.Get())[name]; ok {
		return false
	}
	created := false
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		if _, ok := prev[name]; ok {
			return prev
		}
		next := withDefault(prev).Clone()
		next[name] = []models.Bookmark{}
		created = true
		return next
	})
	return created
}

// Delete removes the folder and everything in it.
// The default folder is rejected with ErrDefaultFolder.
func (s *FolderService) Delete(name string) error {
	name = strings.TrimSpace(name)
	if name == models.DefaultFolder {
		return ErrDefaultFolder
	}
	if _, ok := s.value.Get()[name]; !ok {
		return nil
	}
	s.value.Update(func(prev models.Bookmarks) models.Bookmarks {
		next := prev.Clone()
		delete(next, name)
		return next
	})
	return nil
}
