package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/storage"
)

// KeyNotes is the storage key of the note map
const KeyNotes = "notes"

// NoteService manages per-verse notes
type NoteService struct {
	value *storage.Value[models.Notes]
}

// NewNoteService creates a new note service
func NewNoteService(value *storage.Value[models.Notes]) *NoteService {
	return &NoteService{value: value}
}

// Set stores text for the verse. Blank text deletes the note.
func (s *NoteService) Set(surah, ayah int, text string) {
	key := models.NoteKey(surah, ayah)
	s.value.Update(func(prev models.Notes) models.Notes {
		next := prev.Clone()
		if strings.TrimSpace(text) == "" {
			delete(next, key)
		} else {
			next[key] = text
		}
		return next
	})
}

// Delete removes the note of the verse
func (s *NoteService) Delete(surah, ayah int) {
	s.Set(surah, ayah, "")
}

// Get returns the note of the verse
func (s *NoteService) Get(surah, ayah int) (string, bool) {
	text, ok := s.value.Get()[models.NoteKey(surah, ayah)]
	return text, ok
}

// All returns a copy of every note
func (s *NoteService) All() models.Notes {
	return s.value.Get().Clone()
}

// Export serialises the whole note map
func (s *NoteService) Export() ([]byte, error) {
	notes := s.value.Get()
	if notes == nil {
		notes = models.Notes{}
	}
	// encoding/json writes map keys sorted, so exports are stable
	return json.MarshalIndent(notes, "", "  ")
}

// ExportTo writes the export to w
func (s *NoteService) ExportTo(w io.Writer) error {
	data, err := s.Export()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Import merges a serialised note map into the stored one; imported keys win.
// Blank notes in the file are skipped. On a parse failure it returns
// *MalformedImportError and changes nothing. It returns the number of notes merged.
func (s *NoteService) Import(data []byte) (int, error) {
	var imported map[string]string
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&imported); err != nil {
		return 0, &MalformedImportError{Err: err}
	}
	if dec.More() {
		return 0, &MalformedImportError{Err: fmt.Errorf("unexpected data after the notes object")}
	}
	if imported == nil {
		return 0, &MalformedImportError{Err: fmt.Errorf("expected a JSON object of notes")}
	}

	merged := 0
	s.value.Update(func(prev models.Notes) models.Notes {
		next := prev.Clone()
		for k, v := range imported {
			if strings.TrimSpace(v) == "" {
				continue
			}
			next[k] = v
			merged++
		}
		return next
	})
	return merged, nil
}

// ImportFrom reads r fully and imports it
func (s *NoteService) ImportFrom(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read notes file: %w", err)
	}
	return s.Import(data)
}

// Subscribe calls fn with the note map after every change
func (s *NoteService) Subscribe(fn func(models.Notes)) (cancel func()) {
	return s.value.Subscribe(fn)
}
