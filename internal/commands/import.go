package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dastanaron/tilawah/internal/parser"
	"github.com/dastanaron/tilawah/internal/service"
)

// ImportCommand handles importing notes from JSON and bookmarks from HTML
type ImportCommand struct {
	bookmarkSvc *service.BookmarkService
	noteSvc     *service.NoteService
	out         io.Writer
}

// NewImportCommand creates a new import command. Progress messages go to out.
func NewImportCommand(bookmarkSvc *service.BookmarkService, noteSvc *service.NoteService, out io.Writer) *ImportCommand {
	return &ImportCommand{
		bookmarkSvc: bookmarkSvc,
		noteSvc:     noteSvc,
		out:         out,
	}
}

// Execute imports filePath into the store. Existing data is kept: imported
// notes overwrite notes of the same verse, imported bookmarks are merged.
func (c *ImportCommand) Execute(format Format, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatNotes:
		// MalformedImportError is returned unwrapped; it carries the user message
		n, err := c.noteSvc.ImportFrom(file)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Imported %d notes.\n", n)
	case FormatBookmarks:
		bookmarks, err := parser.ParseBookmarksHTML(file)
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}
		n := c.bookmarkSvc.Merge(bookmarks)
		fmt.Fprintf(c.out, "Imported %d bookmarks.\n", n)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
