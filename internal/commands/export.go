package commands

import (
	"fmt"
	"html"
	"io"
	"os"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/parser"
	"github.com/dastanaron/tilawah/internal/service"
)

// Format selects what an export or import handles
type Format string

const (
	FormatNotes     Format = "notes"
	FormatBookmarks Format = "bookmarks"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatNotes, FormatBookmarks:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q: expected notes or bookmarks", s)
}

// ExportCommand handles exporting notes to JSON and bookmarks to HTML
type ExportCommand struct {
	folderSvc *service.FolderService
	noteSvc   *service.NoteService
	out       io.Writer
}

// NewExportCommand creates a new export command. Progress messages go to out.
func NewExportCommand(folderSvc *service.FolderService, noteSvc *service.NoteService, out io.Writer) *ExportCommand {
	return &ExportCommand{
		folderSvc: folderSvc,
		noteSvc:   noteSvc,
		out:       out,
	}
}

// Execute exports the selected data to filePath
func (c *ExportCommand) Execute(format Format, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatNotes:
		if err := c.noteSvc.ExportTo(file); err != nil {
			return fmt.Errorf("failed to export notes: %w", err)
		}
		fmt.Fprintf(c.out, "Exported %d notes to %s\n", len(c.noteSvc.All()), filePath)
	case FormatBookmarks:
		n, err := c.WriteHTML(file)
		if err != nil {
			return fmt.Errorf("failed to export bookmarks: %w", err)
		}
		fmt.Fprintf(c.out, "Exported %d bookmarks to %s\n", n, filePath)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return file.Close()
}

// WriteHTML writes every folder as a Netscape bookmark file and returns the
// number of bookmarks written
func (c *ExportCommand) WriteHTML(w io.Writer) (int, error) {
	ew := &errWriter{w: w}

	ew.printf("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	ew.printf("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	ew.printf("<TITLE>Bookmarks</TITLE>\n")
	ew.printf("<H1>Bookmarks</H1>\n")
	ew.printf("<DL><p>\n")

	count := 0
	for _, folder := range c.folderSvc.ListAll() {
		c.writeFolder(ew, folder)
		count += len(folder.Bookmarks)
	}

	ew.printf("</DL><p>\n")
	return count, ew.err
}

// writeFolder writes a folder and its bookmarks
func (c *ExportCommand) writeFolder(ew *errWriter, folder models.Folder) {
	ew.printf("    <DT><H3>%s</H3>\n", html.EscapeString(folder.Name))
	ew.printf("    <DL><p>\n")
	for _, b := range folder.Bookmarks {
		c.writeBookmark(ew, b)
	}
	ew.printf("    </DL><p>\n")
}

// writeBookmark writes a single bookmark, with its snippet when present
func (c *ExportCommand) writeBookmark(ew *errWriter, b models.Bookmark) {
	escapedURL := html.EscapeString(parser.VerseURL(b.Ref()))
	escapedTitle := html.EscapeString(b.Title())

	ew.printf("        <DT><A HREF=\"%s\">%s</A>\n", escapedURL, escapedTitle)
	if b.Text != "" {
		ew.printf("        <DD>%s\n", html.EscapeString(b.Text))
	}
}

// errWriter keeps the first write error so the template code stays linear
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
