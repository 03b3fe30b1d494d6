package commands

import (
	"fmt"
	"io"

	"github.com/dastanaron/tilawah/internal/service"
)

// ClearDoublesCommand handles removal of duplicate bookmarks
type ClearDoublesCommand struct {
	bookmarkSvc *service.BookmarkService
	out         io.Writer
}

// NewClearDoublesCommand creates a new clear doubles command
func NewClearDoublesCommand(bookmarkSvc *service.BookmarkService, out io.Writer) *ClearDoublesCommand {
	return &ClearDoublesCommand{
		bookmarkSvc: bookmarkSvc,
		out:         out,
	}
}

// Execute removes repeated verses inside each folder (keeps the first one found).
// The same verse in two different folders is not a duplicate.
func (c *ClearDoublesCommand) Execute() error {
	removed := c.bookmarkSvc.Dedupe()
	if removed == 0 {
		fmt.Fprintln(c.out, "No duplicate bookmarks found.")
		return nil
	}
	fmt.Fprintf(c.out, "Deleted %d duplicate bookmark(s).\n", removed)
	return nil
}
