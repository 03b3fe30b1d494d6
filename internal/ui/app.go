package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dastanaron/tilawah/internal/models"
	"github.com/dastanaron/tilawah/internal/parser"
	"github.com/dastanaron/tilawah/internal/quran"
	"github.com/dastanaron/tilawah/internal/service"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
)

const (
	ModeNormal = 1
	ModeSearch = 2
	ModeForm   = 3
	ModeModal  = 4
)

// allFolders is the pseudo folder listing every bookmark
const allFolders = ""

// entry is one row of the bookmark list
type entry struct {
	Folder   string
	Bookmark models.Bookmark
}

// App represents the TUI application
type App struct {
	app            *tview.Application
	folderList     *tview.List
	list           *tview.List
	detail         *tview.TextView
	search         *tview.InputField
	pages          *tview.Pages
	status         *tview.TextView
	mode           uint8
	entries        []entry
	current        *entry
	folderNames    []string // folderList rows; allFolders first
	selectedFolder string
	focusOnFolders bool
	activeForm     *tview.Form

	bookmarkSvc *service.BookmarkService
	folderSvc   *service.FolderService
	noteSvc     *service.NoteService
	log         logrus.FieldLogger
	cancel      []func()
}

// NewApp creates a new application instance
func NewApp(bookmarkSvc *service.BookmarkService, folderSvc *service.FolderService, noteSvc *service.NoteService, log logrus.FieldLogger) *App {
	return &App{
		app:            tview.NewApplication(),
		folderList:     tview.NewList().ShowSecondaryText(false),
		list:           tview.NewList(),
		detail:         tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:         tview.NewInputField().SetLabel("Search: "),
		pages:          tview.NewPages(),
		status:         tview.NewTextView().SetDynamicColors(true),
		mode:           ModeNormal,
		selectedFolder: allFolders,
		bookmarkSvc:    bookmarkSvc,
		folderSvc:      folderSvc,
		noteSvc:        noteSvc,
		log:            log,
	}
}

// Run starts the application and blocks until the user quits
func (a *App) Run() error {
	a.list.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")
	a.folderList.SetBorder(true).SetTitle("Folders")

	cols := tview.NewFlex().
		AddItem(a.folderList, 0, 1, false).
		AddItem(a.list, 0, 2, true).
		AddItem(a.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	a.refresh()

	a.search.SetChangedFunc(a.onSearchChange)
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(a.onSelect)

	// Changes made elsewhere (another window, a CLI run sharing the hub) are
	// pushed here; redraw on the UI goroutine.
	a.cancel = append(a.cancel,
		a.bookmarkSvc.Subscribe(func(models.Bookmarks) { go a.app.QueueUpdateDraw(a.refresh) }),
		a.noteSvc.Subscribe(func(models.Notes) { go a.app.QueueUpdateDraw(a.showDetails) }),
	)
	defer func() {
		for _, c := range a.cancel {
			c()
		}
	}()

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)
	a.updateStatus()

	a.focusOnFolders = false
	a.app.SetFocus(a.list)
	return a.app.Run()
}

// refresh rebuilds both lists from the store, keeping the selection when possible
func (a *App) refresh() {
	a.fillFolderList()
	a.loadFolderContent()
	a.updateStatus()
}

func (a *App) updateStatus() {
	countText := fmt.Sprintf(" [::b]%d[::-] bookmarks", len(a.entries))
	statusText := "[::b]Tab[::-] switch  [::b]/[::-] search  [::b]a[::-] add  [::b]n[::-] note  [::b]d[::-] del  [::b]x[::-] del everywhere  [::b]Enter[::-] open  [::b]q[::-] quit" + countText
	if a.focusOnFolders {
		statusText = "[::b]Tab[::-] switch  [::b]Enter[::-] select  [::b]a[::-] add folder  [::b]d[::-] del folder  [::b]q[::-] quit" + countText
	}
	a.status.SetText(statusText)
}

// visibleEntries returns the rows for folder (allFolders = every folder)
// filtered by query
func (a *App) visibleEntries(folder, query string) []entry {
	var out []entry
	for _, f := range a.bookmarkSvc.Search(query) {
		if folder != allFolders && f.Name != folder {
			continue
		}
		for _, b := range f.Bookmarks {
			out = append(out, entry{Folder: f.Name, Bookmark: b})
		}
	}
	return out
}

func (a *App) loadFolderContent() {
	a.entries = a.visibleEntries(a.selectedFolder, a.search.GetText())
	a.fillList()

	if a.selectedFolder == allFolders {
		a.list.SetTitle("Bookmarks (All)")
	} else {
		a.list.SetTitle(fmt.Sprintf("Bookmarks (%s)", a.selectedFolder))
	}
}

func (a *App) fillList() {
	keep := a.list.GetCurrentItem()
	a.list.Clear()
	for _, e := range a.entries {
		secondary := parser.Truncate(e.Bookmark.Text, 50)
		if a.selectedFolder == allFolders {
			secondary = e.Folder + "  " + secondary
		}
		a.list.AddItem(e.Bookmark.Title(), secondary, 0, nil)
	}

	if len(a.entries) == 0 {
		a.current = nil
		a.showDetails()
		return
	}
	if keep < 0 || keep >= len(a.entries) {
		keep = 0
	}
	a.list.SetCurrentItem(keep)
	a.current = &a.entries[keep]
	a.showDetails()
}

// fillFolderList lists "All Bookmarks" followed by every folder, the default folder first
func (a *App) fillFolderList() {
	keep := a.folderList.GetCurrentItem()
	folders := a.folderSvc.ListAll()

	a.folderList.Clear()
	a.folderNames = []string{allFolders}
	a.folderList.AddItem("All Bookmarks", "", 0, nil)

	selectedExists := a.selectedFolder == allFolders
	for _, f := range folders {
		a.folderNames = append(a.folderNames, f.Name)
		a.folderList.AddItem(fmt.Sprintf("%s (%d)", f.Name, len(f.Bookmarks)), "", 0, nil)
		if f.Name == a.selectedFolder {
			selectedExists = true
		}
	}
	// the selected folder may have been deleted in another window
	if !selectedExists {
		a.selectedFolder = allFolders
	}
	if keep >= 0 && keep < len(a.folderNames) {
		a.folderList.SetCurrentItem(keep)
	}
	a.folderList.SetTitle("Folders (" + a.folderTitle() + ")")
}

func (a *App) folderTitle() string {
	if a.selectedFolder == allFolders {
		return "All"
	}
	return a.selectedFolder
}

// onFolderSelect switches the bookmark list to the folder at index
func (a *App) onFolderSelect(index int) {
	if index < 0 || index >= len(a.folderNames) {
		return
	}
	a.selectedFolder = a.folderNames[index]
	a.folderList.SetTitle("Folders (" + a.folderTitle() + ")")
	a.list.SetCurrentItem(0)
	a.loadFolderContent()
	a.updateStatus()

	a.focusOnFolders = false
	a.app.SetFocus(a.list)
}

// foldersHolding returns the names of every folder that holds ref
func (a *App) foldersHolding(ref models.VerseRef) []string {
	var out []string
	for _, f := range a.folderSvc.ListAll() {
		for _, b := range f.Bookmarks {
			if b.Ref() == ref {
				out = append(out, f.Name)
				break
			}
		}
	}
	return out
}

func (a *App) showDetails() {
	if a.current == nil {
		a.detail.SetText("")
		return
	}

	b := a.current.Bookmark
	note, ok := a.noteSvc.Get(b.Surah, b.Ayah)
	if !ok {
		note = "[::d](no note, press n to add one)[::-]"
	} else {
		note = tview.Escape(note)
	}
	juz := ""
	if n, err := quran.JuzOf(b.Ref()); err == nil {
		juz = fmt.Sprintf("Juz %d", n)
	}

	text := fmt.Sprintf(
		"[::b]Verse:[::-]\n%s\n%s\n\n[::b]Text:[::-]\n%s\n\n[::b]Folders:[::-]\n%s\n\n[::b]Note:[::-]\n%s\n\n[::b]Link:[::-]\n%s",
		tview.Escape(b.Title()), juz, tview.Escape(b.Text),
		tview.Escape(strings.Join(a.foldersHolding(b.Ref()), ", ")),
		note, parser.VerseURL(b.Ref()))
	a.detail.SetText(text)
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		if a.focusOnFolders {
			a.app.SetFocus(a.folderList)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

// toggleFocus switches focus between the folder list and the bookmark list
func (a *App) toggleFocus() {
	a.focusOnFolders = !a.focusOnFolders
	if a.focusOnFolders {
		a.app.SetFocus(a.folderList)
	} else {
		a.app.SetFocus(a.list)
	}
	a.updateStatus()
}

func (a *App) onSearchChange(text string) {
	a.loadFolderContent()
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.loadFolderContent()
		a.updateStatus()
		a.setMode(ModeNormal)
	}
}

func (a *App) onSelect(index int, mainText, secondaryText string, shortcut rune) {
	if index >= 0 && index < len(a.entries) {
		a.current = &a.entries[index]
		a.showDetails()
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	// modals handle their own keys
	if a.pages.HasPage("confirm") || a.pages.HasPage("error") {
		return event
	}

	switch a.mode {
	case ModeNormal:
		if event.Key() == tcell.KeyTab {
			a.toggleFocus()
			return nil
		}

		if a.focusOnFolders {
			switch event.Key() {
			case tcell.KeyEnter:
				a.onFolderSelect(a.folderList.GetCurrentItem())
				return nil
			case tcell.KeyRune:
				switch event.Rune() {
				case 'q':
					a.app.Stop()
					return nil
				case '/':
					a.setMode(ModeSearch)
					return nil
				case 'a':
					a.showFolderForm()
					return nil
				case 'd':
					index := a.folderList.GetCurrentItem()
					if index > 0 && index < len(a.folderNames) {
						a.confirmDeleteFolder(a.folderNames[index])
					}
					return nil
				}
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyEnter:
			if a.current != nil {
				openURL(parser.VerseURL(a.current.Bookmark.Ref()))
			}
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case '/':
				a.setMode(ModeSearch)
				return nil
			case 'a':
				folder := a.selectedFolder
				if folder == allFolders {
					folder = models.DefaultFolder
				}
				a.showForm(folder)
				return nil
			case 'n':
				if a.current != nil {
					a.showNoteForm(a.current.Bookmark)
				}
				return nil
			case 'd':
				if a.current != nil {
					e := *a.current
					msg := fmt.Sprintf("Remove '%s' from %s?", e.Bookmark.Title(), e.Folder)
					a.showConfirm(msg, func() {
						a.bookmarkSvc.Remove(e.Folder, e.Bookmark.Surah, e.Bookmark.Ayah)
						a.refresh()
					})
				}
				return nil
			case 'x':
				if a.current != nil {
					b := a.current.Bookmark
					msg := fmt.Sprintf("Remove '%s' from every folder?", b.Title())
					a.showConfirm(msg, func() {
						a.bookmarkSvc.RemoveEverywhere(b.Surah, b.Ayah)
						a.refresh()
					})
				}
				return nil
			case 'q':
				a.app.Stop()
				return nil
			}
		}
	case ModeForm:
		if event.Key() == tcell.KeyEscape {
			a.closeForms()
		}
	}
	return event
}

func (a *App) closeForms() {
	a.pages.RemovePage("form")
	a.pages.RemovePage("folderForm")
	a.pages.RemovePage("noteForm")
	a.activeForm = nil
	a.setMode(ModeNormal)
}

// showForm asks for a verse reference and bookmarks it
func (a *App) showForm(folder string) {
	folders := a.folderSvc.ListAll()
	options := make([]string, 0, len(folders))
	selected := 0
	for i, f := range folders {
		options = append(options, f.Name)
		if f.Name == folder {
			selected = i
		}
	}

	var refText, name, text string
	target := folder

	form := tview.NewForm()
	form.AddInputField("Verse (surah:ayah)", "", 20, nil, func(t string) { refText = t })
	form.AddInputField("Surah name", "", 40, nil, func(t string) { name = t })
	form.AddInputField("Text", "", 60, nil, func(t string) { text = t })
	form.AddDropDown("Folder", options, selected, func(option string, index int) { target = option })

	form.AddButton("Save", func() {
		ref, err := models.ParseVerseRef(refText)
		if err == nil {
			err = quran.Check(ref)
		}
		if err != nil {
			a.showError(fmt.Sprintf("Error: %v", err))
			return
		}
		a.bookmarkSvc.Add(target, models.Bookmark{
			Surah:     ref.Surah,
			Ayah:      ref.Ayah,
			SurahName: strings.TrimSpace(name),
			Text:      strings.TrimSpace(text),
		})
		a.refresh()
		a.closeForm("form")
	})
	form.AddButton("Cancel", func() {
		a.closeForm("form")
	})

	form.SetBorder(true).SetTitle("New Bookmark")
	a.openForm("form", form)
}

// showFolderForm asks for the name of a new folder
func (a *App) showFolderForm() {
	var name string

	form := tview.NewForm()
	form.AddInputField("Name", "", 40, nil, func(t string) { name = t })

	form.AddButton("Save", func() {
		if strings.TrimSpace(name) == "" {
			a.showError("Error: Folder name is required")
			return
		}
		if !a.folderSvc.Create(name) {
			a.showError(fmt.Sprintf("Folder '%s' already exists", strings.TrimSpace(name)))
			return
		}
		a.refresh()
		a.closeForm("folderForm")
	})
	form.AddButton("Cancel", func() {
		a.closeForm("folderForm")
	})

	form.SetBorder(true).SetTitle("New Folder")
	a.openForm("folderForm", form)
}

// showNoteForm edits the note of b; saving an empty note deletes it
func (a *App) showNoteForm(b models.Bookmark) {
	note, _ := a.noteSvc.Get(b.Surah, b.Ayah)

	form := tview.NewForm()
	form.AddTextArea("Note", note, 60, 8, 0, func(t string) { note = t })

	form.AddButton("Save", func() {
		a.noteSvc.Set(b.Surah, b.Ayah, note)
		a.showDetails()
		a.closeForm("noteForm")
	})
	form.AddButton("Cancel", func() {
		a.closeForm("noteForm")
	})

	form.SetBorder(true).SetTitle("Note " + b.Ref().String())
	a.openForm("noteForm", form)
}

func (a *App) confirmDeleteFolder(name string) {
	msg := fmt.Sprintf("Are you sure you want to delete folder '%s' and its bookmarks?", name)
	a.showConfirm(msg, func() {
		if err := a.folderSvc.Delete(name); err != nil {
			if errors.Is(err, service.ErrDefaultFolder) {
				a.showError(fmt.Sprintf("'%s' cannot be deleted", models.DefaultFolder))
			} else {
				a.showError(fmt.Sprintf("Error deleting folder: %v", err))
			}
			return
		}
		if a.selectedFolder == name {
			a.selectedFolder = allFolders
		}
		a.refresh()
	})
}

// showError shows a modal with message
func (a *App) showError(message string) {
	a.log.Warn(message)
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage("error")
			a.restoreFocus()
		})

	modal.SetBorder(true).SetTitle("Error")
	a.pages.AddPage("error", modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

func (a *App) showConfirm(message string, onConfirm func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Cancel", "OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			a.pages.RemovePage("confirm")
			a.restoreFocus()
			if buttonIndex == 1 && onConfirm != nil {
				onConfirm()
			}
		})

	modal.SetBorder(true).SetTitle("Confirm")
	a.pages.AddPage("confirm", modal, true, true)
	a.mode = ModeModal
	a.app.SetFocus(modal)
}

// restoreFocus returns to the open form, or to the focused list
func (a *App) restoreFocus() {
	if a.activeForm != nil {
		a.mode = ModeForm
		a.app.SetFocus(a.activeForm)
		return
	}
	a.setMode(ModeNormal)
}

func (a *App) openForm(page string, form *tview.Form) {
	a.pages.AddPage(page, form, true, true)
	a.activeForm = form
	a.app.SetFocus(form)
	a.mode = ModeForm
}

func (a *App) closeForm(page string) {
	a.pages.RemovePage(page)
	a.activeForm = nil
	a.setMode(ModeNormal)
}

func openURL(url string) {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	_ = exec.Command(cmd, args...).Start()
}
