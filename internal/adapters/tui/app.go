// Package tui is the interactive terminal front end for the workspace.
package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/editor"
	"readspace/internal/adapters/tui/views"
	"readspace/internal/application/commands"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewReader
	ViewCalendar
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ws       *domain.Workspace
	store    ports.StateStore
	activity ports.ActivityIndex
	editor   *editor.Opener

	state    ViewState
	browser  *views.BrowserModel
	reader   *views.ReaderModel
	calendar *views.CalendarModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(ws *domain.Workspace, store ports.StateStore, activity ports.ActivityIndex, renderer ports.Renderer, ed *editor.Opener) *App {
	return &App{
		ws:       ws,
		store:    store,
		activity: activity,
		editor:   ed,
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(ws, store),
		reader:   views.NewReaderModel(ws, store, renderer),
		calendar: views.NewCalendarModel(ws, activity),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.reader.SetSize(msg.Width, msg.Height)
		a.calendar.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToReaderMsg:
		return a, a.openFile(msg.FileName)

	case fileOpenedMsg:
		a.state = ViewReader
		a.reader.Open(msg.fileName)
		return a, a.reader.Init()

	case views.SwitchToCalendarMsg:
		a.state = ViewCalendar
		return a, a.calendar.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.FileName)

	case editorFinishedMsg:
		if msg.err == nil && msg.fileName != "" {
			return a, a.saveEdited(msg.fileName, msg.path)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewReader:
		_, cmd = a.reader.Update(msg)
	case ViewCalendar:
		_, cmd = a.calendar.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type fileOpenedMsg struct {
	fileName string
}

type editorFinishedMsg struct {
	fileName string
	path     string
	err      error
}

// openFile records the open before switching to the reader
func (a *App) openFile(fileName string) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewOpenFileCommand(a.ws, a.store, a.activity, fileName, "")
		if _, err := cmd.Execute(context.Background()); err != nil {
			return nil
		}
		return fileOpenedMsg{fileName: fileName}
	}
}

// openEditor materializes the document to a temp file and hands the
// terminal to the external editor
func (a *App) openEditor(fileName string) tea.Cmd {
	if a.editor == nil {
		return nil
	}
	file := a.ws.Files[fileName]
	if file == nil {
		return nil
	}

	path, err := a.editor.Materialize(fileName, file.Content)
	if err != nil {
		return nil
	}
	cmd, err := a.editor.Command(path)
	if err != nil {
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{fileName: fileName, path: path, err: err}
	})
}

// saveEdited reads the temp file back into the registry
func (a *App) saveEdited(fileName, path string) tea.Cmd {
	return func() tea.Msg {
		defer os.Remove(path)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(raw)
		ingest := commands.NewIngestFileCommand(a.ws, a.store, fileName, content)
		if _, err := ingest.Execute(context.Background()); err != nil {
			return nil
		}
		a.reader.Open(fileName)
		return nil
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewReader:
		return a.reader.View()
	case ViewCalendar:
		return a.calendar.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
