package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/tui/styles"
	"readspace/internal/application/commands"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// ReaderKeyMap defines key bindings for the reader view
type ReaderKeyMap struct {
	Top    key.Binding
	Bottom key.Binding
	Copy   key.Binding
	Edit   key.Binding
	Raw    key.Binding
	Back   key.Binding
}

var ReaderKeys = ReaderKeyMap{
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy content"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Raw: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "raw/rendered"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// ReaderModel displays one file in a scrollable viewport. The scroll
// position feeds the file's reading progress, and reopening a file
// restores the saved position.
type ReaderModel struct {
	ViewState

	ws       *domain.Workspace
	store    ports.StateStore
	renderer ports.Renderer

	fileName string
	raw      bool
	viewport viewport.Model
	ready    bool
}

// NewReaderModel creates a new reader model
func NewReaderModel(ws *domain.Workspace, store ports.StateStore, renderer ports.Renderer) *ReaderModel {
	return &ReaderModel{ws: ws, store: store, renderer: renderer}
}

// Open loads a file into the reader and restores its scroll position
func (m *ReaderModel) Open(fileName string) {
	m.fileName = fileName
	m.raw = false
	if m.ready {
		m.reflow()
		m.restorePosition()
	}
}

// Init initializes the reader
func (m *ReaderModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions and reflows the content
func (m *ReaderModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)

	headerHeight := 3
	footerHeight := 2
	vpHeight := height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	if m.fileName != "" {
		m.reflow()
		m.restorePosition()
	}
}

func (m *ReaderModel) reflow() {
	file := m.ws.Files[m.fileName]
	if file == nil {
		m.viewport.SetContent("File not found.")
		return
	}
	if m.raw {
		m.viewport.SetContent(file.Content)
		return
	}
	rendered, err := m.renderer.Render(file.Content, m.viewport.Width)
	if err != nil || rendered == "" {
		rendered = file.Content
	}
	m.viewport.SetContent(rendered)
}

// restorePosition scrolls to the saved reading progress
func (m *ReaderModel) restorePosition() {
	file := m.ws.Files[m.fileName]
	if file == nil || file.ReadProgress <= 0 {
		m.viewport.GotoTop()
		return
	}
	total := m.viewport.TotalLineCount() - m.viewport.Height
	if total <= 0 {
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetYOffset(total * file.ReadProgress / 100)
}

// Update handles messages for the reader
func (m *ReaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, ReaderKeys.Back):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, ReaderKeys.Top):
			m.viewport.GotoTop()
			return m, m.saveProgress()

		case key.Matches(msg, ReaderKeys.Bottom):
			m.viewport.GotoBottom()
			return m, m.saveProgress()

		case key.Matches(msg, ReaderKeys.Copy):
			return m, m.copyContent()

		case key.Matches(msg, ReaderKeys.Edit):
			name := m.fileName
			return m, func() tea.Msg { return OpenEditorMsg{FileName: name} }

		case key.Matches(msg, ReaderKeys.Raw):
			m.raw = !m.raw
			offset := m.viewport.YOffset
			m.reflow()
			m.viewport.SetYOffset(offset)
			return m, nil
		}

		// Everything else scrolls the viewport.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, tea.Batch(cmd, m.saveProgress())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// saveProgress persists the scroll position as reading progress
func (m *ReaderModel) saveProgress() tea.Cmd {
	file := m.ws.Files[m.fileName]
	if file == nil {
		return nil
	}
	percent := int(m.viewport.ScrollPercent() * 100)
	if m.viewport.TotalLineCount() <= m.viewport.Height {
		percent = 100
	}
	if percent == file.ReadProgress {
		return nil
	}
	name := m.fileName
	return func() tea.Msg {
		if err := commands.NewSetProgressCommand(m.ws, m.store, name, percent).Execute(context.Background()); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *ReaderModel) copyContent() tea.Cmd {
	file := m.ws.Files[m.fileName]
	if file == nil {
		return nil
	}
	content := file.Content
	return func() tea.Msg {
		if err := clipboard.WriteAll(content); err != nil {
			return errMsg{err}
		}
		return successMsg{"Copied to clipboard"}
	}
}

// View renders the reader
func (m *ReaderModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	file := m.ws.Files[m.fileName]
	title := m.fileName
	if file != nil {
		title = fmt.Sprintf("%s  %s", m.fileName,
			styles.Progress.Render(fmt.Sprintf("%d%% read, %d opens", file.ReadProgress, file.OpenCount)))
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if line := m.MessageLine(); line != "" {
		b.WriteString(line)
		b.WriteString("  ")
	}
	b.WriteString(m.renderHelpLine())

	return b.String()
}

func (m *ReaderModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "scroll"},
		{"g/G", "top/bottom"},
		{"y", "copy"},
		{"e", "edit"},
		{"v", "raw"},
		{"esc", "back"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}
