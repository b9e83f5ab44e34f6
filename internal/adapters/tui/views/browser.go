package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/tui/styles"
	"readspace/internal/application/commands"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	AddFile    key.Binding
	NewProject key.Binding
	NewFolder  key.Binding
	Rename     key.Binding
	Delete     key.Binding
	Remove     key.Binding
	Hide       key.Binding
	Pick       key.Binding
	Place      key.Binding
	Calendar   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/toggle"),
	),
	AddFile: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add file"),
	),
	NewProject: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new project"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove from project"),
	),
	Hide: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "hide/show"),
	),
	Pick: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "pick up"),
	),
	Place: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "place"),
	),
	Calendar: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "calendar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type rowKind int

const (
	rowProject rowKind = iota
	rowNode
	rowHeader
	rowSource
)

// row is one selectable line: a project, a tree node with its path, a
// section header, or a sources entry.
type row struct {
	kind      rowKind
	projectID string
	path      domain.Path
	node      *domain.Node
	fileName  string
	depth     int
}

// picked tracks a pending move or placement started with the pick key
type picked struct {
	fileName  string
	projectID string // empty when picked from the sources panel
	path      domain.Path
}

type formKind int

const (
	formNone formKind = iota
	formAddFile
	formNewProject
	formNewFolder
	formRename
)

// BrowserModel shows every project tree plus the sources panel
type BrowserModel struct {
	ViewState

	ws    *domain.Workspace
	store ports.StateStore

	rows   []row
	cursor int

	pick    *picked
	form    *InputForm
	mode    formKind
	confirm *Confirmation
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(ws *domain.Workspace, store ports.StateStore) *BrowserModel {
	m := &BrowserModel{ws: ws, store: store}
	m.refreshRows()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Reload rebuilds the rows from the workspace
func (m *BrowserModel) Reload() tea.Cmd {
	m.refreshRows()
	return nil
}

func (m *BrowserModel) refreshRows() {
	var rows []row
	for _, project := range m.ws.ProjectsInOrder() {
		rows = append(rows, row{kind: rowProject, projectID: project.ID})
		if project.Expanded {
			rows = appendNodeRows(rows, project.ID, project.Structure, nil, 1)
		}
	}
	rows = append(rows, row{kind: rowHeader})
	for _, file := range m.ws.VisibleFiles() {
		rows = append(rows, row{kind: rowSource, fileName: file.Name, depth: 1})
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func appendNodeRows(rows []row, projectID string, nodes []*domain.Node, prefix domain.Path, depth int) []row {
	for i, node := range nodes {
		path := append(prefix.Clone(), i)
		rows = append(rows, row{
			kind:      rowNode,
			projectID: projectID,
			path:      path,
			node:      node,
			fileName:  node.Name,
			depth:     depth,
		})
		if node.Type == domain.NodeFolder && node.Expanded {
			rows = appendNodeRows(rows, projectID, node.Children, path, depth+1)
		}
	}
	return rows
}

func (m *BrowserModel) selectedRow() *row {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return &m.rows[m.cursor]
	}
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		if m.confirm != nil {
			done, cmd := m.confirm.HandleKeyMsg(msg)
			if done {
				m.confirm = nil
			}
			return m, cmd
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, BrowserKeys.Left):
		return m, m.collapseSelected()

	case key.Matches(msg, BrowserKeys.Right):
		return m, m.expandSelected()

	case key.Matches(msg, BrowserKeys.Enter):
		return m, m.activateSelected()

	case key.Matches(msg, BrowserKeys.AddFile):
		m.openForm(formAddFile, "Add file", "path to a markdown file", "")

	case key.Matches(msg, BrowserKeys.NewProject):
		m.openForm(formNewProject, "New project", "project name", "")

	case key.Matches(msg, BrowserKeys.NewFolder):
		if r := m.selectedRow(); r != nil && (r.kind == rowProject || (r.kind == rowNode && r.node.Type == domain.NodeFolder)) {
			m.openForm(formNewFolder, "New folder", "folder name", "")
		}

	case key.Matches(msg, BrowserKeys.Rename):
		if r := m.selectedRow(); r != nil {
			switch {
			case r.kind == rowProject:
				m.openForm(formRename, "Rename project", "new name", m.ws.Projects[r.projectID].Name)
			case r.kind == rowNode && r.node.Type == domain.NodeFolder:
				m.openForm(formRename, "Rename folder", "new name", r.node.Name)
			}
		}

	case key.Matches(msg, BrowserKeys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, BrowserKeys.Remove):
		if r := m.selectedRow(); r != nil && r.kind == rowNode && r.node.Type == domain.NodeFile {
			return m, m.runCommand(func(ctx context.Context) error {
				return commands.NewRemoveFileCommand(m.ws, m.store, r.projectID, r.path.String()).Execute(ctx)
			}, "Removed "+r.fileName+" from project")
		}

	case key.Matches(msg, BrowserKeys.Hide):
		if r := m.selectedRow(); r != nil && r.kind == rowSource {
			return m, m.runCommand(func(ctx context.Context) error {
				return commands.NewSetVisibilityCommand(m.ws, m.store, r.fileName, true).Execute(ctx)
			}, "Hidden "+r.fileName)
		}

	case key.Matches(msg, BrowserKeys.Pick):
		if r := m.selectedRow(); r != nil {
			switch {
			case r.kind == rowNode && r.node.Type == domain.NodeFile:
				m.pick = &picked{fileName: r.fileName, projectID: r.projectID, path: r.path.Clone()}
				m.SetMessage("Picked "+r.fileName+", navigate and press p to place", false)
			case r.kind == rowSource:
				m.pick = &picked{fileName: r.fileName}
				m.SetMessage("Picked "+r.fileName+", navigate and press p to place", false)
			}
		}

	case key.Matches(msg, BrowserKeys.Place):
		return m, m.placePicked()

	case msg.String() == "esc":
		if m.pick != nil {
			m.pick = nil
			m.SetMessage("Pick cancelled", false)
		}

	case key.Matches(msg, BrowserKeys.Calendar):
		return m, func() tea.Msg { return SwitchToCalendarMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return m, nil
}

func (m *BrowserModel) collapseSelected() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	switch r.kind {
	case rowProject:
		if m.ws.Projects[r.projectID].Expanded {
			return m.runCommand(func(ctx context.Context) error {
				return commands.NewToggleProjectCommand(m.ws, m.store, r.projectID).Execute(ctx)
			}, "")
		}
	case rowNode:
		if r.node.Type == domain.NodeFolder && r.node.Expanded {
			return m.runCommand(func(ctx context.Context) error {
				return commands.NewToggleFolderCommand(m.ws, m.store, r.projectID, r.path.String()).Execute(ctx)
			}, "")
		}
	}
	return nil
}

func (m *BrowserModel) expandSelected() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	switch r.kind {
	case rowProject:
		if !m.ws.Projects[r.projectID].Expanded {
			return m.runCommand(func(ctx context.Context) error {
				return commands.NewToggleProjectCommand(m.ws, m.store, r.projectID).Execute(ctx)
			}, "")
		}
	case rowNode:
		if r.node.Type == domain.NodeFolder && !r.node.Expanded {
			return m.runCommand(func(ctx context.Context) error {
				return commands.NewToggleFolderCommand(m.ws, m.store, r.projectID, r.path.String()).Execute(ctx)
			}, "")
		}
	}
	return nil
}

// activateSelected opens files in the reader and toggles everything else
func (m *BrowserModel) activateSelected() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	switch r.kind {
	case rowSource:
		name := r.fileName
		return func() tea.Msg { return SwitchToReaderMsg{FileName: name} }
	case rowNode:
		if r.node.Type == domain.NodeFile {
			name := r.fileName
			return func() tea.Msg { return SwitchToReaderMsg{FileName: name} }
		}
		return m.toggleSelectedFolder(r)
	case rowProject:
		return m.runCommand(func(ctx context.Context) error {
			return commands.NewToggleProjectCommand(m.ws, m.store, r.projectID).Execute(ctx)
		}, "")
	}
	return nil
}

func (m *BrowserModel) toggleSelectedFolder(r *row) tea.Cmd {
	return m.runCommand(func(ctx context.Context) error {
		return commands.NewToggleFolderCommand(m.ws, m.store, r.projectID, r.path.String()).Execute(ctx)
	}, "")
}

func (m *BrowserModel) deleteSelected() tea.Cmd {
	r := m.selectedRow()
	if r == nil {
		return nil
	}
	switch r.kind {
	case rowProject:
		project := m.ws.Projects[r.projectID]
		projectID := r.projectID
		m.confirm = NewConfirmation(
			fmt.Sprintf("Delete project %q? Files keep their registry records.", project.Name),
			func() tea.Msg {
				result, err := commands.NewDeleteProjectCommand(m.ws, m.store, projectID).Execute(context.Background())
				if err != nil {
					return errMsg{err}
				}
				return successMsg{result.Message}
			})
	case rowNode:
		if r.node.Type != domain.NodeFolder {
			return nil
		}
		projectID, path, name := r.projectID, r.path.String(), r.node.Name
		m.confirm = NewConfirmation(
			fmt.Sprintf("Delete folder %q? Files inside move up; subfolders are lost.", name),
			func() tea.Msg {
				err := commands.NewDeleteFolderCommand(m.ws, m.store, projectID, path).Execute(context.Background())
				if err != nil {
					return errMsg{err}
				}
				return successMsg{"Deleted folder " + name}
			})
	}
	return nil
}

// placePicked drops the picked file at the selected position: into a
// folder row at its end, before a file node row, or at a project root.
func (m *BrowserModel) placePicked() tea.Cmd {
	if m.pick == nil {
		return nil
	}
	r := m.selectedRow()
	if r == nil {
		return nil
	}

	var toProject string
	var toParent domain.Path
	var toIndex int
	switch r.kind {
	case rowProject:
		toProject = r.projectID
		toParent = nil
		toIndex = len(m.ws.Projects[r.projectID].Structure)
	case rowNode:
		toProject = r.projectID
		if r.node.Type == domain.NodeFolder {
			toParent = r.path
			toIndex = len(r.node.Children)
		} else {
			toParent = r.path.Parent()
			toIndex = r.path.Leaf()
		}
	default:
		return nil
	}

	pick := m.pick
	m.pick = nil
	return m.runCommand(func(ctx context.Context) error {
		if pick.projectID == "" {
			return commands.NewInsertFileCommand(m.ws, m.store, toProject, pick.fileName, toParent.String(), toIndex).Execute(ctx)
		}
		return commands.NewMoveFileCommand(m.ws, m.store,
			pick.projectID, pick.path.String(), toProject, toParent.String(), toIndex).Execute(ctx)
	}, "Placed "+pick.fileName)
}

func (m *BrowserModel) openForm(kind formKind, label, placeholder, initial string) {
	m.mode = kind
	m.form = NewInputForm(NewInputField(label, placeholder, 200))
	if initial != "" {
		m.form.SetValue(0, initial)
	}
}

func (m *BrowserModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.form.Keys.Cancel):
		m.form = nil
		m.mode = formNone
		return m, nil

	case key.Matches(msg, m.form.Keys.Submit):
		value := m.form.Value(0)
		kind := m.mode
		m.form = nil
		m.mode = formNone
		return m, m.submitForm(kind, value)
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *BrowserModel) submitForm(kind formKind, value string) tea.Cmd {
	if value == "" {
		return nil
	}
	switch kind {
	case formAddFile:
		return m.ingestFromDisk(value)

	case formNewProject:
		return m.runCommand(func(ctx context.Context) error {
			_, err := commands.NewAddProjectCommand(m.ws, m.store, value, "").Execute(ctx)
			return err
		}, "Created project "+value)

	case formNewFolder:
		r := m.selectedRow()
		if r == nil {
			return nil
		}
		parent := ""
		if r.kind == rowNode {
			parent = r.path.String()
		}
		return m.runCommand(func(ctx context.Context) error {
			return commands.NewAddFolderCommand(m.ws, m.store, r.projectID, parent, value).Execute(ctx)
		}, "Created folder "+value)

	case formRename:
		r := m.selectedRow()
		if r == nil {
			return nil
		}
		if r.kind == rowProject {
			return m.runCommand(func(ctx context.Context) error {
				return commands.NewRenameProjectCommand(m.ws, m.store, r.projectID, value).Execute(ctx)
			}, "Renamed to "+value)
		}
		return m.runCommand(func(ctx context.Context) error {
			return commands.NewRenameFolderCommand(m.ws, m.store, r.projectID, r.path.String(), value).Execute(ctx)
		}, "Renamed to "+value)
	}
	return nil
}

func (m *BrowserModel) ingestFromDisk(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err}
		}
		name := filepath.Base(path)
		result, err := commands.NewIngestFileCommand(m.ws, m.store, name, string(content)).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

// runCommand executes a mutation and refreshes the rows on success
func (m *BrowserModel) runCommand(run func(context.Context) error, success string) tea.Cmd {
	return func() tea.Msg {
		if err := run(context.Background()); err != nil {
			return errMsg{err}
		}
		return successMsg{success}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Readspace"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Projects and sources"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(styles.MutedText.Render("No projects yet. Press n to create one, a to add a file."))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		b.WriteString(m.renderRow(&r, i == m.cursor))
		b.WriteString("\n")
	}

	if m.form != nil {
		b.WriteString("\n")
		b.WriteString(m.form.RenderField(0))
		b.WriteString("\n")
		b.WriteString(m.form.RenderHelp("submit"))
		b.WriteString("\n")
	}

	if m.confirm != nil {
		b.WriteString("\n")
		b.WriteString(m.confirm.Render())
		b.WriteString("\n")
	}

	if line := m.MessageLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderRow(r *row, selected bool) string {
	indent := strings.Repeat("  ", r.depth)

	var prefix, text string
	var style = styles.NodeFile
	switch r.kind {
	case rowProject:
		project := m.ws.Projects[r.projectID]
		if project.Expanded {
			prefix = styles.TreeExpanded
		} else {
			prefix = styles.TreeCollapsed
		}
		text = project.Name
		style = styles.NodeProject

	case rowNode:
		if r.node.Type == domain.NodeFolder {
			if r.node.Expanded {
				prefix = styles.TreeExpanded
			} else {
				prefix = styles.TreeCollapsed
			}
			text = r.node.Name
			style = styles.NodeFolder
		} else {
			prefix = styles.TreeLeaf
			text = r.node.Name
			if file := m.ws.Files[r.fileName]; file != nil && file.ReadProgress > 0 {
				text += styles.Progress.Render(fmt.Sprintf("  %d%%", file.ReadProgress))
			}
		}

	case rowHeader:
		return styles.SectionHeader.Render("Sources")

	case rowSource:
		prefix = styles.TreeLeaf
		text = r.fileName
		if file := m.ws.Files[r.fileName]; file != nil {
			if file.ReadProgress > 0 {
				text += styles.Progress.Render(fmt.Sprintf("  %d%%", file.ReadProgress))
			}
		}
	}

	styled := style.Render(text)
	if m.pick != nil && r.fileName == m.pick.fileName && (r.kind == rowNode || r.kind == rowSource) {
		styled = styles.NodePicked.Render(text)
	}
	if selected {
		styled = styles.NodeSelected.Render(text)
	}

	return indent + styles.TreeBranch.Render(prefix) + styled
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"enter", "open"},
		{"a", "add file"},
		{"n", "project"},
		{"f", "folder"},
		{"m/p", "move"},
		{"c", "calendar"},
		{"?", "help"},
		{"q", "quit"},
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
