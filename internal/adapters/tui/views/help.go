package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/tui/styles"
)

// HelpModel shows the full key reference
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, func() tea.Msg { return SwitchToBrowserMsg{} }
	}

	return m, nil
}

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Browser",
		entries: []helpEntry{
			{"j/k", "move selection"},
			{"h/l", "collapse / expand"},
			{"enter", "open file or toggle"},
			{"a", "add a file from disk"},
			{"n", "new project"},
			{"f", "new folder"},
			{"r", "rename project or folder"},
			{"d", "delete project or folder"},
			{"x", "remove file from project"},
			{"H", "hide file from sources"},
			{"m", "pick up file"},
			{"p", "place picked file"},
			{"c", "activity calendar"},
		},
	},
	{
		title: "Reader",
		entries: []helpEntry{
			{"j/k", "scroll (updates progress)"},
			{"g/G", "jump to top / bottom"},
			{"y", "copy content to clipboard"},
			{"e", "open in external editor"},
			{"v", "toggle raw source"},
			{"esc", "back to browser"},
		},
	},
	{
		title: "Calendar",
		entries: []helpEntry{
			{"h/l", "previous / next month"},
			{"j/k", "previous / next day"},
			{"t", "jump to today"},
		},
	},
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n")

	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(styles.SectionHeader.Render(section.title))
		b.WriteString("\n")
		for _, entry := range section.entries {
			fmt.Fprintf(&b, "  %s  %s\n",
				styles.HelpKey.Render(fmt.Sprintf("%-6s", entry.key)),
				styles.HelpDesc.Render(entry.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to return."))

	return styles.App.Render(b.String())
}
