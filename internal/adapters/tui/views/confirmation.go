package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"readspace/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is an inline y/n prompt layered over a view. Confirm runs
// the stored action; anything else dismisses the prompt.
type Confirmation struct {
	Question string
	OnYes    func() tea.Msg
	Keys     ConfirmKeyMap
}

// NewConfirmation creates a pending confirmation
func NewConfirmation(question string, onYes func() tea.Msg) *Confirmation {
	return &Confirmation{
		Question: question,
		OnYes:    onYes,
		Keys:     DefaultConfirmKeys,
	}
}

// HandleKeyMsg processes a key press. Returns (done, cmd); done is true
// when the prompt should be dismissed.
func (c *Confirmation) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		onYes := c.OnYes
		return true, func() tea.Msg { return onYes() }
	case key.Matches(msg, c.Keys.Cancel):
		return true, nil
	}
	return false, nil
}

// Render renders the prompt line
func (c *Confirmation) Render() string {
	var b strings.Builder
	b.WriteString(c.Question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
