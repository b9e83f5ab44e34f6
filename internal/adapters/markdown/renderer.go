// Package markdown renders document content to styled terminal output.
package markdown

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"readspace/internal/ports"
)

// Renderer implements ports.Renderer on glamour. Renderers are cached
// by style and wrap width; creating one with WithAutoStyle can trigger
// terminal capability queries that block on some terminals, so the
// style is resolved once from the environment instead.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]*glamour.TermRenderer
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with an empty cache
func NewRenderer() *Renderer {
	return &Renderer{cache: map[string]*glamour.TermRenderer{}}
}

// Render converts markdown content to terminal output wrapped at width.
// On renderer failure the raw content is returned so the reader always
// shows something.
func (r *Renderer) Render(content string, width int) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", nil
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	r.mu.Lock()
	tr := r.cache[key]
	r.mu.Unlock()

	if tr == nil {
		created, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content, err
		}
		r.mu.Lock()
		// Re-check in case a concurrent goroutine filled it.
		if existing := r.cache[key]; existing != nil {
			tr = existing
		} else {
			r.cache[key] = created
			tr = created
		}
		r.mu.Unlock()
	}

	out, err := tr.Render(content)
	if err != nil {
		return content, err
	}
	return strings.TrimRight(out, "\n"), nil
}

// markdownStyle resolves the glamour style from the environment.
// COLORFGBG is often "fg;bg" where bg 0-6 means a dark background.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("READSPACE_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	return "dark"
}
