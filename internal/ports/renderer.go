package ports

// Renderer converts a document's raw markdown text for display. The core
// never parses markdown itself; it only hands content to this
// collaborator.
type Renderer interface {
	// Render formats content for a terminal of the given width.
	Render(content string, width int) (string, error)
}
