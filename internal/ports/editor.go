package ports

import "os/exec"

// EditorOpener opens a document in the user's external editor. Documents
// live in the registry, not on disk, so adapters materialize content to a
// temporary file and hand back whatever the editor saved.
type EditorOpener interface {
	// EditContent opens content in the editor and returns the edited
	// text once the editor exits.
	EditContent(name, content string) (string, error)

	// Command returns an exec.Cmd editing the given temp file, for
	// integrating with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
