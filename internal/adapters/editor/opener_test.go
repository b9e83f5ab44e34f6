package editor

import (
	"os"
	"strings"
	"testing"
)

func TestMaterializeKeepsExtension(t *testing.T) {
	tests := []struct {
		name    string
		docName string
		wantExt string
	}{
		{name: "markdown file", docName: "notes.md", wantExt: ".md"},
		{name: "text file", docName: "todo.txt", wantExt: ".txt"},
		{name: "no extension defaults to md", docName: "README", wantExt: ".md"},
	}

	o := NewOpener()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := o.Materialize(tt.docName, "body")
			if err != nil {
				t.Fatalf("Materialize failed: %v", err)
			}
			defer os.Remove(path)

			if !strings.HasSuffix(path, tt.wantExt) {
				t.Errorf("path %q should end in %s", path, tt.wantExt)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(content) != "body" {
				t.Errorf("content = %q, want body", content)
			}
		})
	}
}

func TestEditContentRoundTrip(t *testing.T) {
	// "true" exits immediately without touching the file, so the
	// content should come back unchanged.
	t.Setenv("READSPACE_EDITOR", "true")

	o := NewOpener()
	out, err := o.EditContent("notes.md", "# unchanged")
	if err != nil {
		t.Fatalf("EditContent failed: %v", err)
	}
	if out != "# unchanged" {
		t.Errorf("content = %q, want unchanged", out)
	}
}

func TestCommandRequiresEditor(t *testing.T) {
	t.Setenv("READSPACE_EDITOR", "")
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("PATH", "")

	o := NewOpener()
	if _, err := o.Command("/tmp/x.md"); err == nil {
		t.Fatal("expected error with no editor available")
	}
}
