package domain

import (
	"errors"
	"testing"
)

func sampleStructure() []*Node {
	docs := NewFolderNode("Docs")
	docs.Children = []*Node{
		NewFileNode("a.md"),
		NewFileNode("b.md"),
	}
	nested := NewFolderNode("Notes")
	nested.Children = []*Node{NewFileNode("deep.md")}
	docs.Children = append(docs.Children, nested)
	return []*Node{docs, NewFileNode("root.md")}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{name: "empty string is root", input: "", want: Path{}},
		{name: "single index", input: "3", want: Path{3}},
		{name: "nested path", input: "0.2.1", want: Path{0, 2, 1}},
		{name: "whitespace tolerated", input: " 1 . 0 ", want: Path{1, 0}},
		{name: "negative index", input: "-1", wantErr: true},
		{name: "non-numeric", input: "0.x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("expected ErrInvalidPath, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveParent(t *testing.T) {
	structure := sampleStructure()

	t.Run("empty path resolves to root", func(t *testing.T) {
		parent, ok := ResolveParent(&structure, Path{})
		if !ok {
			t.Fatal("expected root container")
		}
		if parent != &structure {
			t.Error("expected the root structure itself")
		}
	})

	t.Run("single index resolves to root", func(t *testing.T) {
		parent, ok := ResolveParent(&structure, Path{1})
		if !ok || parent != &structure {
			t.Error("expected the root structure for a single-element path")
		}
	})

	t.Run("descends through folders", func(t *testing.T) {
		parent, ok := ResolveParent(&structure, Path{0, 2, 0})
		if !ok {
			t.Fatal("expected nested container")
		}
		if len(*parent) != 1 || (*parent)[0].Name != "deep.md" {
			t.Errorf("resolved wrong container: %+v", *parent)
		}
	})

	t.Run("fails through a file", func(t *testing.T) {
		if _, ok := ResolveParent(&structure, Path{1, 0}); ok {
			t.Error("expected failure when an intermediate node is a file")
		}
	})

	t.Run("fails on out-of-range index", func(t *testing.T) {
		if _, ok := ResolveParent(&structure, Path{5, 0}); ok {
			t.Error("expected failure for missing intermediate")
		}
	})
}

func TestResolveNode(t *testing.T) {
	structure := sampleStructure()

	t.Run("resolves nested file", func(t *testing.T) {
		node, ok := ResolveNode(&structure, Path{0, 2, 0})
		if !ok {
			t.Fatal("expected node")
		}
		if node.Type != NodeFile || node.Name != "deep.md" {
			t.Errorf("resolved wrong node: %+v", node)
		}
	})

	t.Run("resolves folder", func(t *testing.T) {
		node, ok := ResolveNode(&structure, Path{0})
		if !ok || node.Type != NodeFolder || node.Name != "Docs" {
			t.Errorf("expected Docs folder, got %+v", node)
		}
	})

	t.Run("empty path has no node", func(t *testing.T) {
		if _, ok := ResolveNode(&structure, Path{}); ok {
			t.Error("expected failure for empty path")
		}
	})

	t.Run("out of range leaf", func(t *testing.T) {
		if _, ok := ResolveNode(&structure, Path{0, 9}); ok {
			t.Error("expected failure for out-of-range leaf")
		}
	})

	t.Run("lookups never mutate", func(t *testing.T) {
		before := CountFiles(structure)
		ResolveNode(&structure, Path{0, 2, 0})
		ResolveParent(&structure, Path{0, 1})
		if CountFiles(structure) != before {
			t.Error("resolution mutated the structure")
		}
	})
}
