package domain

import (
	"encoding/json"
	"testing"
)

func TestCountFiles(t *testing.T) {
	tests := []struct {
		name      string
		structure []*Node
		want      int
	}{
		{name: "empty", structure: []*Node{}, want: 0},
		{name: "flat files", structure: StructureFromNames([]string{"a.md", "b.md"}), want: 2},
		{name: "nested", structure: sampleStructure(), want: 4},
		{
			name:      "folders only",
			structure: []*Node{NewFolderNode("Empty"), NewFolderNode("Other")},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountFiles(tt.structure); got != tt.want {
				t.Errorf("expected %d files, got %d", tt.want, got)
			}
		})
	}
}

func TestContainsFile(t *testing.T) {
	structure := sampleStructure()

	// ContainsFile must agree with an independent recursive walk.
	seen := map[string]bool{}
	for _, name := range CollectFiles(structure) {
		seen[name] = true
	}
	for _, name := range []string{"a.md", "b.md", "deep.md", "root.md", "missing.md"} {
		if got := ContainsFile(structure, name); got != seen[name] {
			t.Errorf("ContainsFile(%q) = %v, flattened walk says %v", name, got, seen[name])
		}
	}
}

func TestCloneStructure(t *testing.T) {
	original := sampleStructure()
	clone := CloneStructure(original)

	if CountFiles(clone) != CountFiles(original) {
		t.Fatal("clone lost files")
	}

	clone[0].Name = "Renamed"
	clone[0].Children[0].Name = "changed.md"
	if original[0].Name != "Docs" || original[0].Children[0].Name != "a.md" {
		t.Error("mutating the clone reached the original tree")
	}
}

func TestNodeJSON(t *testing.T) {
	t.Run("file node round-trip", func(t *testing.T) {
		data, err := json.Marshal(NewFileNode("a.md"))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		want := `{"type":"file","name":"a.md"}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("folder expanded defaults to true", func(t *testing.T) {
		var node Node
		if err := json.Unmarshal([]byte(`{"type":"folder","name":"Docs"}`), &node); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !node.Expanded {
			t.Error("expected absent expanded to default to true")
		}
		if node.Children == nil {
			t.Error("expected children initialized")
		}
	})

	t.Run("explicit collapsed folder survives", func(t *testing.T) {
		var node Node
		raw := `{"type":"folder","name":"Docs","expanded":false,"children":[{"type":"file","name":"a.md"}]}`
		if err := json.Unmarshal([]byte(raw), &node); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if node.Expanded {
			t.Error("expected expanded false to stick")
		}
		if len(node.Children) != 1 || node.Children[0].Name != "a.md" {
			t.Errorf("children not preserved: %+v", node.Children)
		}

		data, err := json.Marshal(&node)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var again Node
		if err := json.Unmarshal(data, &again); err != nil {
			t.Fatalf("re-unmarshal: %v", err)
		}
		if again.Expanded {
			t.Error("expanded flag lost in round-trip")
		}
	})
}
