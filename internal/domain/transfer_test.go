package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseImportCurrentSchema(t *testing.T) {
	raw := `{
		"version": "2.0",
		"files": {
			"a.md": {"name": "a.md", "content": "# A", "readProgress": 40, "openCount": 2, "lastOpened": "2026-08-30", "hiddenFromSources": true},
			"b.md": {"content": 7, "readProgress": "lots", "openCount": null}
		},
		"projects": [
			{"name": "Research", "expanded": false, "description": "notes", "structure": [
				{"type": "folder", "name": "Docs", "children": [{"type": "file", "name": "a.md"}]},
				{"type": "file", "name": "b.md"},
				{"type": "file"},
				{"type": "widget", "name": "bogus"}
			]}
		],
		"statistics": {"2026-08-30": {"a.md": 2}},
		"currentFile": "a.md"
	}`

	doc, err := ParseImport([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := doc.Files["a.md"]
	if a == nil || a.Content != "# A" || a.ReadProgress != 40 || a.OpenCount != 2 {
		t.Errorf("a.md not normalized: %+v", a)
	}
	if !a.HiddenSet || !a.Hidden {
		t.Error("explicit hiddenFromSources lost")
	}

	// Malformed field types degrade to zero values, keyed by map key.
	b := doc.Files["b.md"]
	if b == nil {
		t.Fatal("b.md missing")
	}
	if b.Content != "" || b.ReadProgress != 0 || b.OpenCount != 0 {
		t.Errorf("expected coerced zero values, got %+v", b)
	}
	if b.HiddenSet {
		t.Error("absent hiddenFromSources must not count as explicit")
	}

	if len(doc.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(doc.Projects))
	}
	project := doc.Projects[0]
	if project.Expanded {
		t.Error("explicit expanded false lost")
	}
	if project.Description != "notes" {
		t.Errorf("description lost: %q", project.Description)
	}
	// Nameless and unknown-type nodes are dropped.
	if CountFiles(project.Structure) != 2 || len(project.Structure) != 2 {
		t.Errorf("structure not cleaned: %+v", project.Structure)
	}

	if doc.Statistics["2026-08-30"]["a.md"] != 2 {
		t.Error("statistics not normalized")
	}
	if doc.CurrentFile != "a.md" {
		t.Errorf("currentFile lost: %q", doc.CurrentFile)
	}
}

func TestParseImportLegacySchema(t *testing.T) {
	raw := `{
		"projects": [
			{"name": "Old", "files": ["a.md", {"name": "b.md", "progress": 30}]}
		],
		"filesWithoutProjects": ["c.md", {"name": "b.md", "progress": 60}]
	}`

	doc, err := ParseImport([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(doc.Projects))
	}
	structure := doc.Projects[0].Structure
	if len(structure) != 2 || structure[0].Name != "a.md" || structure[1].Name != "b.md" {
		t.Errorf("legacy file list not migrated to a flat structure: %+v", structure)
	}
	for _, node := range structure {
		if node.Type != NodeFile {
			t.Errorf("expected file node, got %+v", node)
		}
	}
	if CountFiles(structure) != 2 {
		t.Errorf("expected 2 files, got %d", CountFiles(structure))
	}

	if len(doc.Files) != 3 {
		t.Fatalf("expected 3 synthesized files, got %d", len(doc.Files))
	}
	if doc.Files["b.md"].ReadProgress != 60 {
		t.Errorf("expected highest progress to win, got %d", doc.Files["b.md"].ReadProgress)
	}
	if doc.Files["c.md"] == nil {
		t.Error("filesWithoutProjects entry missing")
	}
}

func TestParseImportRejectsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{nope"},
		{name: "empty object", raw: "{}"},
		{name: "irrelevant keys", raw: `{"something": [1, 2]}`},
		{name: "empty collections", raw: `{"files": {}, "projects": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseImport([]byte(tt.raw)); !errors.Is(err, ErrMalformedImport) {
				t.Errorf("expected ErrMalformedImport, got %v", err)
			}
		})
	}
}

func TestMergeImportMonotonicity(t *testing.T) {
	w := newTestWorkspace(t, "a.md")
	w.Files["a.md"].ReadProgress = 70
	w.Files["a.md"].OpenCount = 5
	w.Files["a.md"].LastOpened = "2026-08-01"

	doc := &ImportDocument{
		Files: map[string]*ImportedFile{
			"a.md": {Name: "a.md", ReadProgress: 30, OpenCount: 9},
		},
		Statistics: NewLedger(),
	}
	w.MergeImport(doc)

	record := w.Files["a.md"]
	if record.ReadProgress != 70 {
		t.Errorf("progress regressed to %d", record.ReadProgress)
	}
	if record.OpenCount != 9 {
		t.Errorf("expected max open count 9, got %d", record.OpenCount)
	}
	if record.Content == "" {
		t.Error("empty imported content must not erase the existing content")
	}
	if record.LastOpened != "2026-08-01" {
		t.Errorf("lastOpened fallback broken: %q", record.LastOpened)
	}
}

func TestMergeImportProjectsAlwaysAppended(t *testing.T) {
	w := newTestWorkspace(t)
	existing, _ := w.AddProject("Research")

	doc := &ImportDocument{
		Projects: []ImportedProject{
			{Name: "Research", Expanded: true, Structure: []*Node{}},
		},
		Files:      map[string]*ImportedFile{},
		Statistics: NewLedger(),
	}
	w.MergeImport(doc)

	if len(w.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(w.Projects))
	}
	for id := range w.Projects {
		if id != existing.ID && id == "project_1" {
			t.Error("imported project reused an existing ID")
		}
	}
}

func TestMergeImportCurrentFile(t *testing.T) {
	t.Run("adopted when resolvable", func(t *testing.T) {
		w := newTestWorkspace(t, "a.md")
		doc := &ImportDocument{
			Files:       map[string]*ImportedFile{"b.md": {Name: "b.md"}},
			Statistics:  NewLedger(),
			CurrentFile: "b.md",
		}
		w.MergeImport(doc)
		if w.CurrentFile != "b.md" {
			t.Errorf("expected adopted current file, got %q", w.CurrentFile)
		}
	})

	t.Run("ignored when missing after merge", func(t *testing.T) {
		w := newTestWorkspace(t, "a.md")
		w.CurrentFile = "a.md"
		doc := &ImportDocument{
			Files:       map[string]*ImportedFile{},
			Projects:    []ImportedProject{{Name: "P", Expanded: true}},
			Statistics:  NewLedger(),
			CurrentFile: "ghost.md",
		}
		w.MergeImport(doc)
		if w.CurrentFile != "a.md" {
			t.Errorf("current file must be unchanged, got %q", w.CurrentFile)
		}
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	w := newTestWorkspace(t, "a.md", "b.md")
	project, _ := w.AddProject("P1")
	if err := w.AddFolder(project.ID, Path{}, "Docs"); err != nil {
		t.Fatal(err)
	}
	if err := w.InsertFile(project.ID, Path{0}, 0, "a.md"); err != nil {
		t.Fatal(err)
	}
	if err := w.InsertFile(project.ID, Path{}, 1, "b.md"); err != nil {
		t.Fatal(err)
	}
	if err := w.OpenFile("a.md", "2026-09-01"); err != nil {
		t.Fatal(err)
	}
	if err := w.SetReadProgress("a.md", 80); err != nil {
		t.Fatal(err)
	}

	doc := w.Export(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	if doc.Version != ExportVersion {
		t.Errorf("expected version %s, got %s", ExportVersion, doc.Version)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	imported, err := ParseImport(data)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	beforeProjects := len(w.Projects)
	beforeCounter := w.ProjectIDCounter
	w.MergeImport(imported)

	// Files and statistics are unchanged by importing an identical export.
	record := w.Files["a.md"]
	if record.ReadProgress != 80 || record.OpenCount != 1 || record.Content != "# a.md" {
		t.Errorf("file record changed by round-trip: %+v", record)
	}
	// Statistics merge additively, so re-import doubles the counters.
	if w.Statistics["2026-09-01"]["a.md"] != 2 {
		t.Errorf("expected additive statistics, got %d", w.Statistics["2026-09-01"]["a.md"])
	}

	// Projects are appended as new entries with fresh IDs.
	if len(w.Projects) != beforeProjects+1 {
		t.Fatalf("expected %d projects, got %d", beforeProjects+1, len(w.Projects))
	}
	if w.ProjectIDCounter != beforeCounter+1 {
		t.Errorf("counter not advanced: %d", w.ProjectIDCounter)
	}
	appended := w.Projects[ProjectID(beforeCounter)]
	if appended == nil {
		t.Fatal("appended project missing")
	}
	if CountFiles(appended.Structure) != CountFiles(project.Structure) {
		t.Error("imported structure differs from exported one")
	}
}

func TestExportClonesStructures(t *testing.T) {
	w := newTestWorkspace(t, "a.md")
	project, _ := w.AddProject("P1")
	if err := w.InsertFile(project.ID, Path{}, 0, "a.md"); err != nil {
		t.Fatal(err)
	}

	doc := w.Export(time.Now())
	doc.Projects[0].Structure[0].Name = "tampered.md"

	if project.Structure[0].Name != "a.md" {
		t.Error("export aliases the live tree")
	}
}
