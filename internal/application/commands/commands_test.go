package commands

import (
	"context"
	"errors"
	"testing"

	"readspace/internal/application"
	"readspace/internal/domain"
	"readspace/internal/ports"
)

// memoryStore records save calls so tests can assert write-through
// persistence without touching disk.
type memoryStore struct {
	saves int
	fail  error
}

func (s *memoryStore) LoadState() (*domain.Workspace, error) { return domain.NewWorkspace(), nil }

func (s *memoryStore) SaveState(ws *domain.Workspace) error {
	if s.fail != nil {
		return s.fail
	}
	s.saves++
	return nil
}

func (s *memoryStore) Close() error { return nil }

// recordingIndex captures activity events forwarded by OpenFileCommand
type recordingIndex struct {
	dates []string
	names []string
}

func (r *recordingIndex) Open(dataDir string) error          { return nil }
func (r *recordingIndex) Close() error                       { return nil }
func (r *recordingIndex) Rebuild(ledger domain.Ledger) error { return nil }

func (r *recordingIndex) ActiveDates(from, to string) ([]string, error) {
	return nil, nil
}

func (r *recordingIndex) TotalsFor(date string) (map[string]int, error) {
	return nil, nil
}

func (r *recordingIndex) DayTotals(from, to string) ([]ports.DayTotal, error) {
	return nil, nil
}

func (r *recordingIndex) RecordOpen(date, fileName string) error {
	r.dates = append(r.dates, date)
	r.names = append(r.names, fileName)
	return nil
}

func newWorkspaceWithFile(t *testing.T, name string) *domain.Workspace {
	t.Helper()
	ws := domain.NewWorkspace()
	if _, err := ws.Ingest(name, "# "+name); err != nil {
		t.Fatalf("Ingest(%q) failed: %v", name, err)
	}
	return ws
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && findSubstring(s, substr)
}

func findSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestIngestFileCommand(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		content   string
		wantError bool
	}{
		{name: "valid file", fileName: "notes.md", content: "# Notes"},
		{name: "empty name rejected", fileName: "", wantError: true},
		{name: "whitespace name rejected", fileName: "   ", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := domain.NewWorkspace()
			store := &memoryStore{}
			cmd := NewIngestFileCommand(ws, store, tt.fileName, tt.content)

			result, err := cmd.Execute(context.Background())
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var vErr *application.ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if store.saves != 0 {
					t.Error("failed command must not persist")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if result.File.Content != tt.content {
				t.Errorf("content = %q, want %q", result.File.Content, tt.content)
			}
			if store.saves != 1 {
				t.Errorf("saves = %d, want 1", store.saves)
			}
		})
	}
}

func TestIngestFileCommandPersistFailure(t *testing.T) {
	ws := domain.NewWorkspace()
	store := &memoryStore{fail: errors.New("disk full")}
	cmd := NewIngestFileCommand(ws, store, "notes.md", "body")

	_, err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if !contains(err.Error(), "failed to save workspace") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpenFileCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	store := &memoryStore{}
	index := &recordingIndex{}
	cmd := NewOpenFileCommand(ws, store, index, "notes.md", "2026-09-01")

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.File.OpenCount != 1 {
		t.Errorf("open count = %d, want 1", result.File.OpenCount)
	}
	if ws.CurrentFile != "notes.md" {
		t.Errorf("current file = %q, want notes.md", ws.CurrentFile)
	}
	if len(index.dates) != 1 || index.dates[0] != "2026-09-01" || index.names[0] != "notes.md" {
		t.Errorf("activity index not notified: dates=%v names=%v", index.dates, index.names)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestOpenFileCommandDefaultsDate(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	cmd := NewOpenFileCommand(ws, nil, nil, "notes.md", "")
	if cmd.Date != domain.Today() {
		t.Errorf("date = %q, want today", cmd.Date)
	}
}

func TestOpenFileCommandUnknownFile(t *testing.T) {
	ws := domain.NewWorkspace()
	cmd := NewOpenFileCommand(ws, nil, nil, "ghost.md", "2026-09-01")

	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, domain.ErrUnknownFile) {
		t.Errorf("expected ErrUnknownFile, got %v", err)
	}
}

func TestSetProgressCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	store := &memoryStore{}
	cmd := NewSetProgressCommand(ws, store, "notes.md", 150)

	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := ws.Files["notes.md"].ReadProgress; got != 100 {
		t.Errorf("progress = %d, want clamped 100", got)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestSetVisibilityCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	store := &memoryStore{}

	hide := NewSetVisibilityCommand(ws, store, "notes.md", true)
	if err := hide.Execute(context.Background()); err != nil {
		t.Fatalf("hide failed: %v", err)
	}
	if !ws.Files["notes.md"].HiddenFromSources {
		t.Error("file should be hidden")
	}

	show := NewSetVisibilityCommand(ws, store, "notes.md", false)
	if err := show.Execute(context.Background()); err != nil {
		t.Fatalf("unhide failed: %v", err)
	}
	if ws.Files["notes.md"].HiddenFromSources {
		t.Error("file should be visible")
	}
	if store.saves != 2 {
		t.Errorf("saves = %d, want 2", store.saves)
	}
}

func TestAddProjectCommand(t *testing.T) {
	ws := domain.NewWorkspace()
	store := &memoryStore{}
	cmd := NewAddProjectCommand(ws, store, "Research", "papers to read")

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Project.ID != "project_1" {
		t.Errorf("ID = %q, want project_1", result.Project.ID)
	}
	if result.Project.Description != "papers to read" {
		t.Errorf("description = %q", result.Project.Description)
	}
	if !contains(result.Message, "Research") {
		t.Errorf("message %q should name the project", result.Message)
	}
}

func TestAddProjectCommandValidation(t *testing.T) {
	ws := domain.NewWorkspace()
	cmd := NewAddProjectCommand(ws, nil, "", "")
	if _, err := cmd.Execute(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDeleteProjectCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	project, _ := ws.AddProject("Research")
	if err := ws.InsertFile(project.ID, nil, 0, "notes.md"); err != nil {
		t.Fatalf("InsertFile failed: %v", err)
	}
	if err := ws.HideFile("notes.md"); err != nil {
		t.Fatalf("HideFile failed: %v", err)
	}
	store := &memoryStore{}

	cmd := NewDeleteProjectCommand(ws, store, project.ID)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !contains(result.Message, "Research") {
		t.Errorf("message %q should name the project", result.Message)
	}
	if ws.Files["notes.md"].HiddenFromSources {
		t.Error("file should reappear after its last project is deleted")
	}
}

func TestDeleteProjectCommandNotFound(t *testing.T) {
	ws := domain.NewWorkspace()
	cmd := NewDeleteProjectCommand(ws, nil, "project_404")
	if _, err := cmd.Execute(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFolderCommands(t *testing.T) {
	ws := domain.NewWorkspace()
	project, _ := ws.AddProject("Research")
	store := &memoryStore{}

	add := NewAddFolderCommand(ws, store, project.ID, "", "Papers")
	if err := add.Execute(context.Background()); err != nil {
		t.Fatalf("add folder failed: %v", err)
	}
	if len(project.Structure) != 1 || project.Structure[0].Name != "Papers" {
		t.Fatalf("unexpected structure: %+v", project.Structure)
	}

	rename := NewRenameFolderCommand(ws, store, project.ID, "0", "Articles")
	if err := rename.Execute(context.Background()); err != nil {
		t.Fatalf("rename folder failed: %v", err)
	}
	if project.Structure[0].Name != "Articles" {
		t.Errorf("name = %q, want Articles", project.Structure[0].Name)
	}

	toggle := NewToggleFolderCommand(ws, store, project.ID, "0")
	if err := toggle.Execute(context.Background()); err != nil {
		t.Fatalf("toggle folder failed: %v", err)
	}
	if project.Structure[0].Expanded {
		t.Error("folder should be collapsed")
	}

	del := NewDeleteFolderCommand(ws, store, project.ID, "0")
	if err := del.Execute(context.Background()); err != nil {
		t.Fatalf("delete folder failed: %v", err)
	}
	if len(project.Structure) != 0 {
		t.Errorf("structure should be empty, got %+v", project.Structure)
	}
	if store.saves != 4 {
		t.Errorf("saves = %d, want 4", store.saves)
	}
}

func TestFolderCommandBadPath(t *testing.T) {
	ws := domain.NewWorkspace()
	project, _ := ws.AddProject("Research")

	cmd := NewRenameFolderCommand(ws, nil, project.ID, "0.x", "New")
	err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed path")
	}
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestInsertFileCommandDuplicate(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	project, _ := ws.AddProject("Research")
	store := &memoryStore{}

	first := NewInsertFileCommand(ws, store, project.ID, "notes.md", "", 0)
	if err := first.Execute(context.Background()); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	second := NewInsertFileCommand(ws, store, project.ID, "notes.md", "", 1)
	err := second.Execute(context.Background())
	if !errors.Is(err, domain.ErrDuplicateFile) {
		t.Fatalf("expected ErrDuplicateFile, got %v", err)
	}
	if !contains(err.Error(), "notes.md") {
		t.Errorf("error %q should name the file", err.Error())
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestMoveFileCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "a.md")
	if _, err := ws.Ingest("b.md", "# b"); err != nil {
		t.Fatal(err)
	}
	project, _ := ws.AddProject("Research")
	for i, name := range []string{"a.md", "b.md"} {
		if err := ws.InsertFile(project.ID, nil, i, name); err != nil {
			t.Fatal(err)
		}
	}
	store := &memoryStore{}

	cmd := NewMoveFileCommand(ws, store, project.ID, "0", project.ID, "", 2)
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if project.Structure[0].Name != "b.md" || project.Structure[1].Name != "a.md" {
		t.Errorf("unexpected order: %s, %s", project.Structure[0].Name, project.Structure[1].Name)
	}
}

func TestMoveFileCommandWrapsFailure(t *testing.T) {
	ws := newWorkspaceWithFile(t, "a.md")
	project, _ := ws.AddProject("Research")
	if err := ws.InsertFile(project.ID, nil, 0, "a.md"); err != nil {
		t.Fatal(err)
	}

	cmd := NewMoveFileCommand(ws, nil, project.ID, "0", "project_404", "", 0)
	err := cmd.Execute(context.Background())
	if err == nil {
		t.Fatal("expected move error")
	}
	var mErr *application.MoveError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MoveError, got %T", err)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("MoveError should wrap the cause, got %v", err)
	}
}

func TestRemoveFileCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "a.md")
	project, _ := ws.AddProject("Research")
	if err := ws.InsertFile(project.ID, nil, 0, "a.md"); err != nil {
		t.Fatal(err)
	}
	store := &memoryStore{}

	cmd := NewRemoveFileCommand(ws, store, project.ID, "0")
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(project.Structure) != 0 {
		t.Errorf("structure should be empty, got %+v", project.Structure)
	}
	if ws.Files["a.md"] == nil {
		t.Error("registry record must survive tree removal")
	}
}

func TestExportImportCommands(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	if err := ws.OpenFile("notes.md", "2026-09-01"); err != nil {
		t.Fatal(err)
	}

	export := NewExportCommand(ws)
	exported, err := export.Execute(context.Background())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !contains(exported.Message, "1 files") {
		t.Errorf("unexpected message %q", exported.Message)
	}

	target := domain.NewWorkspace()
	store := &memoryStore{}
	imp := NewImportCommand(target, store, exported.Data, nil)
	result, err := imp.Execute(context.Background())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Report.FilesAdded != 1 {
		t.Errorf("files added = %d, want 1", result.Report.FilesAdded)
	}
	if target.Files["notes.md"] == nil {
		t.Error("imported file missing")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}

func TestImportCommandDeclined(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	export := NewExportCommand(ws)
	exported, err := export.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	target := domain.NewWorkspace()
	declined := false
	cmd := NewImportCommand(target, nil, exported.Data, func(summary string) bool {
		declined = contains(summary, "1 files")
		return false
	})
	if _, err := cmd.Execute(context.Background()); !errors.Is(err, application.ErrImportDeclined) {
		t.Fatalf("expected ErrImportDeclined, got %v", err)
	}
	if !declined {
		t.Error("confirm prompt should summarize the document")
	}
	if len(target.Files) != 0 {
		t.Error("declined import must not mutate the workspace")
	}
}

func TestImportCommandMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: "{nope"},
		{name: "empty document", data: "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := domain.NewWorkspace()
			cmd := NewImportCommand(ws, nil, []byte(tt.data), nil)
			_, err := cmd.Execute(context.Background())
			if !errors.Is(err, domain.ErrMalformedImport) {
				t.Errorf("expected ErrMalformedImport, got %v", err)
			}
		})
	}
}

func TestResetCommand(t *testing.T) {
	ws := newWorkspaceWithFile(t, "notes.md")
	if _, err := ws.AddProject("Research"); err != nil {
		t.Fatal(err)
	}
	store := &memoryStore{}

	cmd := NewResetCommand(ws, store)
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(ws.Files) != 0 || len(ws.Projects) != 0 {
		t.Error("reset should clear all state")
	}
	if ws.ProjectIDCounter != 1 {
		t.Errorf("counter = %d, want 1", ws.ProjectIDCounter)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
}
