package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ExportVersion is the schema version written by Export
const ExportVersion = "2.0"

// ExportDocument is the current interchange schema. Import also accepts
// the legacy generation where projects carried flat file lists.
type ExportDocument struct {
	Version      string                 `json:"version"`
	ExportDate   string                 `json:"exportDate"`
	Projects     []*Project             `json:"projects"`
	Files        map[string]*FileRecord `json:"files"`
	Statistics   Ledger                 `json:"statistics"`
	CurrentFile  string                 `json:"currentFile,omitempty"`
	SelectedDate string                 `json:"selectedDate,omitempty"`
	CurrentMonth int                    `json:"currentMonth"`
	CurrentYear  int                    `json:"currentYear"`
}

// Export serializes the live workspace into the current schema. Project
// structures are cloned so the document never aliases the live trees.
func (w *Workspace) Export(now time.Time) *ExportDocument {
	doc := &ExportDocument{
		Version:      ExportVersion,
		ExportDate:   now.UTC().Format(time.RFC3339),
		Projects:     make([]*Project, 0, len(w.Projects)),
		Files:        make(map[string]*FileRecord, len(w.Files)),
		Statistics:   w.Statistics.Clone(),
		CurrentFile:  w.CurrentFile,
		SelectedDate: w.SelectedDate,
		CurrentMonth: int(w.CurrentMonth),
		CurrentYear:  w.CurrentYear,
	}
	for _, project := range w.ProjectsInOrder() {
		doc.Projects = append(doc.Projects, &Project{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			Expanded:    project.Expanded,
			Structure:   CloneStructure(project.Structure),
		})
	}
	for name, record := range w.Files {
		clone := *record
		doc.Files[name] = &clone
	}
	return doc
}

// ImportedFile is a registry entry normalized out of an import document.
// HiddenSet distinguishes an explicit hiddenFromSources value from an
// absent field so the merge can fall back to the existing flag.
type ImportedFile struct {
	Name         string
	Content      string
	ReadProgress int
	OpenCount    int
	LastOpened   string
	Hidden       bool
	HiddenSet    bool
}

// ImportedProject is a project entry normalized out of an import
// document, legacy or current
type ImportedProject struct {
	Name        string
	Description string
	Expanded    bool
	Structure   []*Node
}

// ImportDocument is the normalized in-memory form of an import file
type ImportDocument struct {
	Projects    []ImportedProject
	Files       map[string]*ImportedFile
	Statistics  Ledger
	CurrentFile string
}

// ImportSummary describes what an import document would add, for
// confirmation prompts
type ImportSummary struct {
	ProjectCount    int
	FileCount       int
	FilesInProjects int
}

// Summary counts the document's projects, files, and files referenced
// inside project structures
func (d *ImportDocument) Summary() ImportSummary {
	s := ImportSummary{
		ProjectCount: len(d.Projects),
		FileCount:    len(d.Files),
	}
	for _, project := range d.Projects {
		s.FilesInProjects += CountFiles(project.Structure)
	}
	return s
}

// ParseImport decodes and normalizes an import document in either the
// current or the legacy schema. Documents that yield no files and no
// projects are rejected as malformed.
func ParseImport(data []byte) (*ImportDocument, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	doc := &ImportDocument{
		Projects:   normalizeImportedProjects(raw["projects"]),
		Files:      normalizeImportedFiles(raw),
		Statistics: normalizeImportedStatistics(raw["statistics"]),
	}
	doc.CurrentFile, _ = asString(raw["currentFile"])

	if len(doc.Projects) == 0 && len(doc.Files) == 0 {
		return nil, fmt.Errorf("%w: no files or projects", ErrMalformedImport)
	}
	return doc, nil
}

// MergeReport counts what a merge actually changed
type MergeReport struct {
	FilesAdded    int
	FilesUpdated  int
	ProjectsAdded int
}

// MergeImport merges a normalized document into the workspace: files
// field-by-field (progress and open counts never regress), projects
// appended with freshly generated IDs, statistics added, and currentFile
// adopted only when it resolves after the merge.
func (w *Workspace) MergeImport(doc *ImportDocument) *MergeReport {
	report := &MergeReport{ProjectsAdded: len(doc.Projects)}
	names := make([]string, 0, len(doc.Files))
	for name := range doc.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		imported := doc.Files[name]
		existing := w.Files[name]
		if existing == nil {
			existing = &FileRecord{Name: name}
			w.Files[name] = existing
			report.FilesAdded++
		} else {
			report.FilesUpdated++
		}
		if imported.Content != "" {
			existing.Content = imported.Content
		}
		if imported.ReadProgress > existing.ReadProgress {
			existing.ReadProgress = ClampProgress(imported.ReadProgress)
		}
		if imported.OpenCount > existing.OpenCount {
			existing.OpenCount = imported.OpenCount
		}
		if imported.LastOpened != "" {
			existing.LastOpened = imported.LastOpened
		}
		if imported.HiddenSet {
			existing.HiddenFromSources = imported.Hidden
		}
	}

	for _, imported := range doc.Projects {
		project := &Project{
			ID:          ProjectID(w.ProjectIDCounter),
			Name:        imported.Name,
			Description: imported.Description,
			Expanded:    imported.Expanded,
			Structure:   CloneStructure(imported.Structure),
		}
		w.ProjectIDCounter++
		w.Projects[project.ID] = project
	}

	w.Statistics.MergeFrom(doc.Statistics)

	if doc.CurrentFile != "" && w.Files[doc.CurrentFile] != nil {
		w.CurrentFile = doc.CurrentFile
	}
	return report
}

// ---------- normalization ----------

func normalizeImportedProjects(raw any) []ImportedProject {
	entries, ok := asSlice(raw)
	if !ok {
		return nil
	}
	out := make([]ImportedProject, 0, len(entries))
	for _, entry := range entries {
		fields, ok := asMap(entry)
		if !ok {
			continue
		}
		project := ImportedProject{
			Expanded: boolOrDefault(fields["expanded"], true),
		}
		project.Name, _ = asString(fields["name"])
		if project.Name == "" {
			project.Name = "Imported project"
		}
		project.Description, _ = asString(fields["description"])
		if structure, ok := asSlice(fields["structure"]); ok {
			project.Structure = normalizeStructure(structure)
		} else {
			project.Structure = StructureFromNames(legacyFileNames(fields["files"]))
		}
		out = append(out, project)
	}
	return out
}

// normalizeStructure validates and deep-copies a raw structure array:
// unknown node types and nodes without a usable name are dropped, folder
// expanded defaults to true unless explicitly false.
func normalizeStructure(entries []any) []*Node {
	out := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		fields, ok := asMap(entry)
		if !ok {
			continue
		}
		kind, _ := asString(fields["type"])
		name, _ := asString(fields["name"])
		if name == "" {
			continue
		}
		switch NodeType(kind) {
		case NodeFile:
			out = append(out, NewFileNode(name))
		case NodeFolder:
			folder := NewFolderNode(name)
			folder.Expanded = boolOrDefault(fields["expanded"], true)
			if children, ok := asSlice(fields["children"]); ok {
				folder.Children = normalizeStructure(children)
			}
			out = append(out, folder)
		}
	}
	return out
}

func normalizeImportedFiles(raw map[string]any) map[string]*ImportedFile {
	if files, ok := asMap(raw["files"]); ok {
		out := make(map[string]*ImportedFile, len(files))
		for key, value := range files {
			fields, _ := asMap(value)
			name, _ := asString(fields["name"])
			if name == "" {
				name = key
			}
			if name == "" {
				continue
			}
			file := &ImportedFile{Name: name}
			file.Content, _ = asString(fields["content"])
			file.ReadProgress, _ = asNumber(fields["readProgress"])
			file.OpenCount, _ = asNumber(fields["openCount"])
			file.LastOpened, _ = asString(fields["lastOpened"])
			if hidden, present := fields["hiddenFromSources"]; present {
				file.Hidden, _ = hidden.(bool)
				file.HiddenSet = true
			}
			out[name] = file
		}
		return out
	}
	return collectLegacyFiles(raw)
}

// collectLegacyFiles synthesizes registry entries from the legacy layout:
// per-project flat file lists plus a top-level filesWithoutProjects list.
// Only names and progress survive; the merge recovers everything else
// from the existing registry.
func collectLegacyFiles(raw map[string]any) map[string]*ImportedFile {
	out := map[string]*ImportedFile{}
	record := func(entry any) {
		name, progress := legacyFileEntry(entry)
		if name == "" {
			return
		}
		file := out[name]
		if file == nil {
			file = &ImportedFile{Name: name}
			out[name] = file
		}
		if progress > file.ReadProgress {
			file.ReadProgress = progress
		}
	}

	if projects, ok := asSlice(raw["projects"]); ok {
		for _, entry := range projects {
			fields, ok := asMap(entry)
			if !ok {
				continue
			}
			if files, ok := asSlice(fields["files"]); ok {
				for _, file := range files {
					record(file)
				}
			}
		}
	}
	if files, ok := asSlice(raw["filesWithoutProjects"]); ok {
		for _, file := range files {
			record(file)
		}
	}
	return out
}

// legacyFileEntry reads a legacy file reference: either a bare name or a
// {name, progress} object
func legacyFileEntry(entry any) (string, int) {
	if name, ok := asString(entry); ok {
		return name, 0
	}
	fields, ok := asMap(entry)
	if !ok {
		return "", 0
	}
	name, _ := asString(fields["name"])
	progress, _ := asNumber(fields["progress"])
	return name, progress
}

func legacyFileNames(raw any) []string {
	entries, ok := asSlice(raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, _ := legacyFileEntry(entry); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func normalizeImportedStatistics(raw any) Ledger {
	ledger := NewLedger()
	dates, ok := asMap(raw)
	if !ok {
		return ledger
	}
	for date, value := range dates {
		files, ok := asMap(value)
		if !ok {
			continue
		}
		for fileName, count := range files {
			if n, ok := asNumber(count); ok && n > 0 {
				ledger[date] = appendCount(ledger[date], fileName, n)
			}
		}
	}
	return ledger
}

func appendCount(day map[string]int, fileName string, count int) map[string]int {
	if day == nil {
		day = map[string]int{}
	}
	day[fileName] += count
	return day
}

// ---------- duck-typed field coercion ----------

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asNumber(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func boolOrDefault(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}
