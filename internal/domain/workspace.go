package domain

import (
	"sort"
	"strings"
	"time"
)

// Workspace is the aggregate root: the file registry, every project tree,
// the statistics ledger, and the session view state. All mutations go
// through its methods; a failed validation leaves the workspace untouched.
type Workspace struct {
	Files            map[string]*FileRecord
	Projects         map[string]*Project
	Statistics       Ledger
	CurrentFile      string
	ProjectIDCounter int

	// Session view state. Not persisted by the gateway but carried in
	// exports for parity with the browser app.
	SelectedDate string
	CurrentMonth time.Month
	CurrentYear  int
	LastFileView string
	IsShowingURL bool
}

// NewWorkspace returns an empty workspace with the view anchored to the
// current month
func NewWorkspace() *Workspace {
	now := time.Now()
	return &Workspace{
		Files:            map[string]*FileRecord{},
		Projects:         map[string]*Project{},
		Statistics:       NewLedger(),
		ProjectIDCounter: 1,
		CurrentMonth:     now.Month(),
		CurrentYear:      now.Year(),
	}
}

// Reset discards all state and returns the workspace to its freshly
// created shape
func (w *Workspace) Reset() {
	*w = *NewWorkspace()
}

// ---------- File Registry ----------

// Ingest creates or overwrites the record for name with fresh content.
// Reading history (progress, open counts, visibility) survives a
// re-upload of the same file.
func (w *Workspace) Ingest(name, content string) (*FileRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	record := w.Files[name]
	if record == nil {
		record = &FileRecord{Name: name}
		w.Files[name] = record
	}
	record.Content = content
	return record, nil
}

// OpenFile records an open of name on date: bumps the open counters,
// appends to the statistics ledger, and makes the file current.
func (w *Workspace) OpenFile(name, date string) error {
	record := w.Files[name]
	if record == nil {
		return ErrUnknownFile
	}
	record.OpenCount++
	record.LastOpened = date
	w.Statistics.RecordOpen(date, name)
	w.CurrentFile = name
	w.LastFileView = name
	w.IsShowingURL = false
	return nil
}

// SetReadProgress stores a clamped read percentage for name
func (w *Workspace) SetReadProgress(name string, percent int) error {
	record := w.Files[name]
	if record == nil {
		return ErrUnknownFile
	}
	record.ReadProgress = ClampProgress(percent)
	return nil
}

// HideFile removes name from the sources list while keeping it
// addressable through project membership
func (w *Workspace) HideFile(name string) error {
	record := w.Files[name]
	if record == nil {
		return ErrUnknownFile
	}
	record.HiddenFromSources = true
	return nil
}

// UnhideFile returns name to the sources list
func (w *Workspace) UnhideFile(name string) error {
	record := w.Files[name]
	if record == nil {
		return ErrUnknownFile
	}
	record.HiddenFromSources = false
	return nil
}

// VisibleFiles returns the registry filtered to records not hidden from
// sources, sorted by name
func (w *Workspace) VisibleFiles() []*FileRecord {
	out := make([]*FileRecord, 0, len(w.Files))
	for _, record := range w.Files {
		if !record.HiddenFromSources {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AllFiles returns every record sorted by name
func (w *Workspace) AllFiles() []*FileRecord {
	out := make([]*FileRecord, 0, len(w.Files))
	for _, record := range w.Files {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stats summarizes the registry and ledger
func (w *Workspace) Stats() OverallStats {
	stats := OverallStats{
		FileCount:  len(w.Files),
		ActiveDays: w.Statistics.ActiveDayCount(),
	}
	if stats.FileCount == 0 {
		return stats
	}
	progressSum := 0
	for _, record := range w.Files {
		stats.TotalOpens += record.OpenCount
		progressSum += record.ReadProgress
	}
	stats.AverageProgress = int(float64(progressSum)/float64(stats.FileCount) + 0.5)
	return stats
}

// ---------- Projects ----------

// AddProject creates an empty, expanded project and advances the ID
// counter
func (w *Workspace) AddProject(name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	project := &Project{
		ID:        ProjectID(w.ProjectIDCounter),
		Name:      name,
		Expanded:  true,
		Structure: []*Node{},
	}
	w.ProjectIDCounter++
	w.Projects[project.ID] = project
	return project, nil
}

// Project returns the project with the given ID
func (w *Workspace) Project(projectID string) (*Project, error) {
	project := w.Projects[projectID]
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

// ProjectsInOrder lists projects in creation order (ascending ID counter)
func (w *Workspace) ProjectsInOrder() []*Project {
	out := make([]*Project, 0, len(w.Projects))
	for _, project := range w.Projects {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := projectCounter(out[i].ID), projectCounter(out[j].ID)
		if ci != cj {
			return ci < cj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RenameProject updates a project's name. An unchanged name is a no-op.
func (w *Workspace) RenameProject(projectID, newName string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	project.Name = newName
	return nil
}

// ToggleProjectExpanded flips a project's expanded flag
func (w *Workspace) ToggleProjectExpanded(projectID string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	project.Expanded = !project.Expanded
	return nil
}

// DeleteProject removes a project. Files that are no longer referenced by
// any remaining project return to the sources list.
func (w *Workspace) DeleteProject(projectID string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	names := CollectFiles(project.Structure)
	delete(w.Projects, projectID)
	for _, name := range names {
		w.unhideIfOrphaned(name)
	}
	return nil
}

// FileInAnyProject reports whether any project tree references name
func (w *Workspace) FileInAnyProject(name string) bool {
	for _, project := range w.Projects {
		if ContainsFile(project.Structure, name) {
			return true
		}
	}
	return false
}

// unhideIfOrphaned clears hiddenFromSources once a file has left its last
// project, so it cannot become unreachable
func (w *Workspace) unhideIfOrphaned(name string) {
	record := w.Files[name]
	if record == nil || !record.HiddenFromSources {
		return
	}
	if !w.FileInAnyProject(name) {
		record.HiddenFromSources = false
	}
}

// ---------- Project Tree ----------

// resolveContainer returns the children slice of the folder at path, or
// the root structure for an empty path
func resolveContainer(structure *[]*Node, path Path) (*[]*Node, bool) {
	if len(path) == 0 {
		return structure, true
	}
	node, ok := ResolveNode(structure, path)
	if !ok || node.Type != NodeFolder {
		return nil, false
	}
	return &node.Children, true
}

// AddFolder appends a new empty, expanded folder to the folder at
// parentPath (or the project root for an empty path)
func (w *Workspace) AddFolder(projectID string, parentPath Path, name string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	container, ok := resolveContainer(&project.Structure, parentPath)
	if !ok {
		return ErrInvalidPath
	}
	*container = append(*container, NewFolderNode(name))
	return nil
}

// RenameFolder updates the folder at path. An unchanged name is a no-op.
func (w *Workspace) RenameFolder(projectID string, path Path, newName string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	node, ok := ResolveNode(&project.Structure, path)
	if !ok || node.Type != NodeFolder {
		return ErrInvalidPath
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	node.Name = newName
	return nil
}

// ToggleFolderExpanded flips the expanded flag of the folder at path
func (w *Workspace) ToggleFolderExpanded(projectID string, path Path) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	node, ok := ResolveNode(&project.Structure, path)
	if !ok || node.Type != NodeFolder {
		return ErrInvalidPath
	}
	node.Expanded = !node.Expanded
	return nil
}

// DeleteFolder removes the folder at path, splicing its direct file
// children into the parent at the same position. Nested sub-folders and
// everything inside them are discarded with the folder.
func (w *Workspace) DeleteFolder(projectID string, path Path) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	parent, ok := ResolveParent(&project.Structure, path)
	if !ok {
		return ErrInvalidPath
	}
	idx := path.Leaf()
	if idx < 0 || idx >= len(*parent) {
		return ErrInvalidPath
	}
	node := (*parent)[idx]

	var rescued []*Node
	discarded := []string{}
	if node.Type == NodeFolder {
		for _, child := range node.Children {
			if child.Type == NodeFile {
				rescued = append(rescued, child)
			} else {
				discarded = append(discarded, CollectFiles(child.Children)...)
			}
		}
	}

	replaced := make([]*Node, 0, len(*parent)-1+len(rescued))
	replaced = append(replaced, (*parent)[:idx]...)
	replaced = append(replaced, rescued...)
	replaced = append(replaced, (*parent)[idx+1:]...)
	*parent = replaced

	// Files that lived only inside discarded sub-folders must not stay
	// hidden from sources.
	for _, name := range discarded {
		w.unhideIfOrphaned(name)
	}
	return nil
}

// InsertFile places a reference to fileName into the container at
// parentPath at the given index (appending when the index is out of
// range). The file must exist in the registry and must not already be
// anywhere in this project's tree.
func (w *Workspace) InsertFile(projectID string, parentPath Path, index int, fileName string) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	if w.Files[fileName] == nil {
		return ErrUnknownFile
	}
	if ContainsFile(project.Structure, fileName) {
		return ErrDuplicateFile
	}
	container, ok := resolveContainer(&project.Structure, parentPath)
	if !ok {
		return ErrInvalidPath
	}
	insertNode(container, index, NewFileNode(fileName))
	return nil
}

// RemoveFile removes the file node at path. If the file is then absent
// from every project, it returns to the sources list.
func (w *Workspace) RemoveFile(projectID string, path Path) error {
	project, err := w.Project(projectID)
	if err != nil {
		return err
	}
	parent, ok := ResolveParent(&project.Structure, path)
	if !ok {
		return ErrInvalidPath
	}
	idx := path.Leaf()
	if idx < 0 || idx >= len(*parent) {
		return ErrInvalidPath
	}
	node := (*parent)[idx]
	if node.Type != NodeFile {
		return ErrInvalidPath
	}
	*parent = append((*parent)[:idx], (*parent)[idx+1:]...)
	w.unhideIfOrphaned(node.Name)
	return nil
}

// MoveFile relocates the file node at fromPath to the container at
// toParentPath of the destination project, inserting at toIndex. Dropping
// a node adjacent to itself in the same container is a no-op; when the
// source precedes the destination in the same container, the destination
// index shifts down by one after removal.
func (w *Workspace) MoveFile(fromProjectID string, fromPath Path, toProjectID string, toParentPath Path, toIndex int) error {
	source, err := w.Project(fromProjectID)
	if err != nil {
		return err
	}
	target, err := w.Project(toProjectID)
	if err != nil {
		return err
	}
	sourceParent, ok := ResolveParent(&source.Structure, fromPath)
	if !ok {
		return ErrInvalidPath
	}
	sourceIndex := fromPath.Leaf()
	if sourceIndex < 0 || sourceIndex >= len(*sourceParent) {
		return ErrInvalidPath
	}
	node := (*sourceParent)[sourceIndex]
	if node.Type != NodeFile {
		return ErrInvalidPath
	}
	targetParent, ok := resolveContainer(&target.Structure, toParentPath)
	if !ok {
		return ErrInvalidPath
	}

	if fromProjectID == toProjectID {
		sameParent := fromPath.Parent().Equal(toParentPath)
		if sameParent && (sourceIndex == toIndex || sourceIndex == toIndex-1) {
			return nil
		}
		*sourceParent = append((*sourceParent)[:sourceIndex], (*sourceParent)[sourceIndex+1:]...)
		finalIndex := toIndex
		if sameParent && sourceIndex < toIndex {
			finalIndex--
		}
		insertNode(targetParent, finalIndex, node)
		return nil
	}

	if ContainsFile(target.Structure, node.Name) {
		return ErrDuplicateFile
	}
	*sourceParent = append((*sourceParent)[:sourceIndex], (*sourceParent)[sourceIndex+1:]...)
	insertNode(targetParent, toIndex, NewFileNode(node.Name))
	return nil
}

// insertNode splices node into container at index, appending when the
// index is not a valid position
func insertNode(container *[]*Node, index int, node *Node) {
	if index < 0 || index > len(*container) {
		*container = append(*container, node)
		return
	}
	out := make([]*Node, 0, len(*container)+1)
	out = append(out, (*container)[:index]...)
	out = append(out, node)
	out = append(out, (*container)[index:]...)
	*container = out
}
