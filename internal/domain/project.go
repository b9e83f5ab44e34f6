package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectIDPrefix prefixes every generated project identifier
const ProjectIDPrefix = "project_"

// Project is a named container holding one hierarchical tree of file and
// folder references. IDs are generated from a process-wide counter that is
// persisted so they never collide across sessions.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Expanded    bool    `json:"expanded"`
	Structure   []*Node `json:"structure"`
}

// ProjectID renders a counter value as a project identifier
func ProjectID(counter int) string {
	return fmt.Sprintf("%s%d", ProjectIDPrefix, counter)
}

// projectCounter extracts the numeric suffix of a project ID, or -1 when
// the ID was not generated by ProjectID
func projectCounter(id string) int {
	suffix, ok := strings.CutPrefix(id, ProjectIDPrefix)
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return -1
	}
	return n
}
