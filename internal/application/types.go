package application

import "readspace/internal/domain"

// Re-export node types for use by adapters
type NodeType = domain.NodeType

const (
	NodeFile   = domain.NodeFile
	NodeFolder = domain.NodeFolder
)

// Re-export domain types for use by adapters
type (
	Node          = domain.Node
	Path          = domain.Path
	Project       = domain.Project
	FileRecord    = domain.FileRecord
	Workspace     = domain.Workspace
	Ledger        = domain.Ledger
	OverallStats  = domain.OverallStats
	ImportSummary = domain.ImportSummary
)

// ParsePath parses a dotted index path such as "0.2.1"
func ParsePath(s string) (domain.Path, error) {
	return domain.ParsePath(s)
}
