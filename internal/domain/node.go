package domain

import "encoding/json"

// NodeType distinguishes the two kinds of tree nodes in a project structure
type NodeType string

const (
	NodeFile   NodeType = "file"
	NodeFolder NodeType = "folder"
)

// Node is one entry in a project's structure tree. A file node is a
// reference to a FileRecord by name and carries no content of its own;
// a folder node owns an ordered list of children.
type Node struct {
	Type     NodeType
	Name     string
	Expanded bool    // folders only
	Children []*Node // folders only
}

// NewFileNode creates a file reference node
func NewFileNode(name string) *Node {
	return &Node{Type: NodeFile, Name: name}
}

// NewFolderNode creates an empty, expanded folder node
func NewFolderNode(name string) *Node {
	return &Node{Type: NodeFolder, Name: name, Expanded: true, Children: []*Node{}}
}

// nodeJSON is the persisted shape of a Node. Expanded is a pointer so an
// absent field defaults to true on folders.
type nodeJSON struct {
	Type     NodeType `json:"type"`
	Name     string   `json:"name"`
	Expanded *bool    `json:"expanded,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// MarshalJSON emits the wire shape: file nodes carry only type and name,
// folder nodes always carry expanded and children.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{Type: n.Type, Name: n.Name}
	if n.Type == NodeFolder {
		expanded := n.Expanded
		out.Expanded = &expanded
		out.Children = n.Children
		if out.Children == nil {
			out.Children = []*Node{}
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the wire shape, defaulting folder expanded to true
// when the field is absent.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Type = raw.Type
	n.Name = raw.Name
	if raw.Type == NodeFolder {
		n.Expanded = raw.Expanded == nil || *raw.Expanded
		n.Children = raw.Children
		if n.Children == nil {
			n.Children = []*Node{}
		}
	}
	return nil
}

// Clone deep-copies the node and its subtree
func (n *Node) Clone() *Node {
	out := &Node{Type: n.Type, Name: n.Name, Expanded: n.Expanded}
	if n.Type == NodeFolder {
		out.Children = CloneStructure(n.Children)
	}
	return out
}

// CloneStructure deep-copies a structure so callers never hold aliases
// into a live tree
func CloneStructure(structure []*Node) []*Node {
	out := make([]*Node, 0, len(structure))
	for _, n := range structure {
		if n == nil {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}

// StructureFromNames builds a flat file-only structure, used when
// migrating legacy projects that stored a plain file list
func StructureFromNames(names []string) []*Node {
	out := make([]*Node, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		out = append(out, NewFileNode(name))
	}
	return out
}

// CountFiles counts file leaves across all nested folders
func CountFiles(structure []*Node) int {
	count := 0
	for _, n := range structure {
		switch n.Type {
		case NodeFile:
			count++
		case NodeFolder:
			count += CountFiles(n.Children)
		}
	}
	return count
}

// ContainsFile reports whether the structure references fileName anywhere,
// including inside nested folders
func ContainsFile(structure []*Node, fileName string) bool {
	for _, n := range structure {
		switch n.Type {
		case NodeFile:
			if n.Name == fileName {
				return true
			}
		case NodeFolder:
			if ContainsFile(n.Children, fileName) {
				return true
			}
		}
	}
	return false
}

// CollectFiles returns every file name in the structure in traversal order.
// Names may repeat if the same file appears under several folders.
func CollectFiles(structure []*Node) []string {
	var out []string
	for _, n := range structure {
		switch n.Type {
		case NodeFile:
			out = append(out, n.Name)
		case NodeFolder:
			out = append(out, CollectFiles(n.Children)...)
		}
	}
	return out
}
