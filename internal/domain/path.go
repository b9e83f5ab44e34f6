package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Path locates a node inside a project structure as an ordered sequence of
// child indices, descending into folder children at each hop. An empty
// path addresses the root structure itself.
type Path []int

// ParsePath parses a dotted index path such as "0.2.1". An empty string
// yields the empty (root) path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid path element %q: %w", part, ErrInvalidPath)
		}
		path = append(path, idx)
	}
	return path, nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// Clone copies the path
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Parent returns the path without its final element
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1].Clone()
}

// Leaf returns the final index, or -1 for the empty path
func (p Path) Leaf() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Equal reports element-wise equality
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ResolveParent walks all but the last path element and returns a pointer
// to the children slice that directly contains the addressed node, or the
// root structure for a single-element or empty path. Every intermediate
// node must be a folder. The lookup never mutates the tree.
func ResolveParent(structure *[]*Node, path Path) (*[]*Node, bool) {
	current := structure
	for i := 0; i < len(path)-1; i++ {
		idx := path[i]
		if idx < 0 || idx >= len(*current) {
			return nil, false
		}
		node := (*current)[idx]
		if node.Type != NodeFolder {
			return nil, false
		}
		current = &node.Children
	}
	return current, true
}

// ResolveNode returns the node addressed by path, walking folders the same
// way ResolveParent does
func ResolveNode(structure *[]*Node, path Path) (*Node, bool) {
	if len(path) == 0 {
		return nil, false
	}
	parent, ok := ResolveParent(structure, path)
	if !ok {
		return nil, false
	}
	idx := path.Leaf()
	if idx < 0 || idx >= len(*parent) {
		return nil, false
	}
	return (*parent)[idx], true
}
