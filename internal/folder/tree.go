// Package folder indexes item directories into a prefix tree with rollup
// counts and tracks how that tree is presented.
package folder

import (
	"sort"
	"strings"

	"github.com/atomicstack/assetgrid/internal/catalog"
)

// Node is one folder. Count is the number of items whose directory passes
// through this node, excluding each item's own leaf folder.
type Node struct {
	Name     string           `json:"name" yaml:"name"`
	Path     string           `json:"path" yaml:"path"`
	Count    int              `json:"count" yaml:"count"`
	Children map[string]*Node `json:"-" yaml:"-"`
}

// SortedChildren returns the children in case-insensitive name order.
func (n *Node) SortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Tree is an immutable folder index built from one catalog load.
type Tree struct {
	Root  *Node
	index map[string]*Node
}

// Build indexes every item whose directory has at least two segments.
func Build(items []*catalog.Item) *Tree {
	root := &Node{Children: make(map[string]*Node)}
	index := map[string]*Node{"": root}
	for _, it := range items {
		if it == nil {
			continue
		}
		segments := strings.Split(it.Dir(), "/")
		if len(segments) < 2 {
			continue
		}
		root.Count++
		node := root
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node.Children[seg]
			if !ok {
				path := seg
				if node.Path != "" {
					path = node.Path + "/" + seg
				}
				child = &Node{Name: seg, Path: path, Children: make(map[string]*Node)}
				node.Children[seg] = child
				index[path] = child
			}
			child.Count++
			node = child
		}
	}
	return &Tree{Root: root, index: index}
}

// Has reports whether path names a folder node. The empty path is the root.
func (t *Tree) Has(path string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[path]
	return ok
}

// Lookup returns the node for path.
func (t *Tree) Lookup(path string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.index[path]
	return n, ok
}

// Len returns the number of folders excluding the root.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index) - 1
}

// Walk visits every folder depth first in display order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	if t == nil {
		return
	}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		for _, child := range n.SortedChildren() {
			fn(child, depth)
			visit(child, depth+1)
		}
	}
	visit(t.Root, 0)
}

// Outline is the YAML friendly form of a node and its children.
type Outline struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
	Count    int       `json:"count" yaml:"count"`
	Children []Outline `json:"children,omitempty" yaml:"children,omitempty"`
}

// Outline converts the tree into nested, ordered values.
func (t *Tree) Outline() Outline {
	var convert func(n *Node) Outline
	convert = func(n *Node) Outline {
		o := Outline{Name: n.Name, Path: n.Path, Count: n.Count}
		for _, child := range n.SortedChildren() {
			o.Children = append(o.Children, convert(child))
		}
		return o
	}
	if t == nil {
		return Outline{}
	}
	return convert(t.Root)
}
