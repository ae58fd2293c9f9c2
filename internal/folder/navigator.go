package folder

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Row is one visible line of the folder navigator. The root row has an empty
// path and depth 0.
type Row struct {
	Node        *Node
	Depth       int
	Expanded    bool
	HasChildren bool
	Active      bool
}

// Navigator holds presentation state for a Tree: which folders are expanded,
// the cursor, the active filter path and an optional fuzzy jump query.
type Navigator struct {
	tree     *Tree
	expanded map[string]bool
	cursor   int
	active   string
	jump     string
}

// NewNavigator returns a navigator with every folder collapsed.
func NewNavigator(tree *Tree) *Navigator {
	if tree == nil {
		tree = Build(nil)
	}
	return &Navigator{tree: tree, expanded: make(map[string]bool)}
}

// Tree returns the indexed tree.
func (n *Navigator) Tree() *Tree {
	return n.tree
}

// SetTree swaps in a rebuilt tree, dropping expansion for folders that no
// longer exist.
func (n *Navigator) SetTree(tree *Tree) {
	if tree == nil {
		tree = Build(nil)
	}
	n.tree = tree
	for path := range n.expanded {
		if !tree.Has(path) {
			delete(n.expanded, path)
		}
	}
	if !tree.Has(n.active) {
		n.active = ""
	}
	n.clampCursor()
}

// Rows flattens the tree for display. With a jump query the rows are the
// matching folders ranked by match distance.
func (n *Navigator) Rows() []Row {
	if n.jump != "" {
		return n.jumpRows()
	}
	root := n.tree.Root
	rows := []Row{{Node: root, Expanded: true, HasChildren: len(root.Children) > 0, Active: n.active == ""}}
	var visit func(node *Node, depth int)
	visit = func(node *Node, depth int) {
		for _, child := range node.SortedChildren() {
			expanded := n.expanded[child.Path]
			rows = append(rows, Row{
				Node:        child,
				Depth:       depth,
				Expanded:    expanded,
				HasChildren: len(child.Children) > 0,
				Active:      child.Path == n.active,
			})
			if expanded {
				visit(child, depth+1)
			}
		}
	}
	visit(root, 1)
	return rows
}

func (n *Navigator) jumpRows() []Row {
	var paths []string
	n.tree.Walk(func(node *Node, _ int) { paths = append(paths, node.Path) })
	ranks := fuzzy.RankFindNormalizedFold(n.jump, paths)
	sort.Stable(ranks)
	rows := make([]Row, 0, len(ranks))
	for _, rank := range ranks {
		node, _ := n.tree.Lookup(rank.Target)
		rows = append(rows, Row{
			Node:        node,
			Depth:       1,
			Expanded:    n.expanded[node.Path],
			HasChildren: len(node.Children) > 0,
			Active:      node.Path == n.active,
		})
	}
	return rows
}

// SetJump filters the rows to folders fuzzily matching query.
func (n *Navigator) SetJump(query string) {
	n.jump = strings.TrimSpace(query)
	n.cursor = 0
}

// Jump returns the current jump query.
func (n *Navigator) Jump() string {
	return n.jump
}

// Cursor returns the selected row index.
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Move shifts the cursor by delta, clamped to the rows.
func (n *Navigator) Move(delta int) {
	n.cursor += delta
	n.clampCursor()
}

// MoveTo places the cursor on the row with path.
func (n *Navigator) MoveTo(path string) bool {
	for i, row := range n.Rows() {
		if row.Node.Path == path {
			n.cursor = i
			return true
		}
	}
	return false
}

// Current returns the row under the cursor.
func (n *Navigator) Current() (Row, bool) {
	rows := n.Rows()
	if n.cursor < 0 || n.cursor >= len(rows) {
		return Row{}, false
	}
	return rows[n.cursor], true
}

// Toggle flips expansion of the folder under the cursor. The root row cannot
// be collapsed.
func (n *Navigator) Toggle() (path string, expanded bool, ok bool) {
	row, ok := n.Current()
	if !ok || row.Node.Path == "" || !row.HasChildren {
		return "", false, false
	}
	path = row.Node.Path
	if n.expanded[path] {
		delete(n.expanded, path)
	} else {
		n.expanded[path] = true
	}
	n.clampCursor()
	return path, n.expanded[path], true
}

// Expand opens the folder under the cursor, or steps into its first child
// when it is already open.
func (n *Navigator) Expand() {
	row, ok := n.Current()
	if !ok || !row.HasChildren {
		return
	}
	if row.Node.Path != "" && !n.expanded[row.Node.Path] {
		n.expanded[row.Node.Path] = true
		return
	}
	if n.jump == "" {
		n.Move(1)
	}
}

// Collapse closes the folder under the cursor, or moves to its parent.
func (n *Navigator) Collapse() {
	row, ok := n.Current()
	if !ok || row.Node.Path == "" {
		return
	}
	if n.expanded[row.Node.Path] {
		delete(n.expanded, row.Node.Path)
		return
	}
	parent := ""
	if idx := strings.LastIndex(row.Node.Path, "/"); idx >= 0 {
		parent = row.Node.Path[:idx]
	}
	if n.jump == "" {
		n.MoveTo(parent)
	}
}

// Expanded reports whether path is expanded.
func (n *Navigator) Expanded(path string) bool {
	return n.expanded[path]
}

// Reveal expands every ancestor of path so it appears in Rows.
func (n *Navigator) Reveal(path string) {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if n.tree.Has(prefix) {
			n.expanded[prefix] = true
		}
	}
}

// Select returns the folder filter for the row under the cursor. Selecting
// the active folder again, or the root row, clears the filter.
func (n *Navigator) Select() (string, bool) {
	row, ok := n.Current()
	if !ok {
		return "", false
	}
	path := row.Node.Path
	if path == n.active {
		path = ""
	}
	n.active = path
	return path, true
}

// SetActive records the folder currently applied as a filter.
func (n *Navigator) SetActive(path string) {
	n.active = path
}

// Active returns the folder currently applied as a filter.
func (n *Navigator) Active() string {
	return n.active
}

func (n *Navigator) clampCursor() {
	rows := len(n.Rows())
	if n.cursor >= rows {
		n.cursor = rows - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
}
