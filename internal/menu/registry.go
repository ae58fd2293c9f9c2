package menu

// Node represents a sidebar section definition within the registry.
type Node struct {
	ID          string
	Loader      Loader
	Action      Action
	MultiSelect bool
}

// Registry exposes lookup utilities for section definitions.
type Registry struct {
	order []*Node
	nodes map[string]*Node
}

// BuildRegistry constructs the registry from the loader and handler maps.
func BuildRegistry() *Registry {
	loaders := CategoryLoaders()
	actions := ActionHandlers()
	r := &Registry{nodes: make(map[string]*Node)}
	for _, item := range RootItems() {
		node := &Node{ID: item.ID, Loader: loaders[item.ID], Action: actions[item.ID]}
		r.nodes[item.ID] = node
		r.order = append(r.order, node)
	}
	for _, id := range []string{"type", "category"} {
		if node, ok := r.nodes[id]; ok {
			node.MultiSelect = true
		}
	}
	return r
}

// Sections returns the nodes in display order.
func (r *Registry) Sections() []*Node {
	return r.order
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}
