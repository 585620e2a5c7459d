package domain

import "fmt"

// Component is an in-memory Vertex backed by a ComponentGraph
type Component struct {
	key       string
	label     string
	neighbors []*Component
}

// Key returns the component's stable id
func (c *Component) Key() string { return c.key }

// Label returns the component's display name
func (c *Component) Label() string { return c.label }

// Neighbors returns adjacent components in connection order
func (c *Component) Neighbors() []Vertex {
	out := make([]Vertex, len(c.neighbors))
	for i, n := range c.neighbors {
		out[i] = n
	}
	return out
}

// Degree returns the number of connections of the component
func (c *Component) Degree() int {
	return len(c.neighbors)
}

// ComponentGraph is an undirected connectivity graph with insertion-ordered adjacency
type ComponentGraph struct {
	components map[string]*Component
	order      []string
	edges      map[[2]string]bool
}

// NewComponentGraph creates an empty graph
func NewComponentGraph() *ComponentGraph {
	return &ComponentGraph{
		components: make(map[string]*Component),
		edges:      make(map[[2]string]bool),
	}
}

// AddComponent adds a component, or returns the existing one with the same key
func (g *ComponentGraph) AddComponent(key, label string) *Component {
	if c, ok := g.components[key]; ok {
		return c
	}
	c := &Component{key: key, label: label}
	g.components[key] = c
	g.order = append(g.order, key)
	return c
}

// Connect links two components in both directions.
// A repeated connection between the same pair is ignored.
func (g *ComponentGraph) Connect(fromKey, toKey string) error {
	from, ok := g.components[fromKey]
	if !ok {
		return fmt.Errorf("component %s not found", fromKey)
	}
	to, ok := g.components[toKey]
	if !ok {
		return fmt.Errorf("component %s not found", toKey)
	}

	pair := [2]string{fromKey, toKey}
	if fromKey > toKey {
		pair = [2]string{toKey, fromKey}
	}
	if g.edges[pair] {
		return nil
	}
	g.edges[pair] = true

	from.neighbors = append(from.neighbors, to)
	if from != to {
		to.neighbors = append(to.neighbors, from)
	}
	return nil
}

// Component returns a component by key, or nil
func (g *ComponentGraph) Component(key string) *Component {
	return g.components[key]
}

// Len returns the number of components
func (g *ComponentGraph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of distinct connections
func (g *ComponentGraph) EdgeCount() int {
	return len(g.edges)
}

// Keys returns component keys in insertion order
func (g *ComponentGraph) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}
