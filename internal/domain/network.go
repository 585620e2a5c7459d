package domain

// Vertex is one component of a host network graph.
// Connectivity is bidirectional; Neighbors returns adjacent vertices in the
// host's enumeration order, which must be stable for identical input.
type Vertex interface {
	Key() string
	Label() string
	Neighbors() []Vertex
}

// Network is one distribution system in the host model
type Network interface {
	ID() string
	Name() string
	Discipline() Discipline
	// Root returns the base equipment, or nil when the network has none
	Root() Vertex
	// Size returns the number of member elements
	Size() int
}

// Model is a building document holding networks
type Model interface {
	Title() string
	Networks() []Network
}

// Predicate decides whether a network is exported
type Predicate func(Network) bool

// NetworkMeta carries the network metadata rendered alongside a traversal tree
type NetworkMeta struct {
	ID         string
	Title      string
	Discipline Discipline
}

// MetaOf extracts the render metadata of a network
func MetaOf(n Network) NetworkMeta {
	return NetworkMeta{
		ID:         n.ID(),
		Title:      n.Name(),
		Discipline: n.Discipline(),
	}
}

// ExportOptions are the three switches that select renderers and storage targets
type ExportOptions struct {
	// StoreUniqueIDs records visited element ids into the discipline registries
	StoreUniqueIDs bool
	// BottomUp renders JSON from terminal devices back to the root equipment
	BottomUp bool
	// ProjectWide stores the whole summary document once instead of one JSON value per network
	ProjectWide bool
}
