package domain

// System is an in-memory Network over a ComponentGraph
type System struct {
	SystemID        string
	SystemName      string
	Kind            Discipline
	BaseEquipment   string
	WellConnected   bool
	MultipleNetwork bool
	Graph           *ComponentGraph
}

// NewSystem creates a system with an empty component graph
func NewSystem(id, name string, kind Discipline) *System {
	return &System{
		SystemID:   id,
		SystemName: name,
		Kind:       kind,
		Graph:      NewComponentGraph(),
	}
}

// ID returns the system id
func (s *System) ID() string { return s.SystemID }

// Name returns the system name
func (s *System) Name() string { return s.SystemName }

// Discipline returns the system discipline
func (s *System) Discipline() Discipline { return s.Kind }

// Root returns the base equipment component, or nil when unset or unknown
func (s *System) Root() Vertex {
	if s.Graph == nil || s.BaseEquipment == "" {
		return nil
	}
	c := s.Graph.Component(s.BaseEquipment)
	if c == nil {
		return nil
	}
	return c
}

// Size returns the number of member elements
func (s *System) Size() int {
	if s.Graph == nil {
		return 0
	}
	return s.Graph.Len()
}

// Document is an in-memory Model
type Document struct {
	DocTitle string
	Systems  []*System
}

// Title returns the document title
func (d *Document) Title() string { return d.DocTitle }

// Networks returns the systems in document order
func (d *Document) Networks() []Network {
	out := make([]Network, len(d.Systems))
	for i, s := range d.Systems {
		out[i] = s
	}
	return out
}
