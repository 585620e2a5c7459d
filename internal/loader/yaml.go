// Package loader reads building models from YAML or JSON files.
//
// The file lists the document's networks. Each network names its base
// equipment and its member elements; an element's connects list links it to
// other members of the same network. Connections are bidirectional, and the
// adjacency of every element follows the order connections first appear in
// the file.
package loader

import (
	"fmt"
	"os"

	"mepgraphs/internal/domain"

	"gopkg.in/yaml.v3"
)

// ModelYAML represents the model file structure
type ModelYAML struct {
	Title    string        `yaml:"title"`
	Networks []NetworkYAML `yaml:"networks"`
}

// NetworkYAML represents one distribution system
type NetworkYAML struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	Discipline      string        `yaml:"discipline"`
	WellConnected   bool          `yaml:"well_connected,omitempty"`
	MultipleNetwork bool          `yaml:"multiple_network,omitempty"`
	BaseEquipment   string        `yaml:"base_equipment,omitempty"`
	Elements        []ElementYAML `yaml:"elements"`
}

// ElementYAML represents one network member
type ElementYAML struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Connects []string `yaml:"connects,omitempty"`
}

// LoadYAML loads a model from a YAML or JSON file
func LoadYAML(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses a model from YAML bytes (JSON is accepted as a YAML subset)
func ParseYAML(data []byte) (*domain.Document, error) {
	var yamlData ModelYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToDocument(&yamlData)
}

func convertYAMLToDocument(y *ModelYAML) (*domain.Document, error) {
	doc := &domain.Document{
		DocTitle: y.Title,
		Systems:  make([]*domain.System, 0, len(y.Networks)),
	}

	seen := make(map[string]bool)
	for i, n := range y.Networks {
		if n.ID == "" {
			return nil, fmt.Errorf("network %d has no id", i)
		}
		if err := domain.ValidateNetworkID(n.ID); err != nil {
			return nil, fmt.Errorf("network %d: %w", i, err)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("duplicate network id %s", n.ID)
		}
		seen[n.ID] = true

		system, err := convertNetwork(n)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", n.ID, err)
		}
		doc.Systems = append(doc.Systems, system)
	}

	return doc, nil
}

func convertNetwork(n NetworkYAML) (*domain.System, error) {
	system := domain.NewSystem(n.ID, n.Name, domain.ParseDiscipline(n.Discipline))
	system.WellConnected = n.WellConnected
	system.MultipleNetwork = n.MultipleNetwork
	system.BaseEquipment = n.BaseEquipment

	// Register all members first so connects may reference later elements
	for _, e := range n.Elements {
		if e.ID == "" {
			return nil, fmt.Errorf("element without id")
		}
		if system.Graph.Component(e.ID) != nil {
			return nil, fmt.Errorf("duplicate element id %s", e.ID)
		}
		label := e.Name
		if label == "" {
			label = e.ID
		}
		system.Graph.AddComponent(e.ID, label)
	}

	for _, e := range n.Elements {
		for _, target := range e.Connects {
			if err := system.Graph.Connect(e.ID, target); err != nil {
				return nil, fmt.Errorf("element %s: %w", e.ID, err)
			}
		}
	}

	return system, nil
}

// DefaultPredicate selects networks worth exporting: more than one element,
// not the "unassigned" placeholder, and a mechanical or piping system that is
// well connected or an electrical system spanning multiple networks.
func DefaultPredicate(n domain.Network) bool {
	if n.Size() <= 1 || n.Name() == "unassigned" {
		return false
	}

	s, ok := n.(*domain.System)
	if !ok {
		return n.Discipline().Valid()
	}

	switch s.Discipline() {
	case domain.DisciplineMechanical, domain.DisciplinePiping:
		return s.WellConnected
	case domain.DisciplineElectrical:
		return s.MultipleNetwork
	default:
		return false
	}
}
