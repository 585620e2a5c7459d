// Package aggregate merges per-network JSON trees into the discipline summary.
//
// A Collector is created per export run and holds one JSON bucket and one
// identifier bucket per discipline. Buckets are ordered with the historical
// rule of comparing each JSON string from its first comma onward, which in
// practice orders networks by the "name" field that follows the id.
package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mepgraphs/internal/domain"

	"github.com/cespare/xxhash/v2"
)

// Summary skeleton ids and labels
const (
	SummaryID    = 1
	SummaryTitle = "MEP Systems"
)

var disciplineNodes = [domain.DisciplineCount]struct {
	id    int
	title string
}{
	domain.DisciplineMechanical: {2, "Mechanical System"},
	domain.DisciplineElectrical: {3, "Electrical System"},
	domain.DisciplinePiping:     {4, "Piping System"},
}

// Collector accumulates per-network output for one export run
type Collector struct {
	graphs [domain.DisciplineCount][]string
	ids    [domain.DisciplineCount][]string
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Add records one network's JSON tree under its discipline
func (c *Collector) Add(d domain.Discipline, graph string) error {
	if !d.Valid() {
		return fmt.Errorf("cannot collect graph for discipline %s", d)
	}
	c.graphs[d] = append(c.graphs[d], graph)
	return nil
}

// AddIdentifiers records one network's node ids under its discipline
func (c *Collector) AddIdentifiers(d domain.Discipline, ids []string) error {
	if !d.Valid() {
		return fmt.Errorf("cannot collect identifiers for discipline %s", d)
	}
	c.ids[d] = append(c.ids[d], ids...)
	return nil
}

// Graphs returns the collected JSON trees of a discipline in collection order
func (c *Collector) Graphs(d domain.Discipline) []string {
	if !d.Valid() {
		return nil
	}
	out := make([]string, len(c.graphs[d]))
	copy(out, c.graphs[d])
	return out
}

// Len returns the total number of collected graphs
func (c *Collector) Len() int {
	n := 0
	for _, b := range c.graphs {
		n += len(b)
	}
	return n
}

// SortKey returns the part of a JSON string used for ordering:
// everything from the first comma, or the whole string without one.
func SortKey(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		return s[i:]
	}
	return s
}

// SortBucket orders JSON strings by SortKey using ordinal comparison.
// Equal keys keep their collection order.
func SortBucket(graphs []string) {
	sort.SliceStable(graphs, func(i, j int) bool {
		return SortKey(graphs[i]) < SortKey(graphs[j])
	})
}

type summaryNode struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Children []json.RawMessage `json:"children"`
}

// Summary composes the fixed four-node discipline document with sorted buckets
func (c *Collector) Summary() (string, error) {
	root := summaryNode{ID: SummaryID, Name: SummaryTitle, Children: []json.RawMessage{}}

	for _, d := range domain.Disciplines {
		graphs := c.Graphs(d)
		SortBucket(graphs)

		node := summaryNode{
			ID:       disciplineNodes[d].id,
			Name:     disciplineNodes[d].title,
			Children: make([]json.RawMessage, 0, len(graphs)),
		}
		for _, g := range graphs {
			node.Children = append(node.Children, json.RawMessage(g))
		}

		raw, err := marshal(node)
		if err != nil {
			return "", fmt.Errorf("failed to compose %s summary: %w", d, err)
		}
		root.Children = append(root.Children, raw)
	}

	raw, err := marshal(root)
	if err != nil {
		return "", fmt.Errorf("failed to compose summary: %w", err)
	}
	return string(raw), nil
}

// Registry renders a discipline's identifiers as a JSON array literal
func (c *Collector) Registry(d domain.Discipline) string {
	var sb strings.Builder
	sb.WriteString("[")
	if d.Valid() {
		for _, id := range c.ids[d] {
			sb.WriteString(quote(id))
			sb.WriteString(",")
		}
	}

	out := strings.TrimSuffix(sb.String(), ",")
	return out + "]"
}

// RegistryDocument renders all registries as one JSON object in discipline order
func (c *Collector) RegistryDocument() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, d := range domain.Disciplines {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(quote(d.String()))
		sb.WriteString(":")
		sb.WriteString(c.Registry(d))
	}
	sb.WriteString("}")
	return sb.String()
}

// DocumentID derives a stable numeric id from a document title
func DocumentID(title string) string {
	return strconv.FormatUint(xxhash.Sum64String(title), 10)
}

// WrapDocument wraps the summary in a document-level node for storage
func WrapDocument(title, summary string) (string, error) {
	doc := struct {
		ID       string            `json:"id"`
		Name     string            `json:"name"`
		Children []json.RawMessage `json:"children"`
	}{
		ID:       DocumentID(title),
		Name:     title,
		Children: []json.RawMessage{json.RawMessage(summary)},
	}

	raw, err := marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to wrap summary: %w", err)
	}
	return string(raw), nil
}
