package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"mepgraphs/internal/domain"

	"gopkg.in/yaml.v3"
)

// treeDocument is the inspection dump of a traversal tree
type treeDocument struct {
	Network    string      `json:"network" yaml:"network"`
	Name       string      `json:"name" yaml:"name"`
	Discipline string      `json:"discipline" yaml:"discipline"`
	Tree       treeDocNode `json:"tree" yaml:"tree"`
}

type treeDocNode struct {
	ID        string        `json:"id" yaml:"id"`
	Label     string        `json:"label" yaml:"label"`
	Reference bool          `json:"reference,omitempty" yaml:"reference,omitempty"`
	Children  []treeDocNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func newTreeDocument(meta domain.NetworkMeta, tree *domain.TreeNode) (*treeDocument, error) {
	if err := checkTree(tree); err != nil {
		return nil, err
	}
	return &treeDocument{
		Network:    meta.ID,
		Name:       meta.Title,
		Discipline: meta.Discipline.String(),
		Tree:       toTreeDocNode(tree),
	}, nil
}

func toTreeDocNode(n *domain.TreeNode) treeDocNode {
	d := treeDocNode{ID: n.ID(), Label: n.Label(), Reference: n.IsReference()}
	for _, child := range n.Children() {
		d.Children = append(d.Children, toTreeDocNode(child))
	}
	return d
}

// TreeJSONCodec dumps traversal trees as indented JSON
type TreeJSONCodec struct{}

// NewTreeJSONCodec creates a new tree JSON codec
func NewTreeJSONCodec() *TreeJSONCodec {
	return &TreeJSONCodec{}
}

// Format returns the codec format identifier
func (c *TreeJSONCodec) Format() string {
	return "json"
}

// Extension returns the file extension for exported documents
func (c *TreeJSONCodec) Extension() string {
	return ".tree.json"
}

// Export writes the tree dump as JSON
func (c *TreeJSONCodec) Export(meta domain.NetworkMeta, tree *domain.TreeNode, w io.Writer) error {
	doc, err := newTreeDocument(meta, tree)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// TreeYAMLCodec dumps traversal trees as YAML
type TreeYAMLCodec struct{}

// NewTreeYAMLCodec creates a new tree YAML codec
func NewTreeYAMLCodec() *TreeYAMLCodec {
	return &TreeYAMLCodec{}
}

// Format returns the codec format identifier
func (c *TreeYAMLCodec) Format() string {
	return "yaml"
}

// Extension returns the file extension for exported documents
func (c *TreeYAMLCodec) Extension() string {
	return ".tree.yaml"
}

// Export writes the tree dump as YAML
func (c *TreeYAMLCodec) Export(meta domain.NetworkMeta, tree *domain.TreeNode, w io.Writer) error {
	doc, err := newTreeDocument(meta, tree)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
