package codec

import (
	"encoding/xml"
	"fmt"
	"io"

	"mepgraphs/internal/domain"
)

// NestedDocument is the XML rendering of one network's traversal tree
type NestedDocument struct {
	XMLName    xml.Name `xml:"Network"`
	ID         string   `xml:"id,attr"`
	Name       string   `xml:"name,attr"`
	Discipline string   `xml:"discipline,attr"`
	Root       *XMLNode `xml:"Node"`
}

// XMLNode is one traversal tree node in the nested document
type XMLNode struct {
	ID        string     `xml:"id,attr"`
	Text      string     `xml:"text,attr"`
	Reference bool       `xml:"reference,attr,omitempty"`
	Children  []*XMLNode `xml:"Node"`
}

// XMLCodec renders traversal trees as nested XML documents
type XMLCodec struct{}

// NewXMLCodec creates a new XML codec
func NewXMLCodec() *XMLCodec {
	return &XMLCodec{}
}

// Format returns the codec format identifier
func (c *XMLCodec) Format() string {
	return "xml"
}

// Extension returns the file extension for exported documents
func (c *XMLCodec) Extension() string {
	return ".xml"
}

// ToNestedDocument converts a traversal tree into its nested document form
func ToNestedDocument(meta domain.NetworkMeta, tree *domain.TreeNode) (*NestedDocument, error) {
	if err := checkTree(tree); err != nil {
		return nil, err
	}
	return &NestedDocument{
		ID:         meta.ID,
		Name:       meta.Title,
		Discipline: meta.Discipline.String(),
		Root:       toXMLNode(tree),
	}, nil
}

func toXMLNode(n *domain.TreeNode) *XMLNode {
	x := &XMLNode{
		ID:        n.ID(),
		Text:      n.Label(),
		Reference: n.IsReference(),
	}
	for _, child := range n.Children() {
		x.Children = append(x.Children, toXMLNode(child))
	}
	return x
}

// Export writes the nested XML document
func (c *XMLCodec) Export(meta domain.NetworkMeta, tree *domain.TreeNode, w io.Writer) error {
	doc, err := ToNestedDocument(meta, tree)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}

	_, err = io.WriteString(w, "\n")
	return err
}
