// Package codec renders traversal trees into exported documents.
//
// Two independent encodings are produced from one tree: a nested XML document
// used for inspection, and JSON trees oriented either from the root equipment
// out to terminal devices (top-down) or from each terminal device back to the
// root (bottom-up). All renderers are pure functions over a read-only tree, so
// every encoding of the same tree references the same node ids.
package codec

import (
	"fmt"
	"io"
	"sort"

	"mepgraphs/internal/domain"
)

// TreeExporter writes a traversal tree and its network metadata in one format
type TreeExporter interface {
	Export(meta domain.NetworkMeta, tree *domain.TreeNode, w io.Writer) error
	Format() string
	Extension() string
}

var exporters = map[string]func() TreeExporter{
	"xml":  func() TreeExporter { return NewXMLCodec() },
	"json": func() TreeExporter { return NewTreeJSONCodec() },
	"yaml": func() TreeExporter { return NewTreeYAMLCodec() },
}

// ForFormat returns the exporter registered for a format name
func ForFormat(format string) (TreeExporter, error) {
	factory, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("unknown tree format %q (supported: %v)", format, Formats())
	}
	return factory(), nil
}

// Formats returns the registered format names, sorted
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkTree(tree *domain.TreeNode) error {
	if tree == nil {
		return fmt.Errorf("%w: empty tree", domain.ErrSerialization)
	}
	if tree.IsReference() {
		return fmt.Errorf("%w: tree root %s is a reference node", domain.ErrSerialization, tree.ID())
	}
	return nil
}
