package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"mepgraphs/internal/domain"
)

// jsonNode is the wire shape shared by both JSON orientations.
// Children is never nil so leaves always render "children":[].
type jsonNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Children []*jsonNode `json:"children"`
}

func newJSONNode(id, name string, children ...*jsonNode) *jsonNode {
	if children == nil {
		children = []*jsonNode{}
	}
	return &jsonNode{ID: id, Name: name, Children: children}
}

// TopDown renders the tree from the root equipment out to terminal devices
func TopDown(tree *domain.TreeNode) (string, error) {
	if err := checkTree(tree); err != nil {
		return "", err
	}
	return marshalCompact(topDownNode(tree))
}

func topDownNode(n *domain.TreeNode) *jsonNode {
	out := newJSONNode(n.ID(), n.Label())
	for _, child := range n.Children() {
		out.Children = append(out.Children, topDownNode(child))
	}
	return out
}

// BottomUp renders one chain per leaf, each leaf nesting its ancestors up to
// the root. The chains are wrapped in a network object so the result starts
// with the network id and title.
func BottomUp(meta domain.NetworkMeta, tree *domain.TreeNode) (string, error) {
	if err := checkTree(tree); err != nil {
		return "", err
	}

	id, name := meta.ID, meta.Title
	if id == "" {
		id, name = tree.ID(), tree.Label()
	}

	return marshalCompact(newJSONNode(id, name, leafChains(tree)...))
}

// leafChains returns one inverted chain per leaf in depth-first leaf order
func leafChains(tree *domain.TreeNode) []*jsonNode {
	type entry struct {
		node  *domain.TreeNode
		depth int
	}

	var (
		chains []*jsonNode
		path   []*domain.TreeNode
	)

	stack := []entry{{node: tree}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path = append(path[:e.depth], e.node)

		children := e.node.Children()
		if len(children) == 0 {
			chains = append(chains, invertPath(path))
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{node: children[i], depth: e.depth + 1})
		}
	}

	return chains
}

// invertPath nests path[0] (the root) innermost and the leaf outermost
func invertPath(path []*domain.TreeNode) *jsonNode {
	cur := newJSONNode(path[0].ID(), path[0].Label())
	for i := 1; i < len(path); i++ {
		cur = newJSONNode(path[i].ID(), path[i].Label(), cur)
	}
	return cur
}

// CollectIdentifiers returns the ids of all real nodes in pre-order
func CollectIdentifiers(tree *domain.TreeNode) ([]string, error) {
	if err := checkTree(tree); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	tree.Walk(func(n *domain.TreeNode) {
		if n.IsReference() || seen[n.ID()] {
			return
		}
		seen[n.ID()] = true
		ids = append(ids, n.ID())
	})
	return ids, nil
}

func marshalCompact(v any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("%w: failed to encode JSON: %v", domain.ErrSerialization, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
