// Package traverse walks host connectivity graphs into traversal trees.
//
// The walk is depth-first from a network's root vertex. Host graphs are
// generally not trees: components are shared between branches and physical
// loops exist. A visited set keyed by vertex identity guarantees that each
// vertex is descended into at most once, and every later encounter is
// recorded as a childless reference node. The edge back to the vertex a walk
// arrived from is not recorded at all.
package traverse

import (
	"fmt"

	"mepgraphs/internal/domain"
)

// Stats summarizes one traversal
type Stats struct {
	Nodes      int // real (descended) nodes
	References int
	MaxDepth   int
}

// Explorer builds traversal trees from root vertices.
// It holds no state between calls.
type Explorer struct{}

// NewExplorer creates a new explorer
func NewExplorer() *Explorer {
	return &Explorer{}
}

// frame is one vertex on the explicit DFS stack
type frame struct {
	vertex    domain.Vertex
	node      *domain.TreeNode
	parentKey string
	hasParent bool
	neighbors []domain.Vertex
	next      int
	depth     int
}

// Traverse walks the graph from root and returns the traversal tree
func (e *Explorer) Traverse(root domain.Vertex) (*domain.TreeNode, error) {
	tree, _, err := e.TraverseStats(root)
	return tree, err
}

// TraverseStats is Traverse that also reports node counts and depth
func (e *Explorer) TraverseStats(root domain.Vertex) (*domain.TreeNode, Stats, error) {
	var stats Stats
	if root == nil {
		return nil, stats, fmt.Errorf("%w: no root vertex", domain.ErrTraversal)
	}

	neighbors := root.Neighbors()
	if len(neighbors) == 0 {
		return nil, stats, fmt.Errorf("%w: root %s has no connected components", domain.ErrTraversal, root.Key())
	}

	visited := map[string]bool{root.Key(): true}
	tree := domain.NewTreeNode(root)
	stats.Nodes = 1

	stack := []*frame{{vertex: root, node: tree, neighbors: neighbors}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next >= len(f.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}

		next := f.neighbors[f.next]
		f.next++
		if next == nil {
			continue
		}

		key := next.Key()
		if f.hasParent && key == f.parentKey {
			continue
		}

		if visited[key] {
			f.node.AddChild(domain.NewReferenceNode(next))
			stats.References++
			continue
		}

		visited[key] = true
		child := domain.NewTreeNode(next)
		f.node.AddChild(child)
		stats.Nodes++
		if f.depth+1 > stats.MaxDepth {
			stats.MaxDepth = f.depth + 1
		}

		stack = append(stack, &frame{
			vertex:    next,
			node:      child,
			parentKey: f.vertex.Key(),
			hasParent: true,
			neighbors: next.Neighbors(),
			depth:     f.depth + 1,
		})
	}

	// Only self loops or empty adjacency entries: nothing reachable
	if stats.Nodes == 1 {
		return nil, Stats{}, fmt.Errorf("%w: root %s reaches no other component", domain.ErrTraversal, root.Key())
	}

	return tree, stats, nil
}
