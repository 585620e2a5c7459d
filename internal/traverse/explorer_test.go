package traverse

import (
	"errors"
	"fmt"
	"testing"

	"mepgraphs/internal/domain"

	"github.com/google/go-cmp/cmp"
)

// shape is a comparable snapshot of a traversal tree
type shape struct {
	ID       string
	Ref      bool
	Children []shape
}

func snapshot(n *domain.TreeNode) shape {
	s := shape{ID: n.ID(), Ref: n.IsReference()}
	for _, c := range n.Children() {
		s.Children = append(s.Children, snapshot(c))
	}
	return s
}

func node(id string, children ...shape) shape {
	return shape{ID: id, Children: children}
}

func ref(id string) shape {
	return shape{ID: id, Ref: true}
}

// buildGraph creates components named after their keys and connects the given pairs in order
func buildGraph(t *testing.T, keys []string, edges [][2]string) *domain.ComponentGraph {
	t.Helper()
	g := domain.NewComponentGraph()
	for _, k := range keys {
		g.AddComponent(k, "Label "+k)
	}
	for _, e := range edges {
		if err := g.Connect(e[0], e[1]); err != nil {
			t.Fatalf("failed to connect %s-%s: %v", e[0], e[1], err)
		}
	}
	return g
}

func TestTraverse(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		edges [][2]string
		want  shape
		refs  int
	}{
		{
			name:  "tree graph has no references",
			keys:  []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}},
			want:  node("a", node("b", node("d")), node("c")),
		},
		{
			name:  "triangle",
			keys:  []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  node("a", node("b", node("c", ref("a"))), ref("c")),
			refs:  2,
		},
		{
			name:  "diamond shares a component between branches",
			keys:  []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			want:  node("a", node("b", node("d", node("c", ref("a")))), ref("c")),
			refs:  2,
		},
		{
			name:  "child order follows adjacency order",
			keys:  []string{"root", "z", "y", "x"},
			edges: [][2]string{{"root", "z"}, {"root", "x"}, {"root", "y"}},
			want:  node("root", node("z"), node("x"), node("y")),
		},
		{
			name:  "self loop becomes a reference",
			keys:  []string{"a", "b"},
			edges: [][2]string{{"a", "a"}, {"a", "b"}},
			want:  node("a", ref("a"), node("b")),
			refs:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.keys, tt.edges)

			tree, stats, err := NewExplorer().TraverseStats(g.Component(tt.keys[0]))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tt.want, snapshot(tree)); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
			if stats.References != tt.refs {
				t.Errorf("expected %d references, got %d", tt.refs, stats.References)
			}
			if stats.Nodes != len(tt.keys) {
				t.Errorf("expected %d real nodes, got %d", len(tt.keys), stats.Nodes)
			}
		})
	}
}

func TestTraverseRealNodesAreUnique(t *testing.T) {
	// Fully connected graph of 6 components: every pair is an edge.
	keys := []string{"0", "1", "2", "3", "4", "5"}
	var edges [][2]string
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			edges = append(edges, [2]string{keys[i], keys[j]})
		}
	}
	g := buildGraph(t, keys, edges)

	tree, err := NewExplorer().Traverse(g.Component("0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	tree.Walk(func(n *domain.TreeNode) {
		if n.IsReference() {
			if !n.IsLeaf() {
				t.Errorf("reference node %s has children", n.ID())
			}
			return
		}
		seen[n.ID()]++
	})

	for _, k := range keys {
		if seen[k] != 1 {
			t.Errorf("component %s descended %d times, want 1", k, seen[k])
		}
	}
}

func TestTraverseFailures(t *testing.T) {
	t.Run("nil root", func(t *testing.T) {
		_, err := NewExplorer().Traverse(nil)
		if !errors.Is(err, domain.ErrTraversal) {
			t.Errorf("expected ErrTraversal, got %v", err)
		}
	})

	t.Run("isolated root", func(t *testing.T) {
		g := buildGraph(t, []string{"a"}, nil)
		tree, err := NewExplorer().Traverse(g.Component("a"))
		if !errors.Is(err, domain.ErrTraversal) {
			t.Errorf("expected ErrTraversal, got %v", err)
		}
		if tree != nil {
			t.Error("expected no tree on failure")
		}
	})

	t.Run("root with only a self loop", func(t *testing.T) {
		g := buildGraph(t, []string{"a"}, [][2]string{{"a", "a"}})
		tree, err := NewExplorer().Traverse(g.Component("a"))
		if !errors.Is(err, domain.ErrTraversal) {
			t.Errorf("expected ErrTraversal, got %v", err)
		}
		if tree != nil {
			t.Error("expected no tree on failure")
		}
	})

	t.Run("root with only empty adjacency entries", func(t *testing.T) {
		root := &sparseVertex{key: "a", neighbors: []domain.Vertex{nil, nil}}
		tree, err := NewExplorer().Traverse(root)
		if !errors.Is(err, domain.ErrTraversal) {
			t.Errorf("expected ErrTraversal, got %v", err)
		}
		if tree != nil {
			t.Error("expected no tree on failure")
		}
	})
}

// sparseVertex is a host vertex whose adjacency may hold nil entries
type sparseVertex struct {
	key       string
	neighbors []domain.Vertex
}

func (v *sparseVertex) Key() string                { return v.key }
func (v *sparseVertex) Label() string              { return v.key }
func (v *sparseVertex) Neighbors() []domain.Vertex { return v.neighbors }

func TestTraverseIsRepeatable(t *testing.T) {
	g := buildGraph(t,
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}, {"a", "e"}, {"e", "d"}},
	)
	explorer := NewExplorer()

	first, err := explorer.Traverse(g.Component("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := explorer.Traverse(g.Component("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A visited set leaking between calls would turn the second tree into references.
	if diff := cmp.Diff(snapshot(first), snapshot(second)); diff != "" {
		t.Errorf("second traversal differs (-first +second):\n%s", diff)
	}
}

func TestTraverseLongChain(t *testing.T) {
	const n = 100000
	g := domain.NewComponentGraph()
	for i := 0; i < n; i++ {
		g.AddComponent(fmt.Sprint(i), "segment")
		if i > 0 {
			if err := g.Connect(fmt.Sprint(i-1), fmt.Sprint(i)); err != nil {
				t.Fatalf("connect: %v", err)
			}
		}
	}

	_, stats, err := NewExplorer().TraverseStats(g.Component("0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Nodes != n {
		t.Errorf("expected %d nodes, got %d", n, stats.Nodes)
	}
	if stats.MaxDepth != n-1 {
		t.Errorf("expected depth %d, got %d", n-1, stats.MaxDepth)
	}
}
