package domain

// TreeNode is one vertex of a traversal tree.
// A reference node stands for a vertex already descended into elsewhere in the
// same traversal and never has children. Identity is fixed at construction;
// children can only be appended.
type TreeNode struct {
	id        string
	label     string
	reference bool

	children []*TreeNode
}

// NewTreeNode creates a real node for a vertex
func NewTreeNode(v Vertex) *TreeNode {
	return &TreeNode{
		id:    v.Key(),
		label: v.Label(),
	}
}

// NewReferenceNode creates a childless reference node for an already visited vertex
func NewReferenceNode(v Vertex) *TreeNode {
	return &TreeNode{
		id:        v.Key(),
		label:     v.Label(),
		reference: true,
	}
}

// ID returns the key of the originating vertex
func (n *TreeNode) ID() string { return n.id }

// Label returns the label of the originating vertex
func (n *TreeNode) Label() string { return n.label }

// IsReference reports whether the node stands for an already visited vertex
func (n *TreeNode) IsReference() bool { return n.reference }

// AddChild appends a child. Reference nodes never take children.
func (n *TreeNode) AddChild(child *TreeNode) bool {
	if n.reference || child == nil {
		return false
	}
	n.children = append(n.children, child)
	return true
}

// Children returns the children in discovery order.
// The returned slice must not be modified.
func (n *TreeNode) Children() []*TreeNode {
	return n.children
}

// IsLeaf reports whether the node has no children
func (n *TreeNode) IsLeaf() bool {
	return len(n.children) == 0
}

// Walk visits every node depth-first in pre-order
func (n *TreeNode) Walk(fn func(node *TreeNode)) {
	if n == nil {
		return
	}
	stack := []*TreeNode{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(node)
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
}

// Leaves returns the leaf nodes in depth-first order
func (n *TreeNode) Leaves() []*TreeNode {
	var leaves []*TreeNode
	n.Walk(func(node *TreeNode) {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Count returns the number of real and reference nodes in the tree
func (n *TreeNode) Count() (nodes, references int) {
	n.Walk(func(node *TreeNode) {
		if node.reference {
			references++
		} else {
			nodes++
		}
	})
	return nodes, references
}
