package hcluster

import "gonum.org/v1/gonum/floats"

// Node is one vertex of a dendrogram.
//
// Leaves have non-negative ids equal to the index of their input row.
// Merge nodes have negative ids assigned in merge order (-1 for the first
// merge, -2 for the second, ...), own exactly two children, and record the
// distance between those children at the time of the merge.
//
// Nodes are never modified after construction.
type Node struct {
	id       int
	vec      []float64
	left     *Node
	right    *Node
	distance float64
}

// NewLeaf returns a leaf for input row id. The vector is copied.
func NewLeaf(id int, vec []float64) *Node {
	v := make([]float64, len(vec))
	copy(v, vec)
	return &Node{id: id, vec: v}
}

// newMerge joins left and right under a new node whose vector is the
// element-wise mean of the children's vectors. The mean is taken over the
// two representatives only, not over every descendant leaf.
func newMerge(id int, left, right *Node, distance float64) *Node {
	v := make([]float64, len(left.vec))
	floats.AddTo(v, left.vec, right.vec)
	floats.Scale(0.5, v)
	return &Node{
		id:       id,
		vec:      v,
		left:     left,
		right:    right,
		distance: distance,
	}
}

// ID returns the node id: the input row index for leaves, a negative merge
// number for internal nodes.
func (n *Node) ID() int { return n.id }

// Vector returns a copy of the node's representative vector.
func (n *Node) Vector() []float64 {
	v := make([]float64, len(n.vec))
	copy(v, n.vec)
	return v
}

// Left returns the first merged child, or nil for a leaf.
func (n *Node) Left() *Node { return n.left }

// Right returns the second merged child, or nil for a leaf.
func (n *Node) Right() *Node { return n.right }

// IsLeaf reports whether n corresponds to an input row.
func (n *Node) IsLeaf() bool { return n.id >= 0 }

// MergeDistance returns the distance between the two children at merge
// time. ok is false for leaves.
func (n *Node) MergeDistance() (d float64, ok bool) {
	if n.IsLeaf() {
		return 0, false
	}
	return n.distance, true
}

// Walk visits the subtree rooted at n in pre-order. level is 0 for n and
// grows by one per generation. Returning false from fn skips the children of
// the node just visited.
func (n *Node) Walk(fn func(node *Node, level int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, level int) {
	if !fn(n, level) || n.IsLeaf() {
		return
	}
	n.left.walk(fn, level+1)
	n.right.walk(fn, level+1)
}

// Size returns the number of leaves under n.
func (n *Node) Size() int {
	if n.IsLeaf() {
		return 1
	}
	return n.left.Size() + n.right.Size()
}

// Depth returns the largest sum of merge distances along any path from n
// down to a leaf. Leaves have depth 0.
func (n *Node) Depth() float64 {
	if n.IsLeaf() {
		return 0
	}
	return n.distance + max(n.left.Depth(), n.right.Depth())
}

// LeafIDs returns the ids of every leaf under n in pre-order.
func (n *Node) LeafIDs() []int {
	var ids []int
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			ids = append(ids, node.id)
		}
		return true
	})
	return ids
}
