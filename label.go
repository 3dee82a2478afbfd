package hcluster

import "slices"

// Linkage converts a dendrogram into scipy linkage format: one row per merge,
// in merge order, each row [left, right, distance, mergedSize]. Leaves keep
// their ids 0..n-1 and the node created by merge k (id -k) is referred to as
// n+k-1, matching scipy's cluster-ID scheme. A nil root or a lone leaf
// yields nil.
//
// root may also be a subtree of a larger dendrogram. Its leaves are then
// renumbered 0..size-1 in ascending id order and its merges are numbered
// from size upward in the order they happened.
func Linkage(root *Node) [][4]float64 {
	if root == nil || root.IsLeaf() {
		return nil
	}

	merges, slots := indexTree(root)
	n := len(slots)
	mergeSlot := make(map[int]int, len(merges))
	for k, m := range merges {
		mergeSlot[m.id] = n + k
	}

	label := func(node *Node) float64 {
		if node.IsLeaf() {
			return float64(slots[node.id])
		}
		return float64(mergeSlot[node.id])
	}

	result := make([][4]float64, len(merges))
	for k, m := range merges {
		size := m.left.Size() + m.right.Size()
		result[k] = [4]float64{label(m.left), label(m.right), m.distance, float64(size)}
	}
	return result
}

// indexTree returns the merges under root in the order they happened and a
// map from each leaf id to its slot among the leaves sorted by id. For a
// root built by Cluster every slot equals its leaf id.
func indexTree(root *Node) (merges []*Node, slots map[int]int) {
	var leaves []int
	root.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node.id)
		} else {
			merges = append(merges, node)
		}
		return true
	})

	slices.Sort(leaves)
	slots = make(map[int]int, len(leaves))
	for i, id := range leaves {
		slots[id] = i
	}
	// -1 happened first, so ids sort descending.
	slices.SortFunc(merges, func(a, b *Node) int { return b.id - a.id })
	return merges, slots
}
