package hcluster

// Cut extracts flat clusters from a dendrogram. Two input rows share a
// cluster when they are connected through merges whose distance is at most
// threshold. The result has one label per input row, indexed by leaf id;
// labels start at 0 and are numbered in order of first appearance by row.
//
// Merge distances are measured between mean vectors and need not grow toward
// the root, so a merge below the threshold can sit above one that is not.
// Cut follows the merges themselves rather than cutting the tree at a height.
//
// For a subtree of a larger dendrogram, labels[i] belongs to the leaf with
// the i-th smallest id under root.
func Cut(root *Node, threshold float64) []int {
	if root == nil {
		return nil
	}

	merges, slots := indexTree(root)
	n := len(slots)
	uf := NewUnionFind(n)

	// Any leaf stands in for the rows under a merge once that merge is
	// accepted; the leftmost one is used.
	for _, m := range merges {
		if m.distance <= threshold {
			uf.Union(slots[leftmostLeaf(m.left)], slots[leftmostLeaf(m.right)])
		}
	}

	labels := make([]int, n)
	next := 0
	assigned := make(map[int]int)
	for i := range labels {
		r := uf.Find(i)
		l, ok := assigned[r]
		if !ok {
			l = next
			assigned[r] = l
			next++
		}
		labels[i] = l
	}
	return labels
}

func leftmostLeaf(n *Node) int {
	for !n.IsLeaf() {
		n = n.left
	}
	return n.id
}
