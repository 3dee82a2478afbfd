// Package hcluster implements agglomerative hierarchical clustering of
// numeric vectors.
//
// Clustering starts with one leaf per input row and repeatedly merges the two
// closest nodes until a single root remains. A merged node is represented by
// the mean of its two children's vectors, and the distance at which it was
// formed is kept on the node. The result is a binary tree (dendrogram).
//
// Basic usage:
//
//	root, err := hcluster.Cluster(table, hcluster.PearsonMetric{})
//	// root.Left(), root.Right() are the last two clusters merged
//	// root.MergeDistance() is the distance between them
//	// leaf ids 0..n-1 are the table row indices
//	hcluster.Fprint(os.Stdout, root, labels)
//
// Node ids follow one convention: non-negative ids are leaves and index the
// input table; negative ids are merges, numbered -1, -2, ... in the order
// they happened.
//
// Distances between pairs of nodes are memoized for the length of one call,
// keyed by the unordered pair of ids, so metrics must be symmetric.
//
// # Consuming the tree
//
// [Linkage] flattens a dendrogram into scipy linkage rows, [Cut] assigns flat
// cluster labels at a distance threshold, and [Node.MarshalJSON] encodes the
// tree for other tools. [Scaledown] lays the rows out in the plane instead,
// for plotting them by similarity.
//
// # Parallelism
//
// Set Config.Workers above 1 to spread each round's distance evaluations
// over several goroutines:
//
//	cfg := hcluster.DefaultConfig()
//	cfg.Workers = runtime.NumCPU()
//	root, err := hcluster.ClusterWithConfig(table, cfg)
//
// The merge order, ids and distances are the same for every worker count.
package hcluster
