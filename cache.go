package hcluster

// pairKey is an unordered pair of node ids, stored with lo <= hi.
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// distanceCache memoizes metric evaluations for one clustering run.
//
// Ids are only unique within a run (leaf ids restart at 0 for every table),
// so a cache must never outlive the Cluster call that created it. The cache
// assumes the metric is symmetric; it does not check.
type distanceCache struct {
	metric DistanceMetric
	values map[pairKey]float64

	// evaluations counts calls made to the metric.
	evaluations int
}

func newDistanceCache(metric DistanceMetric) *distanceCache {
	return &distanceCache{
		metric: metric,
		values: make(map[pairKey]float64),
	}
}

// lookup returns the cached distance between a and b, if any.
func (c *distanceCache) lookup(a, b *Node) (float64, bool) {
	d, ok := c.values[makePairKey(a.id, b.id)]
	return d, ok
}

func (c *distanceCache) store(a, b *Node, d float64) {
	c.values[makePairKey(a.id, b.id)] = d
}

// get returns the distance between a and b, evaluating the metric on a
// miss. Failed evaluations are not cached.
func (c *distanceCache) get(a, b *Node) (float64, error) {
	if d, ok := c.lookup(a, b); ok {
		return d, nil
	}
	c.evaluations++
	d, err := c.metric.Distance(a.vec, b.vec)
	if err != nil {
		return 0, &DistanceError{A: a.id, B: b.id, Err: err}
	}
	c.store(a, b, d)
	return d, nil
}
