package graph

// DisjointSet is a union-find structure with path compression and union by
// rank.
type DisjointSet struct {
	parent map[string]string
	rank   map[string]int
}

// NewDisjointSet creates an empty disjoint-set.
func NewDisjointSet() *DisjointSet {
	return &DisjointSet{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

// Add registers an element as its own singleton set. Re-adding is a no-op.
func (d *DisjointSet) Add(x string) {
	if _, ok := d.parent[x]; !ok {
		d.parent[x] = x
		d.rank[x] = 0
	}
}

// Find returns the representative of x's set, compressing the path on the
// way. Unknown elements are registered as singletons.
func (d *DisjointSet) Find(x string) string {
	if _, ok := d.parent[x]; !ok {
		d.Add(x)
	}
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[x] != root {
		d.parent[x], x = root, d.parent[x]
	}
	return root
}

// Union merges the sets containing a and b, attaching the shallower tree
// under the deeper one. Returns true if two distinct sets were merged.
func (d *DisjointSet) Union(a, b string) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
	return true
}

// Connected reports whether a and b are in the same set.
func (d *DisjointSet) Connected(a, b string) bool {
	return d.Find(a) == d.Find(b)
}
