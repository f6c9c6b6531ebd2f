// Package graph provides undirected graph connectivity over table relation
// sets. It backs foreign-key grouping with a disjoint-set structure (path
// compression, union by rank) for near-linear connected-component queries.
package graph

import "sort"

// Graph is an undirected graph keyed by string IDs.
type Graph struct {
	nodes map[string]struct{}
	adj   map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		adj:   make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, exists := g.nodes[id]; !exists {
		g.nodes[id] = struct{}{}
		g.adj[id] = []string{}
	}
}

// AddEdge connects two nodes. Both must exist; self-loops and duplicate
// edges are ignored.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	if _, ok := g.nodes[a]; !ok {
		return
	}
	if _, ok := g.nodes[b]; !ok {
		return
	}
	if !contains(g.adj[a], b) {
		g.adj[a] = append(g.adj[a], b)
	}
	if !contains(g.adj[b], a) {
		g.adj[b] = append(g.adj[b], a)
	}
}

// Neighbors returns the nodes adjacent to id.
func (g *Graph) Neighbors(id string) []string {
	return g.adj[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Components returns the connected components, each sorted, ordered by their
// smallest member for deterministic output.
func (g *Graph) Components() [][]string {
	ds := NewDisjointSet()
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ds.Add(id)
	}
	for _, id := range ids {
		for _, n := range g.adj[id] {
			ds.Union(id, n)
		}
	}

	groups := make(map[string][]string)
	for _, id := range ids {
		root := ds.Find(id)
		groups[root] = append(groups[root], id)
	}

	components := make([][]string, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		components = append(components, members)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
