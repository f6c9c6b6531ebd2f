package graph

import (
	"reflect"
	"testing"
)

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := New()

	g.AddNode("users")
	g.AddNode("orders")
	g.AddNode("products")

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}

	g.AddEdge("users", "orders")
	if len(g.Neighbors("users")) != 1 || len(g.Neighbors("orders")) != 1 {
		t.Error("edge must be visible from both endpoints")
	}

	// duplicates and self-loops are ignored
	g.AddEdge("users", "orders")
	g.AddEdge("users", "users")
	if len(g.Neighbors("users")) != 1 {
		t.Errorf("expected 1 neighbor, got %d", len(g.Neighbors("users")))
	}
}

func TestGraph_AddEdge_UnknownNode(t *testing.T) {
	g := New()
	g.AddNode("a")

	g.AddEdge("a", "ghost")
	if len(g.Neighbors("a")) != 0 {
		t.Error("edge to unknown node must be ignored")
	}
}

func TestGraph_Components(t *testing.T) {
	g := New()
	for _, id := range []string{"users", "orders", "products", "logs", "tags", "posts"} {
		g.AddNode(id)
	}
	g.AddEdge("orders", "users")
	g.AddEdge("orders", "products")
	g.AddEdge("posts", "tags")

	got := g.Components()
	want := [][]string{
		{"logs"},
		{"orders", "products", "users"},
		{"posts", "tags"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("components = %v, want %v", got, want)
	}
}

func TestDisjointSet_UnionFind(t *testing.T) {
	ds := NewDisjointSet()
	for _, x := range []string{"a", "b", "c", "d"} {
		ds.Add(x)
	}

	if !ds.Union("a", "b") {
		t.Error("first union must merge")
	}
	if ds.Union("a", "b") {
		t.Error("repeated union must report no merge")
	}
	ds.Union("c", "d")

	if !ds.Connected("a", "b") || !ds.Connected("c", "d") {
		t.Error("expected merged pairs to be connected")
	}
	if ds.Connected("a", "c") {
		t.Error("distinct sets must not be connected")
	}

	ds.Union("b", "c")
	if !ds.Connected("a", "d") {
		t.Error("transitive connectivity after union")
	}
}

func TestDisjointSet_FindUnknownIsSingleton(t *testing.T) {
	ds := NewDisjointSet()
	if got := ds.Find("solo"); got != "solo" {
		t.Errorf("Find on unknown element = %q, want itself", got)
	}
}
