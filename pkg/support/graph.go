package support

import (
	"errors"
	"maps"
	"slices"
	"sort"
)

var (
	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownSupporter is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSupporter = errors.New("unknown supporter node")

	// ErrUnknownSupported is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownSupported = errors.New("unknown supported node")

	// ErrSelfSupport is returned by [Graph.AddEdge] for an edge from a node
	// to itself.
	ErrSelfSupport = errors.New("brick cannot support itself")

	// ErrNotAdjacent is returned by [Graph.Validate] when an edge joins bricks
	// that do not touch vertically (From.Top+1 != To.Bottom).
	ErrNotAdjacent = errors.New("supporter must end directly below supported brick")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle is
	// detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Node is a settled brick seen by the support graph.
type Node struct {
	ID     int // Brick index in input order
	Bottom int // Lowest z after settling
	Top    int // Highest z after settling
}

// Grounded reports whether the brick rests on the ground plane.
func (n Node) Grounded() bool { return n.Bottom == 1 }

// Edge records that From directly supports To.
type Edge struct {
	From int
	To   int
}

// Graph is the support relation of a settled stack.
//
// The zero value is not usable - use New to create a graph.
type Graph struct {
	nodes      map[int]*Node
	edges      []Edge
	supporters map[int][]int // nodeID -> bricks beneath it
	supported  map[int][]int // nodeID -> bricks resting on it
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[int]*Node),
		supporters: make(map[int][]int),
		supported:  make(map[int][]int),
	}
}

// AddNode adds a brick to the graph.
// Returns ErrDuplicateNode if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNode
	}
	g.nodes[n.ID] = &n
	return nil
}

// AddEdge records that e.From supports e.To. Both nodes must exist.
// Adding an edge that is already present is a no-op, so supporter and
// supported lists stay sets.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSupporter
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownSupported
	}
	if e.From == e.To {
		return ErrSelfSupport
	}
	if slices.Contains(g.supporters[e.To], e.From) {
		return nil
	}
	g.edges = append(g.edges, e)
	g.supporters[e.To] = insertSorted(g.supporters[e.To], e.From)
	g.supported[e.From] = insertSorted(g.supported[e.From], e.To)
	return nil
}

func insertSorted(ids []int, id int) []int {
	i, _ := slices.BinarySearch(ids, id)
	return slices.Insert(ids, i, id)
}

// Node returns the node with the given ID and true, or a zero node and false.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes returns all nodes in ID order.
func (g *Graph) Nodes() []Node {
	ids := slices.Sorted(maps.Keys(g.nodes))
	nodes := make([]Node, len(ids))
	for i, id := range ids {
		nodes[i] = *g.nodes[id]
	}
	return nodes
}

// ByHeight returns all nodes in non-decreasing Bottom order, ties broken by
// ID. Every supporter of a node appears before it.
func (g *Graph) ByHeight() []Node {
	nodes := g.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Bottom < nodes[j].Bottom })
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of bricks in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of support edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Supporters returns the IDs of the bricks directly beneath id, sorted.
// The returned slice should not be modified.
func (g *Graph) Supporters(id int) []int { return g.supporters[id] }

// Supported returns the IDs of the bricks resting directly on id, sorted.
// The returned slice should not be modified.
func (g *Graph) Supported(id int) []int { return g.supported[id] }

// Grounded returns the bricks with no supporters, in ID order.
func (g *Graph) Grounded() []Node {
	var out []Node
	for _, n := range g.Nodes() {
		if len(g.supporters[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Tops returns the bricks that support nothing, in ID order.
func (g *Graph) Tops() []Node {
	var out []Node
	for _, n := range g.Nodes() {
		if len(g.supported[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// MaxHeight returns the highest Top among all bricks, or 0 for an empty graph.
func (g *Graph) MaxHeight() int {
	top := 0
	for _, n := range g.nodes {
		top = max(top, n.Top)
	}
	return top
}

// Validate checks graph integrity and returns nil if valid.
//
//  1. Every edge joins vertically adjacent bricks (From.Top+1 == To.Bottom)
//  2. The graph is acyclic
//
// The first check implies the second for well-formed nodes; cycle detection
// still runs so that inconsistent node extents cannot hide a cycle.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if g.nodes[e.From].Top+1 != g.nodes[e.To].Bottom {
			return ErrNotAdjacent
		}
	}
	return g.detectCycles()
}

func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id int)
	dfs = func(id int) {
		color[id] = gray
		for _, up := range g.supported[id] {
			switch color[up] {
			case white:
				dfs(up)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range slices.Sorted(maps.Keys(g.nodes)) {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
