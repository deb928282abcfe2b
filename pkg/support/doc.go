// Package support provides the directed support graph of a settled brick
// stack.
//
// # Overview
//
// After settling, every brick either rests on the ground or on one or more
// bricks directly beneath it. This package records that relation as a
// directed acyclic graph: an edge From → To means brick From supports brick
// To, i.e. To rests on From. Nodes carry the settled vertical extent of their
// brick, so the graph can be walked bottom-to-top without consulting the
// original geometry.
//
// # Basic Usage
//
//	g := support.New()
//	g.AddNode(support.Node{ID: 0, Bottom: 1, Top: 1})
//	g.AddNode(support.Node{ID: 1, Bottom: 2, Top: 2})
//	g.AddEdge(support.Edge{From: 0, To: 1})
//
// Query the structure with [Graph.Supporters], [Graph.Supported],
// [Graph.ByHeight], [Graph.Grounded] and [Graph.Tops]. Use [Graph.Validate]
// to verify that every edge joins vertically adjacent bricks and that the
// graph is acyclic.
//
// # Layers
//
// Bricks play the role of the layered nodes in a tower: a supporter always
// ends exactly one cell below the brick it holds up (From.Top+1 == To.Bottom).
// This is stronger than acyclicity and is what [ErrNotAdjacent] checks.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Once built, a graph
// is only read, and concurrent readers are safe.
package support
