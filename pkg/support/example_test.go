package support_test

import (
	"fmt"

	"github.com/matzehuels/slabtower/pkg/support"
)

func ExampleGraph_basic() {
	// One brick on the ground holding up two others.
	g := support.New()
	_ = g.AddNode(support.Node{ID: 0, Bottom: 1, Top: 1})
	_ = g.AddNode(support.Node{ID: 1, Bottom: 2, Top: 2})
	_ = g.AddNode(support.Node{ID: 2, Bottom: 2, Top: 3})
	_ = g.AddEdge(support.Edge{From: 0, To: 1})
	_ = g.AddEdge(support.Edge{From: 0, To: 2})

	fmt.Println("Bricks:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Resting on 0:", g.Supported(0))
	fmt.Println("Valid:", g.Validate() == nil)
	// Output:
	// Bricks: 3
	// Edges: 2
	// Resting on 0: [1 2]
	// Valid: true
}

func ExampleGraph_Grounded() {
	g := support.New()
	_ = g.AddNode(support.Node{ID: 0, Bottom: 1, Top: 1})
	_ = g.AddNode(support.Node{ID: 1, Bottom: 1, Top: 4})
	_ = g.AddNode(support.Node{ID: 2, Bottom: 5, Top: 5})
	_ = g.AddEdge(support.Edge{From: 1, To: 2})

	for _, n := range g.Grounded() {
		fmt.Println("grounded:", n.ID)
	}
	// Output:
	// grounded: 0
	// grounded: 1
}
