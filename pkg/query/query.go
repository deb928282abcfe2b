// Package query answers structural questions about a settled stack.
//
// All queries read a [support.Graph] and never modify it. A brick is
// removable when no other brick rests on it alone; its cascade is the number
// of other bricks that would fall, directly or transitively, if it vanished.
package query

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/slabtower/pkg/support"
)

// Removable reports whether the brick can be taken away without any other
// brick falling. That is the case unless some brick's only supporter is id.
func Removable(g *support.Graph, id int) bool {
	return len(SoleDependents(g, id)) == 0
}

// SoleDependents returns the bricks that rest on id and on nothing else,
// sorted by ID.
func SoleDependents(g *support.Graph, id int) []int {
	var out []int
	for _, above := range g.Supported(id) {
		if s := g.Supporters(above); len(s) == 1 && s[0] == id {
			out = append(out, above)
		}
	}
	return out
}

// CountRemovable returns how many bricks are individually removable.
//
// The non-removable set is collected from every brick with exactly one
// supporter, so the count is linear in the number of edges.
func CountRemovable(g *support.Graph) int {
	load := make(map[int]struct{})
	for _, n := range g.Nodes() {
		if s := g.Supporters(n.ID); len(s) == 1 {
			load[s[0]] = struct{}{}
		}
	}
	return g.NodeCount() - len(load)
}

// Cascade returns how many other bricks fall if id is removed.
//
// A brick falls when it has at least one supporter and every supporter has
// fallen; grounded bricks never fall. Bricks are visited once in ascending
// bottom height starting after id, which is enough because every supporter
// sits strictly lower than what it supports. Unknown IDs yield 0.
func Cascade(g *support.Graph, id int) int {
	if _, ok := g.Node(id); !ok {
		return 0
	}
	order := g.ByHeight()
	start := 0
	for i, n := range order {
		if n.ID == id {
			start = i + 1
			break
		}
	}

	fallen := map[int]bool{id: true}
	for _, n := range order[start:] {
		supporters := g.Supporters(n.ID)
		if len(supporters) == 0 {
			continue
		}
		all := true
		for _, s := range supporters {
			if !fallen[s] {
				all = false
				break
			}
		}
		if all {
			fallen[n.ID] = true
		}
	}
	return len(fallen) - 1
}

// SumCascades adds up [Cascade] over every brick.
func SumCascades(g *support.Graph) int {
	total := 0
	for _, n := range g.Nodes() {
		total += Cascade(g, n.ID)
	}
	return total
}

// BrickSummary holds the query answers for a single brick.
type BrickSummary struct {
	ID             int
	Removable      bool
	Cascade        int
	SoleDependents []int
}

// Stats describes the distribution of cascade sizes over a stack.
type Stats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Max    int     `json:"max" yaml:"max"`
	// Worst is the ID of a brick with the largest cascade, or -1 when the
	// stack is empty.
	Worst int `json:"worst" yaml:"worst"`
}

// Summary is the result of [Analyze].
type Summary struct {
	Bricks     []BrickSummary
	Removable  int
	CascadeSum int
	Stats      Stats
}

// Analyze runs every query over the graph at once.
func Analyze(g *support.Graph) Summary {
	nodes := g.Nodes()
	sum := Summary{Bricks: make([]BrickSummary, 0, len(nodes))}
	cascades := make([]float64, 0, len(nodes))

	for _, n := range nodes {
		deps := SoleDependents(g, n.ID)
		c := Cascade(g, n.ID)
		sum.Bricks = append(sum.Bricks, BrickSummary{
			ID:             n.ID,
			Removable:      len(deps) == 0,
			Cascade:        c,
			SoleDependents: deps,
		})
		if len(deps) == 0 {
			sum.Removable++
		}
		sum.CascadeSum += c
		cascades = append(cascades, float64(c))
	}
	sum.Stats = cascadeStats(cascades, nodes)
	return sum
}

func cascadeStats(cascades []float64, nodes []support.Node) Stats {
	if len(cascades) == 0 {
		return Stats{Worst: -1}
	}
	st := Stats{Mean: stat.Mean(cascades, nil)}
	if len(cascades) > 1 {
		st.StdDev = stat.StdDev(cascades, nil)
	}
	if math.IsNaN(st.StdDev) {
		st.StdDev = 0
	}
	i := floats.MaxIdx(cascades)
	st.Max = int(cascades[i])
	st.Worst = nodes[i].ID
	return st
}
