// Package settle drops the bricks of a snapshot until each comes to rest.
//
// Bricks are processed in ascending bottom height, ties broken by input
// order, so every brick that could hold another up has already landed when
// that other brick is dropped. Each brick falls to one above the highest
// settled cell in its columns (the ground counts as height 0), is inserted
// into the occupancy [grid.Grid], and records the bricks directly beneath
// its bottom cells as its supporters. The support relation is therefore
// captured at the moment a brick lands rather than rediscovered afterwards.
//
// Settling never raises a brick and never moves a brick already resting on
// the ground. Two bricks required to share a cell make the snapshot
// inconsistent; [Settle] then fails with a COLLISION error.
package settle

import (
	"slices"
	"sort"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/grid"
	"github.com/matzehuels/slabtower/pkg/support"
)

// Result is the settled configuration of a snapshot.
type Result struct {
	// Bricks holds the settled bricks in input order.
	Bricks []brick.Brick
	// Grid is the occupancy index of the settled bricks.
	Grid *grid.Grid
	// Graph is the support graph derived while settling.
	Graph *support.Graph
	// Moved counts the bricks whose height changed.
	Moved int
	// Drop holds, per brick, how far it fell.
	Drop []int
}

// Brick returns the settled brick with the given ID.
func (r *Result) Brick(id int) brick.Brick { return r.Bricks[id] }

// Settle drops every brick as far as it can go.
//
// The input slice is not modified. Brick IDs must equal their index in the
// slice, which is what [brick.ParseAll] produces; other IDs are rejected with
// an INVALID_INPUT error.
func Settle(bricks []brick.Brick) (*Result, error) {
	for i, b := range bricks {
		if b.ID != i {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"brick at index %d has ID %d", i, b.ID)
		}
		if b.Bottom() < 1 {
			return nil, errors.New(errors.ErrCodeMalformedInput,
				"brick %d (%s) starts in the ground plane", b.ID, b)
		}
	}

	settled := slices.Clone(bricks)
	order := make([]int, len(settled))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return settled[order[i]].Bottom() < settled[order[j]].Bottom()
	})

	res := &Result{
		Bricks: settled,
		Grid:   grid.New(),
		Graph:  support.New(),
		Drop:   make([]int, len(settled)),
	}
	supporters := make([][]int, len(settled))

	for _, id := range order {
		b := &settled[id]
		floor := res.Grid.MaxHeightBelow(b.Columns(), b.Bottom())
		if drop := b.Bottom() - (floor + 1); drop > 0 {
			b.Translate(-drop)
			res.Drop[id] = drop
			res.Moved++
		}
		if err := res.Grid.Occupy(*b); err != nil {
			return nil, err
		}
		supporters[id] = restingOn(res.Grid, *b)
	}

	for _, b := range settled {
		if err := res.Graph.AddNode(support.Node{ID: b.ID, Bottom: b.Bottom(), Top: b.Top()}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add brick %d", b.ID)
		}
	}
	for id, below := range supporters {
		for _, s := range below {
			if err := res.Graph.AddEdge(support.Edge{From: s, To: id}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add support %d->%d", s, id)
			}
		}
	}
	return res, nil
}

// restingOn returns the distinct bricks directly beneath b's bottom cells,
// sorted by ID.
func restingOn(g *grid.Grid, b brick.Brick) []int {
	if b.Bottom() <= 1 {
		return nil
	}
	var ids []int
	for _, p := range b.BottomCells() {
		if id, ok := g.OccupantAt(p.Below()); ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
