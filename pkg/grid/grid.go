// Package grid provides a sparse 3D occupancy index for settled bricks.
//
// A [Grid] maps integer cells to the ID of the brick holding them. Absence
// means empty space; the ground plane z == 0 is never stored. Alongside the
// cell map the grid keeps the highest occupied z of every column, so the
// settling engine can find how far a brick may fall without scanning the
// whole volume.
//
// Grid is not safe for concurrent use.
package grid

import (
	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
)

// Grid is a sparse cell → brick index. The zero value is not usable; use [New].
type Grid struct {
	cells map[brick.Point]int
	tops  map[brick.Column]int
}

// New creates an empty grid.
func New() *Grid {
	return &Grid{
		cells: make(map[brick.Point]int),
		tops:  make(map[brick.Column]int),
	}
}

// Occupy inserts every cell of b at its current position.
//
// A cell already held by a different brick is a collision and nothing is
// inserted; the returned error is a [*errors.CollisionError]. Cells already
// held by b itself are accepted, so a brick can be re-inserted at a position
// overlapping its previous one.
func (g *Grid) Occupy(b brick.Brick) error {
	for p := range b.Cells() {
		if id, ok := g.cells[p]; ok && id != b.ID {
			return &errors.CollisionError{X: p.X, Y: p.Y, Z: p.Z, Occupant: id, Intruder: b.ID}
		}
	}
	for p := range b.Cells() {
		g.cells[p] = b.ID
		col := p.Column()
		if p.Z > g.tops[col] {
			g.tops[col] = p.Z
		}
	}
	return nil
}

// Vacate removes the cells of b at its current position. Cells held by other
// bricks are left untouched.
func (g *Grid) Vacate(b brick.Brick) {
	for p := range b.Cells() {
		if id, ok := g.cells[p]; ok && id == b.ID {
			delete(g.cells, p)
		}
	}
	for _, col := range b.Columns() {
		top := g.tops[col]
		if top > b.Top() {
			continue
		}
		for top > 0 {
			if _, ok := g.cells[col.At(top)]; ok {
				break
			}
			top--
		}
		if top == 0 {
			delete(g.tops, col)
		} else {
			g.tops[col] = top
		}
	}
}

// OccupantAt returns the brick holding p, if any.
func (g *Grid) OccupantAt(p brick.Point) (int, bool) {
	id, ok := g.cells[p]
	return id, ok
}

// MaxHeightBelow returns the greatest occupied z strictly below limit across
// the given columns, or 0 (the ground) when nothing lies beneath.
//
// Columns whose highest cell is below limit are answered from the column
// index in O(1). Only a column occupied at or above limit is walked downward
// from limit.
func (g *Grid) MaxHeightBelow(cols []brick.Column, limit int) int {
	best := 0
	for _, col := range cols {
		top, ok := g.tops[col]
		if !ok {
			continue
		}
		if top >= limit {
			top = limit - 1
			for top > best {
				if _, ok := g.cells[col.At(top)]; ok {
					break
				}
				top--
			}
		}
		if top > best {
			best = top
		}
	}
	return best
}

// ColumnTop returns the highest occupied z of the column, or 0 if empty.
func (g *Grid) ColumnTop(col brick.Column) int { return g.tops[col] }

// Len returns the number of occupied cells.
func (g *Grid) Len() int { return len(g.cells) }
