package grid

import (
	stderrors "errors"
	"testing"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
)

func TestOccupyAndLookup(t *testing.T) {
	g := New()
	b := brick.MustNew(2, brick.Point{X: 0, Y: 0, Z: 2}, brick.Point{X: 2, Y: 0, Z: 2})
	if err := g.Occupy(b); err != nil {
		t.Fatalf("Occupy() error: %v", err)
	}

	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	for x := 0; x <= 2; x++ {
		id, ok := g.OccupantAt(brick.Point{X: x, Y: 0, Z: 2})
		if !ok || id != 2 {
			t.Errorf("OccupantAt(%d,0,2) = %d,%v, want 2,true", x, id, ok)
		}
	}
	if _, ok := g.OccupantAt(brick.Point{X: 0, Y: 0, Z: 1}); ok {
		t.Error("OccupantAt below brick should be empty")
	}
	if top := g.ColumnTop(brick.Column{X: 1, Y: 0}); top != 2 {
		t.Errorf("ColumnTop() = %d, want 2", top)
	}
}

func TestOccupyCollision(t *testing.T) {
	g := New()
	a := brick.MustNew(0, brick.Point{X: 1, Y: 0, Z: 1}, brick.Point{X: 1, Y: 2, Z: 1})
	b := brick.MustNew(1, brick.Point{X: 0, Y: 1, Z: 1}, brick.Point{X: 2, Y: 1, Z: 1})
	if err := g.Occupy(a); err != nil {
		t.Fatalf("Occupy(a) error: %v", err)
	}

	err := g.Occupy(b)
	if !errors.Is(err, errors.ErrCodeCollision) {
		t.Fatalf("Occupy(b) error = %v, want COLLISION", err)
	}
	var ce *errors.CollisionError
	if !stderrors.As(err, &ce) || ce.X != 1 || ce.Y != 1 || ce.Occupant != 0 || ce.Intruder != 1 {
		t.Errorf("collision = %+v, want cell 1,1,1 occupant 0 intruder 1", ce)
	}
	// A failed insert leaves no partial cells behind.
	if _, ok := g.OccupantAt(brick.Point{X: 0, Y: 1, Z: 1}); ok {
		t.Error("failed Occupy should not insert any cell")
	}
}

func TestOccupySelfOverlap(t *testing.T) {
	g := New()
	b := brick.MustNew(0, brick.Point{X: 0, Y: 0, Z: 3}, brick.Point{X: 0, Y: 0, Z: 5})
	if err := g.Occupy(b); err != nil {
		t.Fatalf("Occupy() error: %v", err)
	}

	b.Translate(-1)
	if err := g.Occupy(b); err != nil {
		t.Errorf("re-occupying own cells should not collide: %v", err)
	}
}

func TestVacate(t *testing.T) {
	g := New()
	low := brick.MustNew(0, brick.Point{X: 0, Y: 0, Z: 1}, brick.Point{X: 0, Y: 0, Z: 2})
	high := brick.MustNew(1, brick.Point{X: 0, Y: 0, Z: 5}, brick.Point{X: 1, Y: 0, Z: 5})
	for _, b := range []brick.Brick{low, high} {
		if err := g.Occupy(b); err != nil {
			t.Fatalf("Occupy(%d) error: %v", b.ID, err)
		}
	}

	g.Vacate(high)
	if got := g.ColumnTop(brick.Column{X: 0, Y: 0}); got != 2 {
		t.Errorf("ColumnTop(0,0) after vacating high = %d, want 2", got)
	}
	if got := g.ColumnTop(brick.Column{X: 1, Y: 0}); got != 0 {
		t.Errorf("ColumnTop(1,0) after vacating high = %d, want 0", got)
	}

	// Vacating a brick below another keeps the upper column top.
	if err := g.Occupy(high); err != nil {
		t.Fatalf("Occupy(high) error: %v", err)
	}
	g.Vacate(low)
	if got := g.ColumnTop(brick.Column{X: 0, Y: 0}); got != 5 {
		t.Errorf("ColumnTop(0,0) after vacating low = %d, want 5", got)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestMaxHeightBelow(t *testing.T) {
	g := New()
	bricks := []brick.Brick{
		brick.MustNew(0, brick.Point{X: 0, Y: 0, Z: 1}, brick.Point{X: 0, Y: 0, Z: 3}),
		brick.MustNew(1, brick.Point{X: 1, Y: 0, Z: 1}, brick.Point{X: 1, Y: 0, Z: 1}),
		brick.MustNew(2, brick.Point{X: 2, Y: 0, Z: 8}, brick.Point{X: 2, Y: 0, Z: 8}),
		brick.MustNew(3, brick.Point{X: 2, Y: 0, Z: 4}, brick.Point{X: 2, Y: 0, Z: 4}),
	}
	for _, b := range bricks {
		if err := g.Occupy(b); err != nil {
			t.Fatalf("Occupy(%d) error: %v", b.ID, err)
		}
	}

	tests := []struct {
		name  string
		cols  []brick.Column
		limit int
		want  int
	}{
		{"empty column is ground", []brick.Column{{X: 9, Y: 9}}, 10, 0},
		{"single column", []brick.Column{{X: 1, Y: 0}}, 10, 1},
		{"highest of several", []brick.Column{{X: 0, Y: 0}, {X: 1, Y: 0}}, 10, 3},
		{"skips cells above limit", []brick.Column{{X: 2, Y: 0}}, 6, 4},
		{"nothing below limit", []brick.Column{{X: 2, Y: 0}}, 4, 0},
		{"no columns", nil, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.MaxHeightBelow(tt.cols, tt.limit); got != tt.want {
				t.Errorf("MaxHeightBelow() = %d, want %d", got, tt.want)
			}
		})
	}
}
