package brick

import (
	"fmt"
	"iter"

	"github.com/matzehuels/slabtower/pkg/errors"
)

// Point is an integer cell coordinate. Z is the vertical axis; the ground is
// the plane Z == 0 and is never occupied.
type Point struct {
	X, Y, Z int
}

// String formats the point as "x,y,z".
func (p Point) String() string { return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z) }

// Below returns the cell directly underneath p.
func (p Point) Below() Point { return Point{p.X, p.Y, p.Z - 1} }

// Column returns the vertical column containing p.
func (p Point) Column() Column { return Column{p.X, p.Y} }

// Column is an (x,y) position seen from above.
type Column struct {
	X, Y int
}

// At returns the cell of the column at height z.
func (c Column) At(z int) Point { return Point{c.X, c.Y, z} }

// Axis is the coordinate along which a brick extends.
type Axis int

const (
	// AxisX bricks are horizontal and extend along x.
	AxisX Axis = iota
	// AxisY bricks are horizontal and extend along y.
	AxisY
	// AxisZ bricks are vertical. Single cubes also use AxisZ.
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// MarshalText encodes the axis as its name.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Brick is a straight line of unit cubes between two endpoints.
//
// Start and End are normalised so that Start is the low end of the axis. The
// zero value is a single cube at the origin, which lies in the ground plane
// and is therefore not a valid settled brick; use [New] or [Parse].
type Brick struct {
	ID    int
	Start Point
	End   Point
	axis  Axis
}

// New builds a brick from two endpoints in either order.
//
// It fails with a MALFORMED_INPUT error if any coordinate is negative, if a
// cell lies in the ground plane (z < 1) or if the endpoints differ on more
// than one axis.
func New(id int, a, b Point) (Brick, error) {
	for _, p := range []Point{a, b} {
		if p.X < 0 || p.Y < 0 || p.Z < 0 {
			return Brick{}, errors.New(errors.ErrCodeMalformedInput,
				"brick %d: negative coordinate in %s", id, p)
		}
		if p.Z < 1 {
			return Brick{}, errors.New(errors.ErrCodeMalformedInput,
				"brick %d: %s lies in the ground plane", id, p)
		}
	}

	axis := AxisZ
	differs := 0
	if a.X != b.X {
		axis = AxisX
		differs++
	}
	if a.Y != b.Y {
		axis = AxisY
		differs++
	}
	if a.Z != b.Z {
		axis = AxisZ
		differs++
	}
	if differs > 1 {
		return Brick{}, errors.New(errors.ErrCodeMalformedInput,
			"brick %d: endpoints %s and %s differ on more than one axis", id, a, b)
	}

	start, end := a, b
	if b.X < a.X || b.Y < a.Y || b.Z < a.Z {
		start, end = b, a
	}
	return Brick{ID: id, Start: start, End: end, axis: axis}, nil
}

// MustNew is like [New] but panics on error. It is intended for tests and
// fixed fixtures.
func MustNew(id int, a, b Point) Brick {
	br, err := New(id, a, b)
	if err != nil {
		panic(err)
	}
	return br
}

// Axis reports the axis the brick extends along.
func (b Brick) Axis() Axis { return b.axis }

// Len returns the number of cells the brick occupies.
func (b Brick) Len() int {
	switch b.axis {
	case AxisX:
		return b.End.X - b.Start.X + 1
	case AxisY:
		return b.End.Y - b.Start.Y + 1
	default:
		return b.End.Z - b.Start.Z + 1
	}
}

// Bottom returns the lowest z of the brick.
func (b Brick) Bottom() int { return b.Start.Z }

// Top returns the highest z of the brick.
func (b Brick) Top() int { return b.End.Z }

// Cells yields every occupied cell from the low end to the high end.
func (b Brick) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		p := b.Start
		for range b.Len() {
			if !yield(p) {
				return
			}
			switch b.axis {
			case AxisX:
				p.X++
			case AxisY:
				p.Y++
			default:
				p.Z++
			}
		}
	}
}

// Columns returns the distinct (x,y) columns the brick covers, low to high.
// A vertical brick covers a single column.
func (b Brick) Columns() []Column {
	if b.axis == AxisZ {
		return []Column{b.Start.Column()}
	}
	cols := make([]Column, 0, b.Len())
	for p := range b.Cells() {
		cols = append(cols, p.Column())
	}
	return cols
}

// BottomCells returns the cells at the brick's bottom height. These are the
// cells that rest on whatever occupies the layer below.
func (b Brick) BottomCells() []Point {
	if b.axis == AxisZ {
		return []Point{b.Start}
	}
	cells := make([]Point, 0, b.Len())
	for p := range b.Cells() {
		cells = append(cells, p)
	}
	return cells
}

// Translate shifts the brick vertically by dz. Negative values lower it.
func (b *Brick) Translate(dz int) {
	b.Start.Z += dz
	b.End.Z += dz
}

// String formats the brick in snapshot notation, "x,y,z~x,y,z".
func (b Brick) String() string { return b.Start.String() + "~" + b.End.String() }
