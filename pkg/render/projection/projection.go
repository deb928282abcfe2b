// Package projection draws side views of a brick stack as text.
//
// A view looks at the stack along one horizontal axis and flattens it onto
// the plane spanned by the other horizontal axis and z. Each brick is drawn
// with its label letter; a cell hidden behind several different bricks shows
// '?', an empty cell '.', and the ground is a row of '-':
//
//	 x
//	012
//	.G. 6
//	.G. 5
//	FFF 4
//	D.E 3
//	??? 2
//	.A. 1
//	--- 0
package projection

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
)

// View is a flattened side view.
type View struct {
	// Axis is the horizontal axis shown left to right (AxisX or AxisY).
	Axis   brick.Axis
	Width  int
	Height int

	cells map[cell][]int
}

type cell struct{ u, z int }

// Project flattens bricks onto the plane of axis and z.
func Project(bricks []brick.Brick, axis brick.Axis) (*View, error) {
	if axis != brick.AxisX && axis != brick.AxisY {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot project onto axis %s", axis)
	}
	v := &View{Axis: axis, cells: make(map[cell][]int)}
	for _, b := range bricks {
		for p := range b.Cells() {
			u := p.X
			if axis == brick.AxisY {
				u = p.Y
			}
			v.Width = max(v.Width, u+1)
			v.Height = max(v.Height, p.Z)
			c := cell{u, p.Z}
			if !slices.Contains(v.cells[c], b.ID) {
				v.cells[c] = append(v.cells[c], b.ID)
			}
		}
	}
	for c := range v.cells {
		slices.Sort(v.cells[c])
	}
	return v, nil
}

// At returns the IDs of the bricks visible at (u, z), sorted.
func (v *View) At(u, z int) []int { return v.cells[cell{u, z}] }

// Label returns the letter used for a brick: A to Z for the first 26 IDs,
// '#' for the rest.
func Label(id int) rune {
	if id >= 0 && id < 26 {
		return rune('A' + id)
	}
	return '#'
}

// Row renders one layer of the view without the height suffix.
func (v *View) Row(z int) string {
	var sb strings.Builder
	for u := range v.Width {
		switch ids := v.At(u, z); len(ids) {
		case 0:
			sb.WriteByte('.')
		case 1:
			sb.WriteRune(Label(ids[0]))
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Render writes the full view, top layer first.
func (v *View) Render(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s\n", strings.Repeat(" ", (v.Width-1)/2), v.Axis)
	for u := range v.Width {
		sb.WriteString(strconv.Itoa(u % 10))
	}
	sb.WriteByte('\n')
	for z := v.Height; z >= 1; z-- {
		fmt.Fprintf(&sb, "%s %d\n", v.Row(z), z)
	}
	fmt.Fprintf(&sb, "%s 0\n", strings.Repeat("-", v.Width))
	_, err := io.WriteString(w, sb.String())
	return err
}

// String renders the view.
func (v *View) String() string {
	var sb strings.Builder
	_ = v.Render(&sb)
	return sb.String()
}
