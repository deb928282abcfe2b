package tower

import (
	"cmp"
	"slices"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/settle"
)

const (
	// DefaultCellSize is the edge length of one cell in pixels.
	DefaultCellSize = 40.0
	// DefaultMargin surrounds the drawing.
	DefaultMargin = 20.0
)

// Block is a brick positioned in the drawing.
type Block struct {
	ID     int     `json:"id"`
	Left   float64 `json:"x"`
	Right  float64 `json:"-"`
	Top    float64 `json:"y"` // SVG coordinates grow downward
	Bottom float64 `json:"-"`
	// Depth is the brick's distance from the viewer along the hidden axis.
	Depth      int   `json:"depth"`
	Removable  bool  `json:"removable"`
	Cascade    int   `json:"cascade"`
	Supporters []int `json:"supporters,omitempty"`
}

func (b Block) Width() float64   { return b.Right - b.Left }
func (b Block) Height() float64  { return b.Bottom - b.Top }
func (b Block) CenterX() float64 { return (b.Left + b.Right) / 2 }
func (b Block) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Layout is a stack ready for drawing.
type Layout struct {
	Axis        brick.Axis `json:"axis"`
	FrameWidth  float64    `json:"width"`
	FrameHeight float64    `json:"height"`
	GroundY     float64    `json:"ground"`
	// Blocks are in painting order: farthest first.
	Blocks []Block `json:"blocks"`
}

// LayoutOption adjusts Build.
type LayoutOption func(*layoutConfig)

type layoutConfig struct {
	cell, margin float64
}

// WithCellSize sets the pixel size of one cell.
func WithCellSize(px float64) LayoutOption { return func(c *layoutConfig) { c.cell = px } }

// Build positions every brick of a settled stack as seen along the axis
// perpendicular to axis. axis must be AxisX or AxisY.
func Build(res *settle.Result, sum query.Summary, axis brick.Axis, opts ...LayoutOption) (Layout, error) {
	if axis != brick.AxisX && axis != brick.AxisY {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "cannot draw along axis %s", axis)
	}
	cfg := layoutConfig{cell: DefaultCellSize, margin: DefaultMargin}
	for _, o := range opts {
		o(&cfg)
	}

	width, height := 0, res.Graph.MaxHeight()
	for _, b := range res.Bricks {
		_, hi := span(b, axis)
		width = max(width, hi+1)
	}

	l := Layout{
		Axis:        axis,
		FrameWidth:  2*cfg.margin + float64(width)*cfg.cell,
		FrameHeight: 2*cfg.margin + float64(height)*cfg.cell,
		GroundY:     cfg.margin + float64(height)*cfg.cell,
		Blocks:      make([]Block, 0, len(res.Bricks)),
	}
	byID := make(map[int]query.BrickSummary, len(sum.Bricks))
	for _, bs := range sum.Bricks {
		byID[bs.ID] = bs
	}

	other := brick.AxisY
	if axis == brick.AxisY {
		other = brick.AxisX
	}
	for _, b := range res.Bricks {
		lo, hi := span(b, axis)
		depth, _ := span(b, other)
		bs := byID[b.ID]
		l.Blocks = append(l.Blocks, Block{
			ID:         b.ID,
			Left:       cfg.margin + float64(lo)*cfg.cell,
			Right:      cfg.margin + float64(hi+1)*cfg.cell,
			Top:        l.GroundY - float64(b.Top())*cfg.cell,
			Bottom:     l.GroundY - float64(b.Bottom()-1)*cfg.cell,
			Depth:      depth,
			Removable:  bs.Removable,
			Cascade:    bs.Cascade,
			Supporters: res.Graph.Supporters(b.ID),
		})
	}
	slices.SortStableFunc(l.Blocks, func(a, b Block) int {
		if c := cmp.Compare(b.Depth, a.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return l, nil
}

// span returns the extent of b along a horizontal axis.
func span(b brick.Brick, axis brick.Axis) (int, int) {
	if axis == brick.AxisX {
		return b.Start.X, b.End.X
	}
	return b.Start.Y, b.End.Y
}
