// Package tower draws a settled stack as an SVG side view.
//
// Each brick becomes a block in the plane of one horizontal axis and z,
// resting on the ground line. Blocks are coloured by whether they can be
// removed safely, and hovering a block highlights the bricks it rests on.
// Bricks hidden behind each other are painted back to front with partial
// opacity so that occluded bricks still show through.
//
// Rendering has two steps:
//
//	l, err := tower.Build(res, summary, brick.AxisX)
//	svg := tower.RenderSVG(l, tower.WithStyle(tower.Simple{}))
package tower
