// Package brick models the straight rectilinear bricks of a sand-slab
// snapshot.
//
// # Overview
//
// A [Brick] is a line of unit cubes along exactly one axis. It is described
// by two integer endpoints; a brick whose endpoints coincide is a single cube
// and is treated as vertical ([AxisZ]). Bricks are identified by their index
// in input order, which stays stable through settling and is used as the node
// identity of the support graph.
//
// # Parsing
//
// Snapshots are plain text, one brick per line, endpoints separated by a
// tilde:
//
//	1,0,1~1,2,1
//	0,0,2~2,0,2
//
// [ParseAll] reads a whole snapshot and [Parse] a single line. Blank lines
// and lines starting with '#' are skipped. Malformed lines are reported with
// their 1-based line number and the MALFORMED_INPUT code.
//
// # Geometry
//
// [Brick.Cells] yields the occupied cells lazily from the low end to the high
// end of the axis. [Brick.Columns] lists the distinct (x,y) columns, and
// [Brick.BottomCells] the cells that rest on whatever lies directly beneath
// the brick. [Brick.Translate] shifts a brick vertically, which is the only
// mutation the settling engine performs.
package brick
