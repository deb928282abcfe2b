// Package render holds the drawing back ends for settled stacks.
//
//   - [projection] prints the text side views used in puzzle write-ups.
//   - [tower] draws an SVG side view with coloured, hoverable blocks.
//   - [nodelink] draws the support graph with Graphviz.
//
// All three take a settled stack; tower and nodelink also take the query
// summary to colour bricks that hold others up alone.
//
// [projection]: github.com/matzehuels/slabtower/pkg/render/projection
// [tower]: github.com/matzehuels/slabtower/pkg/render/tower
// [nodelink]: github.com/matzehuels/slabtower/pkg/render/nodelink
package render
