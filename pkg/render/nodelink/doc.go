// Package nodelink renders a support graph as a node-link diagram.
//
// Each settled brick becomes a box and each support relation an arrow from
// the lower brick to the one resting on it. It complements the tower view
// when a stack is too deep to read from the side.
//
//	dot := nodelink.ToDOT(res.Graph, summary, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz],
// so no external binaries are needed. The DOT source from [ToDOT] can also be
// written out and processed with the dot command.
package nodelink
