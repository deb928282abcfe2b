package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/render/tower"
	"github.com/matzehuels/slabtower/pkg/support"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the settled height range and cascade size to each label.
	// When false, only the brick's letter is shown.
	Detailed bool
}

// ToDOT converts a support graph to Graphviz DOT. Edges point from a brick
// to the bricks resting on it, and the graph is laid out bottom to top so
// the ground is at the bottom of the drawing.
//
// Bricks on the ground have a double border. Bricks that are the sole
// support of another brick are filled.
func ToDOT(g *support.Graph, sum query.Summary, opts Options) string {
	bs := make(map[int]query.BrickSummary, len(sum.Bricks))
	for _, b := range sum.Bricks {
		bs[b.ID] = b
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n, bs[n.ID], fmtLabel(n, bs[n.ID], opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeName(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodeName(e.From), nodeName(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string { return "b" + strconv.Itoa(id) }

func fmtLabel(n support.Node, b query.BrickSummary, detailed bool) string {
	label := tower.Label(n.ID)
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nz: %d-%d\ncascade: %d", label, n.Bottom, n.Top, b.Cascade)
}

func fmtAttrs(n support.Node, b query.BrickSummary, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Grounded() {
		attrs = append(attrs, "peripheries=2")
	}
	if !b.Removable {
		attrs = append(attrs, "fillcolor=\"#f4b183\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> tag with one sized
// from its viewBox, so the drawing scales like the tower output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
