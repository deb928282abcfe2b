package tower

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/slabtower/pkg/render/projection"
)

// Style defines the visual appearance of a drawing.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderGround writes the ground line.
	RenderGround(buf *bytes.Buffer, l Layout)
	// RenderBlock writes the shape of a single brick.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes a brick's label.
	RenderText(buf *bytes.Buffer, b Block)
}

// Simple draws flat rectangles: green for removable bricks, orange for
// bricks that hold others up alone.
type Simple struct{}

const (
	fillRemovable = "#cfe8cf"
	fillBearing   = "#f4b183"
	strokeColor   = "#333333"
)

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderGround(buf *bytes.Buffer, l Layout) {
	fmt.Fprintf(buf, `  <line class="ground" x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>`+"\n",
		l.GroundY, l.FrameWidth, l.GroundY, strokeColor)
}

func (Simple) RenderBlock(buf *bytes.Buffer, b Block) {
	fill := fillRemovable
	if !b.Removable {
		fill = fillBearing
	}
	fmt.Fprintf(buf, `  <rect id="block-%d" class="block" data-supporters="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85" stroke="%s" stroke-width="1.5"><title>%s</title></rect>`+"\n",
		b.ID, joinIDs(b.Supporters), b.Left, b.Top, b.Width(), b.Height(), fill, strokeColor, EscapeXML(title(b)))
}

func (Simple) RenderText(buf *bytes.Buffer, b Block) {
	label := Label(b.ID)
	if ShouldRotate(b, label) {
		fmt.Fprintf(buf, `  <text class="block-text" data-block="%d" x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
			b.ID, b.CenterX(), b.CenterY(), FontSizeRotated(b, label), b.CenterX(), b.CenterY(), EscapeXML(label))
		return
	}
	fmt.Fprintf(buf, `  <text class="block-text" data-block="%d" x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.ID, b.CenterX(), b.CenterY(), FontSize(b, label), EscapeXML(label))
}

// Label is the text drawn on a brick: its letter for the first 26 bricks,
// its numeric ID after that.
func Label(id int) string {
	if r := projection.Label(id); r != '#' {
		return string(r)
	}
	return strconv.Itoa(id)
}

func title(b Block) string {
	if b.Removable {
		return fmt.Sprintf("brick %d: removable", b.ID)
	}
	return fmt.Sprintf("brick %d: %d would fall", b.ID, b.Cascade)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
