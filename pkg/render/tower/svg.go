package tower

import (
	"bytes"
	"fmt"
)

const blockInteractionCSS = `
    .block { transition: stroke-width 0.2s ease; }
    .block.highlight { stroke-width: 4; }
    .block.support { stroke-width: 4; stroke-dasharray: 6 3; }
    .block-text { pointer-events: none; transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .block-text.highlight { transform: scale(1.08); font-weight: bold; }`

const blockInteractionJS = `
    function highlight(id, supporters) {
      document.querySelectorAll('.block').forEach(b => {
        const bid = b.id.replace('block-', '');
        b.classList.toggle('highlight', bid === id);
        b.classList.toggle('support', supporters.includes(bid));
      });
      document.querySelectorAll('.block-text').forEach(t => t.classList.toggle('highlight', t.dataset.block === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.block, .block-text').forEach(el => el.classList.remove('highlight', 'support'));
    }
    document.querySelectorAll('.block').forEach(el => {
      const supporters = el.dataset.supporters ? el.dataset.supporters.split(' ') : [];
      el.addEventListener('mouseenter', () => highlight(el.id.replace('block-', ''), supporters));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// RenderOption configures RenderSVG.
type RenderOption func(*renderer)

type renderer struct {
	style       Style
	interactive bool
}

// WithStyle selects the drawing style. The default is Simple.
func WithStyle(s Style) RenderOption { return func(r *renderer) { r.style = s } }

// WithoutInteraction omits the hover script, for static embedding.
func WithoutInteraction() RenderOption { return func(r *renderer) { r.interactive = false } }

// RenderSVG draws the layout.
func RenderSVG(l Layout, opts ...RenderOption) []byte {
	r := renderer{style: Simple{}, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.FrameWidth, l.FrameHeight, l.FrameWidth, l.FrameHeight)

	r.style.RenderDefs(&buf)
	for _, b := range l.Blocks {
		r.style.RenderBlock(&buf, b)
	}
	for _, b := range l.Blocks {
		r.style.RenderText(&buf, b)
	}
	r.style.RenderGround(&buf, l)

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", blockInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", blockInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
