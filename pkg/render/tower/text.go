package tower

const (
	fontHeightRatio  = 0.6
	fontWidthRatio   = 0.85
	fontCharWidth    = 0.55
	fontSizeMin      = 8.0
	fontSizeMax      = 24.0
	rotateSizeDampen = 0.75
)

func FontSize(b Block, label string) float64 {
	return fontSizeFor(b.Width(), b.Height(), len(label))
}

func FontSizeRotated(b Block, label string) float64 {
	return fontSizeFor(b.Height()*rotateSizeDampen, b.Width(), len(label))
}

func fontSizeFor(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// ShouldRotate reports whether the label fits better running up a tall,
// narrow block.
func ShouldRotate(b Block, label string) bool {
	horiz := fontSizeFor(b.Width(), b.Height(), len(label))
	rot := fontSizeFor(b.Height(), b.Width(), len(label))
	return rot > horiz
}
