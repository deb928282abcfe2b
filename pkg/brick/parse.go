package brick

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/slabtower/pkg/errors"
)

// Parse decodes a single snapshot line of the form "x,y,z~x,y,z".
// The id becomes the brick's identity in the support graph.
func Parse(line string, id int) (Brick, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(line), "~")
	if !ok {
		return Brick{}, errors.New(errors.ErrCodeMalformedInput, "missing '~' in %q", line)
	}
	a, err := parsePoint(left)
	if err != nil {
		return Brick{}, err
	}
	b, err := parsePoint(right)
	if err != nil {
		return Brick{}, err
	}
	return New(id, a, b)
}

func parsePoint(s string) (Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return Point{}, errors.New(errors.ErrCodeMalformedInput, "want 3 coordinates, got %q", s)
	}
	var v [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Point{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "coordinate %q", part)
		}
		v[i] = n
	}
	return Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

// ParseAll reads a whole snapshot. Bricks are numbered in the order they
// appear, starting at 0. Blank lines and '#' comments do not consume an ID.
func ParseAll(r io.Reader) ([]Brick, error) {
	var bricks []Brick
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b, err := Parse(line, len(bricks))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "line %d", lineNo)
		}
		bricks = append(bricks, b)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read snapshot")
	}
	return bricks, nil
}

// Format writes bricks back in snapshot notation, one per line.
func Format(w io.Writer, bricks []Brick) error {
	bw := bufio.NewWriter(w)
	for _, b := range bricks {
		if _, err := bw.WriteString(b.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
