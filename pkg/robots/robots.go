// Package robots predicts the motion of wrapping robots on a tiled floor.
//
// Each robot moves in a straight line at constant velocity and teleports to
// the opposite edge when it leaves the space. The package computes where the
// robots are after a number of seconds, the safety factor of that layout,
// and the first moment the robots cluster most tightly.
package robots

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slabtower/pkg/errors"
)

// Vec is an integer 2D vector. X grows to the right, Y grows downward.
type Vec struct {
	X, Y int64
}

func (v Vec) String() string { return fmt.Sprintf("%d,%d", v.X, v.Y) }

// Robot is a starting position and a velocity in tiles per second.
type Robot struct {
	P Vec
	V Vec
}

func (r Robot) String() string { return "p=" + r.P.String() + " v=" + r.V.String() }

// Parse reads a robot from a line of the form "p=x,y v=dx,dy".
func Parse(line string) (Robot, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Robot{}, errors.New(errors.ErrCodeMalformedInput,
			"robot %q: want \"p=x,y v=dx,dy\"", line)
	}
	p, err := parseVec(fields[0], "p=")
	if err != nil {
		return Robot{}, err
	}
	v, err := parseVec(fields[1], "v=")
	if err != nil {
		return Robot{}, err
	}
	return Robot{P: p, V: v}, nil
}

func parseVec(s, prefix string) (Vec, error) {
	rest, ok := strings.CutPrefix(s, prefix)
	if !ok {
		return Vec{}, errors.New(errors.ErrCodeMalformedInput, "%q: missing %q", s, prefix)
	}
	xs, ys, ok := strings.Cut(rest, ",")
	if !ok {
		return Vec{}, errors.New(errors.ErrCodeMalformedInput, "%q: want two coordinates", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 64)
	if err != nil {
		return Vec{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "%q", s)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 64)
	if err != nil {
		return Vec{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "%q", s)
	}
	return Vec{X: x, Y: y}, nil
}

// ParseAll reads one robot per line, skipping blank and '#' lines.
func ParseAll(r io.Reader) ([]Robot, error) {
	var out []Robot
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		robot, err := Parse(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "line %d", n)
		}
		out = append(out, robot)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "read robots")
	}
	return out, nil
}

// Space is the size of the floor in tiles.
type Space struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

func (s Space) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Infer sizes the space so it just contains every starting position.
func Infer(robots []Robot) Space {
	var s Space
	for _, r := range robots {
		s.Width = max(s.Width, r.P.X+1)
		s.Height = max(s.Height, r.P.Y+1)
	}
	return s
}

// MaxSide bounds each side of a space so position arithmetic stays within
// int64.
const MaxSide = 1 << 31

// MaxLayouts bounds the Width*Height layouts [EasterEgg] will search.
const MaxLayouts = 1 << 24

// Validate rejects spaces without area or with a side above [MaxSide].
func (s Space) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "space %dx%d has no tiles", s.Width, s.Height)
	}
	if s.Width > MaxSide || s.Height > MaxSide {
		return errors.New(errors.ErrCodeInvalidInput, "space %dx%d exceeds %d tiles per side", s.Width, s.Height, MaxSide)
	}
	return nil
}

// PositionAt returns where r is after the given number of seconds.
func (s Space) PositionAt(r Robot, seconds int64) Vec {
	return Vec{
		X: wrap(r.P.X+wrap(r.V.X, s.Width)*(seconds%s.Width), s.Width),
		Y: wrap(r.P.Y+wrap(r.V.Y, s.Height)*(seconds%s.Height), s.Height),
	}
}

func wrap(v, n int64) int64 {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Quadrants counts robots per quadrant: top-left, bottom-left, top-right,
// bottom-right. Robots on the middle row or column belong to none.
func (s Space) Quadrants(robots []Robot, seconds int64) [4]int64 {
	var q [4]int64
	midX, midY := s.Width/2, s.Height/2
	for _, r := range robots {
		p := s.PositionAt(r, seconds)
		if p.X == midX || p.Y == midY {
			continue
		}
		i := 0
		if p.X > midX {
			i += 2
		}
		if p.Y > midY {
			i++
		}
		q[i]++
	}
	return q
}

// SafetyFactor is the product of the quadrant counts after seconds.
func SafetyFactor(robots []Robot, s Space, seconds int64) (int64, error) {
	if seconds < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "seconds must not be negative, got %d", seconds)
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return safety(robots, s, seconds), nil
}

func safety(robots []Robot, s Space, seconds int64) int64 {
	q := s.Quadrants(robots, seconds)
	return q[0] * q[1] * q[2] * q[3]
}

// EasterEgg returns the earliest second in [0, Width*Height) with the lowest
// safety factor. Positions repeat after Width*Height seconds, so the search
// covers every distinct layout. The range is split across goroutines.
// Spaces with more than [MaxLayouts] tiles are rejected.
func EasterEgg(ctx context.Context, robots []Robot, s Space) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.Width > MaxLayouts/s.Height {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"space %s has more than %d layouts to search", s, MaxLayouts)
	}
	period := s.Width * s.Height
	workers := int64(runtime.GOMAXPROCS(0))
	chunk := (period + workers - 1) / workers

	type best struct{ second, factor int64 }
	results := make([]best, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo, hi := w*chunk, min((w+1)*chunk, period)
		results[w] = best{second: -1}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			b := best{second: -1}
			for sec := lo; sec < hi; sec++ {
				if sec%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if f := safety(robots, s, sec); b.second < 0 || f < b.factor {
					b = best{second: sec, factor: f}
				}
			}
			results[w] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	winner := best{second: -1}
	for _, b := range results {
		if b.second < 0 {
			continue
		}
		if winner.second < 0 || b.factor < winner.factor {
			winner = b
		}
	}
	return winner.second, nil
}

// Render draws the floor after seconds with one digit per occupied tile
// ('+' for ten or more robots) and '.' for empty tiles.
func Render(w io.Writer, robots []Robot, s Space, seconds int64) error {
	if err := s.Validate(); err != nil {
		return err
	}
	counts := make(map[Vec]int, len(robots))
	for _, r := range robots {
		counts[s.PositionAt(r, seconds)]++
	}
	var sb strings.Builder
	for y := range s.Height {
		for x := range s.Width {
			switch n := counts[Vec{x, y}]; {
			case n == 0:
				sb.WriteByte('.')
			case n < 10:
				sb.WriteByte(byte('0' + n))
			default:
				sb.WriteByte('+')
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
