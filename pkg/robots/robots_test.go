package robots

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/slabtower/pkg/errors"
)

const example = `p=0,4 v=3,-3
p=6,3 v=-1,-3
p=10,3 v=-1,2
p=2,0 v=2,-1
p=0,0 v=1,3
p=3,0 v=-2,-2
p=7,6 v=-1,-3
p=3,0 v=-1,-2
p=9,3 v=2,3
p=7,3 v=-1,2
p=2,4 v=2,-3
p=9,5 v=-3,-3`

func parseExample(t *testing.T) []Robot {
	t.Helper()
	robots, err := ParseAll(strings.NewReader(example))
	if err != nil {
		t.Fatalf("ParseAll() error: %v", err)
	}
	return robots
}

func TestParse(t *testing.T) {
	r, err := Parse("p=2,4 v=2,-3")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if want := (Robot{P: Vec{2, 4}, V: Vec{2, -3}}); r != want {
		t.Errorf("Parse() = %v, want %v", r, want)
	}
	if r.String() != "p=2,4 v=2,-3" {
		t.Errorf("String() = %q", r.String())
	}
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{
		"p=2,4",
		"q=2,4 v=1,1",
		"p=2;4 v=1,1",
		"p=2,x v=1,1",
		"p=2,4 v=1,1 extra",
	} {
		if _, err := Parse(line); !errors.Is(err, errors.ErrCodeMalformedInput) {
			t.Errorf("Parse(%q) error = %v, want MALFORMED_INPUT", line, err)
		}
	}
}

func TestInfer(t *testing.T) {
	if got := Infer(parseExample(t)); got != (Space{Width: 11, Height: 7}) {
		t.Errorf("Infer() = %+v, want 11x7", got)
	}
}

func TestPositionAt(t *testing.T) {
	s := Space{Width: 11, Height: 7}
	r := Robot{P: Vec{2, 4}, V: Vec{2, -3}}
	want := []Vec{{2, 4}, {4, 1}, {6, 5}, {8, 2}, {10, 6}, {1, 3}}
	for sec, w := range want {
		if got := s.PositionAt(r, int64(sec)); got != w {
			t.Errorf("PositionAt(%d) = %v, want %v", sec, got, w)
		}
	}
}

func TestPositionAtLargeVelocity(t *testing.T) {
	s := Space{Width: 5, Height: 5}
	r := Robot{P: Vec{0, 0}, V: Vec{-12, 23}}
	if got := s.PositionAt(r, 1); got != (Vec{3, 3}) {
		t.Errorf("PositionAt() = %v, want 3,3", got)
	}
}

func TestSafetyFactor(t *testing.T) {
	robots := parseExample(t)
	s := Infer(robots)

	if q := s.Quadrants(robots, 100); q != [4]int64{1, 4, 3, 1} {
		t.Errorf("Quadrants(100) = %v, want [1 4 3 1]", q)
	}
	got, err := SafetyFactor(robots, s, 100)
	if err != nil {
		t.Fatalf("SafetyFactor() error: %v", err)
	}
	if got != 12 {
		t.Errorf("SafetyFactor() = %d, want 12", got)
	}
}

func TestSafetyFactorErrors(t *testing.T) {
	robots := parseExample(t)
	if _, err := SafetyFactor(robots, Infer(robots), -1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative seconds error = %v, want INVALID_INPUT", err)
	}
	if _, err := SafetyFactor(nil, Space{}, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty space error = %v, want INVALID_INPUT", err)
	}
}

func TestSpaceValidate(t *testing.T) {
	tests := []struct {
		space Space
		ok    bool
	}{
		{Space{Width: 11, Height: 7}, true},
		{Space{Width: MaxSide, Height: 1}, true},
		{Space{Width: 0, Height: 7}, false},
		{Space{Width: 11, Height: -1}, false},
		{Space{Width: MaxSide + 1, Height: 1}, false},
		{Space{Width: 1, Height: 1 << 40}, false},
	}
	for _, tt := range tests {
		err := tt.space.Validate()
		if tt.ok && err != nil {
			t.Errorf("Validate(%v) error: %v", tt.space, err)
		}
		if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Validate(%v) error = %v, want INVALID_INPUT", tt.space, err)
		}
	}
}

func TestRender(t *testing.T) {
	robots := parseExample(t)
	var buf bytes.Buffer
	if err := Render(&buf, robots, Infer(robots), 100); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := `......2..1.
...........
1..........
.11........
.....1.....
...12......
.1....1....
`
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestEasterEgg(t *testing.T) {
	robots := parseExample(t)
	s := Infer(robots)

	got, err := EasterEgg(context.Background(), robots, s)
	if err != nil {
		t.Fatalf("EasterEgg() error: %v", err)
	}

	// Sequential reference search.
	want, best := int64(-1), int64(0)
	for sec := range s.Width * s.Height {
		if f := safety(robots, s, sec); want < 0 || f < best {
			want, best = sec, f
		}
	}
	if got != want {
		t.Errorf("EasterEgg() = %d, want %d", got, want)
	}
}

func TestEasterEggCanceled(t *testing.T) {
	robots := []Robot{{P: Vec{0, 0}, V: Vec{1, 1}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := EasterEgg(ctx, robots, Space{Width: 2048, Height: 2048}); err == nil {
		t.Error("EasterEgg() on canceled context should fail")
	}
}

func TestEasterEggTooManyLayouts(t *testing.T) {
	robots := parseExample(t)
	for _, s := range []Space{
		{Width: 1 << 30, Height: 1 << 30},
		{Width: MaxLayouts, Height: 2},
	} {
		got, err := EasterEgg(context.Background(), robots, s)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("EasterEgg(%v) = %d, %v, want INVALID_INPUT", s, got, err)
		}
	}
}

func TestEasterEggLargestSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("searches every layout of a large space")
	}
	robots := []Robot{{P: Vec{0, 0}, V: Vec{1, 1}}}
	got, err := EasterEgg(context.Background(), robots, Space{Width: MaxLayouts, Height: 1})
	if err != nil {
		t.Fatalf("EasterEgg() error: %v", err)
	}
	if got != 0 {
		t.Errorf("EasterEgg() = %d, want 0", got)
	}
}
