package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/settle"
)

const canonical = `1,0,1~1,2,1
0,0,2~2,0,2
0,2,3~2,2,3
0,0,4~0,2,4
2,0,5~2,2,5
0,1,6~2,1,6
1,1,8~1,1,9`

func build(t *testing.T, detailed bool) *Report {
	t.Helper()
	bricks, err := brick.ParseAll(strings.NewReader(canonical))
	if err != nil {
		t.Fatalf("ParseAll() error: %v", err)
	}
	res, err := settle.Settle(bricks)
	if err != nil {
		t.Fatalf("Settle() error: %v", err)
	}
	return Build(res, query.Analyze(res.Graph), "abc123", detailed)
}

func TestBuild(t *testing.T) {
	r := build(t, false)

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", r.ID, err)
	}
	if r.BrickCount != 7 || r.Removable != 5 || r.CascadeSum != 7 {
		t.Errorf("Build() = %d bricks, %d removable, cascade %d", r.BrickCount, r.Removable, r.CascadeSum)
	}
	if r.MaxHeight != 6 || r.Moved != 5 {
		t.Errorf("MaxHeight = %d, Moved = %d, want 6 and 5", r.MaxHeight, r.Moved)
	}
	if r.Bricks != nil {
		t.Error("summary report should not carry per-brick entries")
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestBuildDetailed(t *testing.T) {
	r := build(t, true)
	if len(r.Bricks) != 7 {
		t.Fatalf("len(Bricks) = %d, want 7", len(r.Bricks))
	}
	want := BrickReport{
		ID:         6,
		Start:      "1,1,5",
		End:        "1,1,6",
		Bottom:     5,
		Top:        6,
		Drop:       3,
		Supporters: []int{5},
		Removable:  true,
	}
	if diff := cmp.Diff(want, r.Bricks[6]); diff != "" {
		t.Errorf("Bricks[6] mismatch (-want +got):\n%s", diff)
	}
	if a := r.Bricks[0]; a.Removable || a.Cascade != 6 {
		t.Errorf("Bricks[0] = %+v, want not removable with cascade 6", a)
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	r := build(t, true)
	var buf bytes.Buffer
	if err := Encode(&buf, r, FormatJSON); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, build(t, false), FormatYAML); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for _, want := range []string{"removable: 5", "cascade_sum: 7", "input_hash: abc123"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, build(t, false), "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal() error = %v, want INVALID_FORMAT", err)
	}
}
