// Package report defines the serialized result of analysing a snapshot.
//
// A [Report] is what the pipeline caches, what the store persists and what
// the CLI and HTTP API print. It carries the two headline numbers (how many
// bricks are safely removable and the total cascade size), aggregate cascade
// statistics and, when requested, a per-brick breakdown.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/settle"
)

// Output formats understood by [Encode].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the canonical serialization of an analysis.
type Report struct {
	ID         string        `json:"id" yaml:"id" bson:"_id"`
	CreatedAt  time.Time     `json:"created_at" yaml:"created_at" bson:"created_at"`
	InputHash  string        `json:"input_hash" yaml:"input_hash" bson:"input_hash"`
	BrickCount int           `json:"brick_count" yaml:"brick_count" bson:"brick_count"`
	Moved      int           `json:"moved" yaml:"moved" bson:"moved"`
	MaxHeight  int           `json:"max_height" yaml:"max_height" bson:"max_height"`
	Removable  int           `json:"removable" yaml:"removable" bson:"removable"`
	CascadeSum int           `json:"cascade_sum" yaml:"cascade_sum" bson:"cascade_sum"`
	Stats      query.Stats   `json:"stats" yaml:"stats" bson:"stats"`
	Bricks     []BrickReport `json:"bricks,omitempty" yaml:"bricks,omitempty" bson:"bricks,omitempty"`
}

// BrickReport describes one settled brick.
type BrickReport struct {
	ID         int    `json:"id" yaml:"id" bson:"id"`
	Start      string `json:"start" yaml:"start" bson:"start"` // "x,y,z" after settling
	End        string `json:"end" yaml:"end" bson:"end"`
	Bottom     int    `json:"bottom" yaml:"bottom" bson:"bottom"`
	Top        int    `json:"top" yaml:"top" bson:"top"`
	Drop       int    `json:"drop,omitempty" yaml:"drop,omitempty" bson:"drop,omitempty"`
	Supporters []int  `json:"supporters,omitempty" yaml:"supporters,omitempty" bson:"supporters,omitempty"`
	Supported  []int  `json:"supported,omitempty" yaml:"supported,omitempty" bson:"supported,omitempty"`
	Removable  bool   `json:"removable" yaml:"removable" bson:"removable"`
	Cascade    int    `json:"cascade" yaml:"cascade" bson:"cascade"`
}

// Build assembles a report from a settled stack and its query summary.
// Per-brick entries are included only when detailed is set.
func Build(res *settle.Result, sum query.Summary, inputHash string, detailed bool) *Report {
	r := &Report{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		InputHash:  inputHash,
		BrickCount: len(res.Bricks),
		Moved:      res.Moved,
		MaxHeight:  res.Graph.MaxHeight(),
		Removable:  sum.Removable,
		CascadeSum: sum.CascadeSum,
		Stats:      sum.Stats,
	}
	if !detailed {
		return r
	}
	r.Bricks = make([]BrickReport, len(sum.Bricks))
	for i, bs := range sum.Bricks {
		b := res.Brick(bs.ID)
		r.Bricks[i] = BrickReport{
			ID:         b.ID,
			Start:      b.Start.String(),
			End:        b.End.String(),
			Bottom:     b.Bottom(),
			Top:        b.Top(),
			Drop:       res.Drop[b.ID],
			Supporters: res.Graph.Supporters(b.ID),
			Supported:  res.Graph.Supported(b.ID),
			Removable:  bs.Removable,
			Cascade:    bs.Cascade,
		}
	}
	return r
}

// Encode writes r in the given format.
func Encode(w io.Writer, r *Report, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown report format %q (want json or yaml)", format)
}

// Decode reads a JSON report.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return &r, nil
}

// Marshal returns the JSON encoding of r, as stored by caches.
func Marshal(r *Report) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal report")
	}
	return data, nil
}

// Unmarshal parses a report produced by [Marshal].
func Unmarshal(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal report")
	}
	return &r, nil
}
