// Package pipeline runs the parse → settle → query analysis for slabtower.
//
// Both the CLI and the HTTP server go through a [Runner] so that caching,
// persistence, logging and observability hooks behave the same everywhere.
//
// # Stages
//
//  1. Parse: read one brick per line from the snapshot
//  2. Settle: drop every brick and derive the support graph
//  3. Query: count removable bricks and sum the cascades
//
// The result of a full run is a [report.Report]. Reports are cached under
// the hash of the raw input, so analysing the same snapshot twice skips all
// three stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	rep, hit, err := runner.Analyze(ctx, input, pipeline.Options{Detailed: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Removable, rep.CascadeSum)
//
// Stages can also be run individually; [Runner.Prepare] parses and settles
// without querying, for renderers that only need the settled stack.
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/slabtower/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultTTL is how long cached reports stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// =============================================================================
// Output Formats
// =============================================================================

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormats lists the report output formats.
var ValidFormats = []string{FormatTable, FormatJSON, FormatYAML}

// ValidateFormat checks that format is a known report output format.
func ValidateFormat(format string) error {
	if slices.Contains(ValidFormats, format) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %v)", format, ValidFormats)
}

// =============================================================================
// Options
// =============================================================================

// Options control a single analysis.
type Options struct {
	// Detailed adds a per-brick breakdown to the report.
	Detailed bool
	// Save persists the report in the runner's store.
	Save bool
	// Refresh ignores any cached report and overwrites it.
	Refresh bool
	// TTL overrides DefaultTTL for the cached report.
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return DefaultTTL
}
