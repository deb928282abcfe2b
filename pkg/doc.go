// Package pkg holds the libraries behind slabtower.
//
// # Overview
//
// Slabtower takes a snapshot of falling bricks, lets every brick settle and
// answers questions about the resulting stack: which bricks can be removed
// without anything moving, and how many bricks fall if one is removed.
//
// The packages form three layers:
//
//  1. Core: [brick] (model and parser), [grid] (occupancy), [settle]
//     (gravity), [support] (who rests on whom) and [query] (removal and
//     cascade questions).
//  2. Orchestration: [pipeline] runs parse, settle and query with caching
//     ([cache]) and persistence ([store]), producing a [report].
//  3. Output: [render] draws stacks as text, SVG or graphs.
//
// [robots] is a separate simulation of robots moving on a wrapping floor,
// run through the same pipeline runner and cache.
//
// # Data Flow
//
//	snapshot text
//	     ↓ brick.ParseAll
//	[]brick.Brick
//	     ↓ settle.Settle
//	settle.Result (bricks, grid, support graph)
//	     ↓ query.Analyze
//	query.Summary
//	     ↓ report.Build
//	report.Report → cache, store, CLI, HTTP
//
// # Supporting Packages
//
//   - [config]: TOML configuration
//   - [errors]: error codes shared by the CLI and the HTTP API
//   - [httputil]: JSON responses for the HTTP API
//   - [observability]: hooks for stage, cache and request events
//   - [buildinfo]: version information
//
// [brick]: github.com/matzehuels/slabtower/pkg/brick
// [grid]: github.com/matzehuels/slabtower/pkg/grid
// [settle]: github.com/matzehuels/slabtower/pkg/settle
// [support]: github.com/matzehuels/slabtower/pkg/support
// [query]: github.com/matzehuels/slabtower/pkg/query
// [pipeline]: github.com/matzehuels/slabtower/pkg/pipeline
// [cache]: github.com/matzehuels/slabtower/pkg/cache
// [store]: github.com/matzehuels/slabtower/pkg/store
// [report]: github.com/matzehuels/slabtower/pkg/report
// [render]: github.com/matzehuels/slabtower/pkg/render
// [robots]: github.com/matzehuels/slabtower/pkg/robots
// [config]: github.com/matzehuels/slabtower/pkg/config
// [errors]: github.com/matzehuels/slabtower/pkg/errors
// [httputil]: github.com/matzehuels/slabtower/pkg/httputil
// [observability]: github.com/matzehuels/slabtower/pkg/observability
// [buildinfo]: github.com/matzehuels/slabtower/pkg/buildinfo
package pkg
