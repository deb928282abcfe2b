package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slabtower/pkg/cache"
	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/observability"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/report"
	"github.com/matzehuels/slabtower/pkg/settle"
	"github.com/matzehuels/slabtower/pkg/store"
)

// Runner encapsulates pipeline execution with caching and persistence.
//
// The Runner holds no per-analysis state, so one Runner can serve many
// goroutines as long as its Cache and Store are safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store // nil disables Options.Save
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer means cache.DefaultKeyer and a
// nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  st,
		Logger: logger,
	}
}

// Analyze runs the full pipeline on a snapshot and reports whether the
// result came from the cache.
//
// A cached report is returned as stored, including its original ID and
// creation time. Cache failures are logged and never fail the analysis.
func (r *Runner) Analyze(ctx context.Context, input []byte, opts Options) (*report.Report, bool, error) {
	if opts.Save && r.Store == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidConfig, "no report store configured")
	}

	inputHash := cache.Hash(input)
	key := r.Keyer.ReportKey(inputHash, cache.ReportKeyOpts{Detailed: opts.Detailed})

	rep, hit := r.cachedReport(ctx, key, opts)
	if !hit {
		res, err := r.Prepare(ctx, input)
		if err != nil {
			return nil, false, err
		}
		sum, err := r.Query(ctx, res)
		if err != nil {
			return nil, false, err
		}
		rep = report.Build(res, sum, inputHash, opts.Detailed)
		r.storeCached(ctx, key, rep, opts)
	}

	if opts.Save {
		if err := r.Store.Save(ctx, rep); err != nil {
			return nil, hit, err
		}
		r.Logger.Info("saved report", "id", rep.ID)
	}
	return rep, hit, nil
}

// Prepare parses and settles a snapshot.
func (r *Runner) Prepare(ctx context.Context, input []byte) (*settle.Result, error) {
	bricks, err := r.Parse(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Settle(ctx, bricks)
}

// Query validates the support graph and runs every query over it.
func (r *Runner) Query(ctx context.Context, res *settle.Result) (query.Summary, error) {
	if err := res.Graph.Validate(); err != nil {
		return query.Summary{}, errors.Wrap(errors.ErrCodeInternal, err, "support graph")
	}
	if err := ctx.Err(); err != nil {
		return query.Summary{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnQueryStart(ctx, res.Graph.NodeCount())
	start := time.Now()
	sum := query.Analyze(res.Graph)
	elapsed := time.Since(start)
	hooks.OnQueryComplete(ctx, sum.Removable, sum.CascadeSum, elapsed)

	r.Logger.Info("queried support graph",
		"removable", sum.Removable,
		"cascade_sum", sum.CascadeSum,
		"duration", elapsed)
	return sum, nil
}

func (r *Runner) cachedReport(ctx context.Context, key string, opts Options) (*report.Report, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "report")
		return nil, false
	}
	rep, err := report.Unmarshal(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cached report", "err", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "report")
	r.Logger.Debug("using cached report", "id", rep.ID)
	return rep, true
}

func (r *Runner) storeCached(ctx context.Context, key string, rep *report.Report, opts Options) {
	data, err := report.Marshal(rep)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, opts.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "report", len(data))
}
