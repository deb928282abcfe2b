package pipeline

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/slabtower/pkg/cache"
	"github.com/matzehuels/slabtower/pkg/observability"
	"github.com/matzehuels/slabtower/pkg/robots"
)

// RobotsOptions configure a robots run. A zero Width or Height infers the
// space from the robots' starting positions.
type RobotsOptions struct {
	Width     int64
	Height    int64
	Seconds   int64
	EasterEgg bool
}

// RobotsResult is the outcome of [Runner.Robots].
type RobotsResult struct {
	Robots       int          `json:"robots"`
	Space        robots.Space `json:"space"`
	Seconds      int64        `json:"seconds"`
	Quadrants    [4]int64     `json:"quadrants"`
	SafetyFactor int64        `json:"safety_factor"`
	// EasterEgg is the earliest second with the lowest safety factor, or -1
	// when the search was not requested.
	EasterEgg int64 `json:"easter_egg"`
}

// Robots computes the safety factor of a robots list and, optionally, the
// easter-egg second. Results are cached like reports.
func (r *Runner) Robots(ctx context.Context, input []byte, opts RobotsOptions) (*RobotsResult, bool, error) {
	list, err := robots.ParseAll(bytes.NewReader(input))
	if err != nil {
		return nil, false, err
	}
	space := robots.Space{Width: opts.Width, Height: opts.Height}
	if space.Width == 0 || space.Height == 0 {
		inferred := robots.Infer(list)
		space.Width = cmp.Or(space.Width, inferred.Width)
		space.Height = cmp.Or(space.Height, inferred.Height)
	}

	key := r.Keyer.RobotsKey(cache.Hash(input), cache.RobotsKeyOpts{
		Width:     space.Width,
		Height:    space.Height,
		Seconds:   opts.Seconds,
		EasterEgg: opts.EasterEgg,
	})
	if res, ok := r.cachedRobots(ctx, key); ok {
		return res, true, nil
	}

	start := time.Now()
	factor, err := robots.SafetyFactor(list, space, opts.Seconds)
	if err != nil {
		return nil, false, err
	}
	res := &RobotsResult{
		Robots:       len(list),
		Space:        space,
		Seconds:      opts.Seconds,
		Quadrants:    space.Quadrants(list, opts.Seconds),
		SafetyFactor: factor,
		EasterEgg:    -1,
	}
	if opts.EasterEgg {
		if res.EasterEgg, err = robots.EasterEgg(ctx, list, space); err != nil {
			return nil, false, err
		}
	}
	r.Logger.Info("simulated robots",
		"robots", len(list),
		"space", space,
		"safety_factor", factor,
		"duration", time.Since(start))

	r.storeRobots(ctx, key, res)
	return res, false, nil
}

func (r *Runner) cachedRobots(ctx context.Context, key string) (*RobotsResult, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "robots")
		return nil, false
	}
	var res RobotsResult
	if err := json.Unmarshal(data, &res); err != nil {
		r.Logger.Debug("discarding unreadable cached robots result", "err", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "robots")
	return &res, true
}

func (r *Runner) storeRobots(ctx context.Context, key string, res *RobotsResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "robots", len(data))
}
