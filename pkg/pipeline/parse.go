package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/observability"
	"github.com/matzehuels/slabtower/pkg/settle"
)

// Parse reads the bricks of a snapshot.
func (r *Runner) Parse(ctx context.Context, input []byte) ([]brick.Brick, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(input))
	start := time.Now()

	bricks, err := brick.ParseAll(bytes.NewReader(input))
	elapsed := time.Since(start)
	hooks.OnParseComplete(ctx, len(bricks), elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("parsed snapshot", "bricks", len(bricks), "duration", elapsed)
	return bricks, nil
}

// Settle drops the bricks until they rest.
func (r *Runner) Settle(ctx context.Context, bricks []brick.Brick) (*settle.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnSettleStart(ctx, len(bricks))
	start := time.Now()

	res, err := settle.Settle(bricks)
	elapsed := time.Since(start)
	moved := 0
	if res != nil {
		moved = res.Moved
	}
	hooks.OnSettleComplete(ctx, moved, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("settled bricks",
		"bricks", len(res.Bricks),
		"moved", res.Moved,
		"height", res.Graph.MaxHeight(),
		"duration", elapsed)
	return res, nil
}
