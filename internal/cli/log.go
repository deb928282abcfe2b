package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Settled 1432 bricks (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// debugHooks logs pipeline stage boundaries. Registered with --verbose.
type debugHooks struct {
	logger *log.Logger
}

func (h *debugHooks) OnParseStart(_ context.Context, inputSize int) {
	h.logger.Debug("parse start", "bytes", inputSize)
}

func (h *debugHooks) OnParseComplete(_ context.Context, bricks int, d time.Duration, err error) {
	h.logger.Debug("parse done", "bricks", bricks, "duration", d, "err", err)
}

func (h *debugHooks) OnSettleStart(_ context.Context, bricks int) {
	h.logger.Debug("settle start", "bricks", bricks)
}

func (h *debugHooks) OnSettleComplete(_ context.Context, moved int, d time.Duration, err error) {
	h.logger.Debug("settle done", "moved", moved, "duration", d, "err", err)
}

func (h *debugHooks) OnQueryStart(_ context.Context, bricks int) {
	h.logger.Debug("query start", "bricks", bricks)
}

func (h *debugHooks) OnQueryComplete(_ context.Context, removable, cascadeSum int, d time.Duration) {
	h.logger.Debug("query done", "removable", removable, "cascade_sum", cascadeSum, "duration", d)
}
