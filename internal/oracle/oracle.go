// Package oracle checks the search engine against a table of expected path
// lengths and reports every case in the reference output format.
package oracle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/cache"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/metrics"
)

// Memo stores finished search outcomes. *cache.Cache implements it.
type Memo interface {
	Get(digest string, q core.Query) (cache.Entry, bool, error)
	Put(digest string, q core.Query, e cache.Entry) error
}

var (
	tracerOnce sync.Once
	tracer     trace.Tracer
)

func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		tracer = otel.Tracer("gridpath/oracle")
	})
	return tracer
}

// Oracle runs case tables against one grid.
type Oracle struct {
	grid    *core.Grid
	digest  string
	memo    Memo
	logger  *zap.Logger
	workers int
	search  []algo.Option
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithCache consults and fills m around every search.
func WithCache(m Memo) Option {
	return func(o *Oracle) { o.memo = m }
}

// WithLogger replaces the background logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Oracle) { o.logger = l }
}

// WithWorkers evaluates up to n cases at once. The grid is shared read-only
// between them.
func WithWorkers(n int) Option {
	return func(o *Oracle) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSearchOptions passes options to every search.
func WithSearchOptions(opts ...algo.Option) Option {
	return func(o *Oracle) { o.search = append(o.search, opts...) }
}

// New creates an Oracle for grid. The grid must not change afterwards.
func New(grid *core.Grid, opts ...Option) *Oracle {
	o := &Oracle{
		grid:    grid,
		digest:  grid.Digest(),
		logger:  logutil.BgLogger(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run evaluates cases and returns the report in case order. When ctx is
// cancelled, Run stops starting new cases and returns the outcomes finished
// so far together with the context error.
func (o *Oracle) Run(ctx context.Context, cases []core.Case) (*Report, error) {
	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run", runID))
	ctx = logutil.WithLogger(ctx, logger)

	ctx, span := getTracer().Start(ctx, "oracle.Run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("grid_digest", o.digest),
			attribute.Int("cases", len(cases)),
			attribute.Int("workers", o.workers),
		),
	)
	defer span.End()

	start := time.Now()
	outcomes := make([]Outcome, len(cases))
	done := make([]bool, len(cases))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = o.evaluate(ctx, cases[i])
				done[i] = true
			}
		}()
	}

	var err error
feed:
	for i := range cases {
		if ctx.Err() != nil {
			err = errors.Wrapf(ctx.Err(), "run %s stopped after %d of %d cases", runID, i, len(cases))
			break
		}
		select {
		case <-ctx.Done():
			err = errors.Wrapf(ctx.Err(), "run %s stopped after %d of %d cases", runID, i, len(cases))
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	report := &Report{RunID: runID, Digest: o.digest, Elapsed: time.Since(start)}
	report.Outcomes = make([]Outcome, 0, len(cases))
	for i := range outcomes {
		if done[i] {
			report.Outcomes = append(report.Outcomes, outcomes[i])
		}
	}

	span.SetAttributes(attribute.Int("failed", report.Failed()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		logger.Warn("oracle run cancelled", zap.Error(err), zap.Int("finished", len(report.Outcomes)))
		return report, err
	}
	logger.Info("oracle run finished",
		zap.Int("cases", len(cases)),
		zap.Int("passed", report.Passed()),
		zap.Int("failed", report.Failed()),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

// evaluate runs one case.
func (o *Oracle) evaluate(ctx context.Context, c core.Case) Outcome {
	_, span := getTracer().Start(ctx, "oracle.Case",
		trace.WithAttributes(
			attribute.String("query", c.Query.String()),
			attribute.Int("expected", c.Expected),
		),
	)
	defer span.End()
	logger := logutil.Logger(ctx)

	out := Outcome{Case: c, Computed: core.NoPath}
	begin := time.Now()

	if entry, ok := o.lookup(logger, c.Query); ok {
		out.Computed = entry.Length
		out.Cached = true
	} else {
		res, err := algo.Search(o.grid, c.Query, o.search...)
		out.Iterations = res.Iterations
		switch {
		case err == nil:
			out.Computed = res.Length
			metrics.ObserveSearch(metrics.ResultFound, time.Since(begin), res.Iterations, res.Nodes)
			o.store(logger, c.Query, cache.Entry{Length: res.Length, Found: true})
		case errors.Is(err, algo.ErrNoPath):
			metrics.ObserveSearch(metrics.ResultNoPath, time.Since(begin), res.Iterations, res.Nodes)
			o.store(logger, c.Query, cache.Entry{Length: core.NoPath})
		case errors.Is(err, algo.ErrIterationLimit):
			metrics.ObserveSearch(metrics.ResultLimit, time.Since(begin), res.Iterations, res.Nodes)
			out.Err = err
		default:
			metrics.ObserveSearch(metrics.ResultInvalid, time.Since(begin), 0, 0)
			out.Err = err
		}
	}

	switch {
	case out.Err != nil:
		out.Verdict = VerdictError
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, "search failed")
		logger.Warn("case failed", zap.Stringer("query", c.Query), zap.Error(out.Err))
	case out.Computed == c.Expected:
		out.Verdict = VerdictOK
	default:
		out.Verdict = VerdictMismatch
		span.SetStatus(codes.Error, "mismatch")
		logger.Warn("case mismatch",
			zap.Stringer("query", c.Query),
			zap.Int("expected", c.Expected),
			zap.Int("computed", out.Computed))
	}
	out.Duration = time.Since(begin)
	span.SetAttributes(
		attribute.Int("computed", out.Computed),
		attribute.Bool("cached", out.Cached),
	)
	metrics.OracleCases.WithLabelValues(out.Verdict.String()).Inc()
	logger.Debug("case evaluated",
		zap.Stringer("query", c.Query),
		zap.Int("computed", out.Computed),
		zap.Int("iterations", out.Iterations),
		zap.Bool("cached", out.Cached))
	return out
}

func (o *Oracle) lookup(logger *zap.Logger, q core.Query) (cache.Entry, bool) {
	if o.memo == nil {
		return cache.Entry{}, false
	}
	e, ok, err := o.memo.Get(o.digest, q)
	if err != nil {
		logger.Warn("cache read error", zap.Stringer("query", q), zap.Error(err))
		return cache.Entry{}, false
	}
	return e, ok
}

func (o *Oracle) store(logger *zap.Logger, q core.Query, e cache.Entry) {
	if o.memo == nil {
		return
	}
	if err := o.memo.Put(o.digest, q, e); err != nil {
		logger.Warn("cache write error", zap.Stringer("query", q), zap.Error(err))
	}
}
