package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/cache"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/metrics"
	"github.com/elektrokombinacija/gridpath/internal/oracle"
)

func checkFlags(fs *flag.FlagSet, cfg *oracle.Config) {
	fs.StringVar(&cfg.GridPath, "grid", cfg.GridPath, "grid file, row-major integers, 0 = obstacle")
	fs.StringVar(&cfg.CasesPath, "cases", cfg.CasesPath, "case table: count, then sx sy gx gy expected per case")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "grid width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "grid height")
	fs.StringVar(&cfg.CacheDir, "cache", cfg.CacheDir, "badger directory for memoized lengths (empty: no cache)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address during the run")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "cases evaluated concurrently")
	fs.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "give up a search after this many expansions (0: never)")
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	cfg := oracle.DefaultConfig()
	fs := newFlagSet("check", stderr)
	checkFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "gridpath check: %v\n", err)
		return errUsage
	}

	logger, err := logutil.InitLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := check(ctx, cfg, logger)
	if report != nil {
		if _, werr := report.WriteTo(stdout); werr != nil {
			return errors.Wrap(werr, "write report")
		}
	}
	if err != nil {
		return err
	}
	if report.Failed() > 0 {
		return errFailed
	}
	return nil
}

// check loads the fixtures named by cfg and runs them. The report may be
// partial when err is a cancellation.
func check(ctx context.Context, cfg oracle.Config, logger *zap.Logger) (*oracle.Report, error) {
	grid, err := fixture.LoadGrid(cfg.GridPath, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	cases, err := fixture.LoadCases(cfg.CasesPath)
	if err != nil {
		return nil, err
	}

	opts := []oracle.Option{oracle.WithLogger(logger), oracle.WithWorkers(cfg.Workers)}
	if cfg.MaxIterations > 0 {
		opts = append(opts, oracle.WithSearchOptions(algo.WithMaxIterations(cfg.MaxIterations)))
	}
	if cfg.CacheDir != "" {
		c, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := c.Close(); err != nil {
				logger.Warn("close cache", zap.Error(err))
			}
		}()
		opts = append(opts, oracle.WithCache(c))
	}
	if cfg.MetricsAddr != "" {
		shutdown, err := serveMetrics(cfg.MetricsAddr, logger)
		if err != nil {
			return nil, err
		}
		defer shutdown()
	}

	logger.Info("checking",
		zap.String("grid", cfg.GridPath),
		zap.String("cases", cfg.CasesPath),
		zap.Int("count", len(cases)),
		zap.Int("walkable", grid.Walkable()))
	return oracle.New(grid, opts...).Run(ctx, cases)
}

// serveMetrics exposes the default registry on addr until shutdown is
// called.
func serveMetrics(addr string, logger *zap.Logger) (shutdown func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", zap.Error(err))
		}
	}, nil
}
