// Package main runs the oracle over generated grids and collects timing.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/cache"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/oracle"
)

// Manifest is the subset of gen_grids' manifest this runner needs.
type Manifest struct {
	Name   string `json:"name"`
	Params struct {
		Seed    int64   `json:"seed"`
		Width   int     `json:"width"`
		Height  int     `json:"height"`
		Density float64 `json:"density"`
	} `json:"params"`
	GridFile  string `json:"grid_file"`
	CasesFile string `json:"cases_file"`
}

// BenchmarkResult stores one oracle run over one grid.
type BenchmarkResult struct {
	Timestamp  string
	CommitHash string
	GoVersion  string
	OS         string
	Arch       string
	Grid       string
	GridSize   string
	Density    float64
	Workers    int
	Cached     bool
	Cases      int
	Passed     int
	Failed     int
	RuntimeMs  float64
	MeanCaseUs float64
	MaxCaseUs  float64
	Iterations int
	CacheHits  int
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", path)
	}
	return &m, nil
}

// runGrid checks one grid's case table and summarises the report.
func runGrid(ctx context.Context, dir string, m *Manifest, workers int, memo oracle.Memo, commit string) (*BenchmarkResult, error) {
	grid, err := fixture.LoadGrid(filepath.Join(dir, m.GridFile), m.Params.Width, m.Params.Height)
	if err != nil {
		return nil, err
	}
	cases, err := fixture.LoadCases(filepath.Join(dir, m.CasesFile))
	if err != nil {
		return nil, err
	}

	opts := []oracle.Option{oracle.WithWorkers(workers)}
	if memo != nil {
		opts = append(opts, oracle.WithCache(memo))
	}
	report, err := oracle.New(grid, opts...).Run(ctx, cases)
	if err != nil {
		return nil, err
	}

	r := &BenchmarkResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: commit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Grid:       m.Name,
		GridSize:   fmt.Sprintf("%dx%d", grid.Width, grid.Height),
		Density:    m.Params.Density,
		Workers:    workers,
		Cached:     memo != nil,
		Cases:      len(report.Outcomes),
		Passed:     report.Passed(),
		Failed:     report.Failed(),
		RuntimeMs:  float64(report.Elapsed.Microseconds()) / 1000.0,
	}
	var total time.Duration
	for _, o := range report.Outcomes {
		total += o.Duration
		r.MaxCaseUs = max(r.MaxCaseUs, float64(o.Duration.Nanoseconds())/1000.0)
		r.Iterations += o.Iterations
		if o.Cached {
			r.CacheHits++
		}
	}
	if r.Cases > 0 {
		r.MeanCaseUs = float64(total.Nanoseconds()) / 1000.0 / float64(r.Cases)
	}
	return r, nil
}

func writeCSV(results []*BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"grid", "grid_size", "density", "workers", "cached",
		"cases", "passed", "failed", "runtime_ms",
		"mean_case_us", "max_case_us", "iterations", "cache_hits",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Grid, r.GridSize, fmt.Sprintf("%.2f", r.Density),
			fmt.Sprintf("%d", r.Workers), fmt.Sprintf("%t", r.Cached),
			fmt.Sprintf("%d", r.Cases), fmt.Sprintf("%d", r.Passed), fmt.Sprintf("%d", r.Failed),
			fmt.Sprintf("%.3f", r.RuntimeMs),
			fmt.Sprintf("%.3f", r.MeanCaseUs), fmt.Sprintf("%.3f", r.MaxCaseUs),
			fmt.Sprintf("%d", r.Iterations), fmt.Sprintf("%d", r.CacheHits),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func printSummary(results []*BenchmarkResult) {
	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-28s %8s %6s %6s %12s %12s %10s\n", "Grid", "Cases", "Pass", "Fail", "Runtime(ms)", "Mean(us)", "CacheHits")
	fmt.Println(strings.Repeat("-", 88))
	for _, r := range results {
		fmt.Printf("%-28s %8d %6d %6d %12.3f %12.3f %10d\n",
			r.Grid, r.Cases, r.Passed, r.Failed, r.RuntimeMs, r.MeanCaseUs, r.CacheHits)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "Directory with gen_grids output")
	outputFile := flag.String("output", "results.csv", "CSV output file")
	workers := flag.Int("workers", runtime.NumCPU(), "Cases evaluated concurrently")
	runs := flag.Int("runs", 1, "Runs per grid")
	cacheDir := flag.String("cache", "", "Badger cache directory shared by all runs (empty: no cache)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	logger, err := logutil.InitLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	paths, err := filepath.Glob(filepath.Join(*inputDir, "*.json"))
	if err != nil {
		logger.Fatal("find manifests", zap.Error(err))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		logger.Fatal("no manifests found", zap.String("dir", *inputDir))
	}

	var memo oracle.Memo
	if *cacheDir != "" {
		c, err := cache.Open(*cacheDir)
		if err != nil {
			logger.Fatal("open cache", zap.Error(err))
		}
		defer c.Close()
		memo = c
	}

	ctx := context.Background()
	commit := getGitCommit()
	var results []*BenchmarkResult
	for _, path := range paths {
		m, err := loadManifest(path)
		if err != nil {
			logger.Warn("skip manifest", zap.String("path", path), zap.Error(err))
			continue
		}
		for i := 0; i < *runs; i++ {
			r, err := runGrid(ctx, *inputDir, m, *workers, memo, commit)
			if err != nil {
				logger.Error("run grid", zap.String("grid", m.Name), zap.Error(err))
				break
			}
			logger.Info("grid done", zap.String("grid", m.Name), zap.Int("run", i+1),
				zap.Int("failed", r.Failed), zap.Float64("runtime_ms", r.RuntimeMs))
			results = append(results, r)
		}
	}

	if err := writeCSV(results, *outputFile); err != nil {
		logger.Fatal("write results", zap.Error(err))
	}
	printSummary(results)
	fmt.Printf("\nResults written to %s\n", *outputFile)
}
