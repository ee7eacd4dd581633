package oracle

import (
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Config holds the settings of one oracle run as resolved from flags.
type Config struct {
	GridPath      string
	CasesPath     string
	Width         int
	Height        int
	CacheDir      string // empty: no cache
	MetricsAddr   string // empty: no metrics endpoint
	LogLevel      string
	Workers       int
	MaxIterations int // 0: unlimited
}

// DefaultConfig returns the settings of the reference fixtures.
func DefaultConfig() Config {
	return Config{
		GridPath:  "grid.txt",
		CasesPath: "data.txt",
		Width:     core.DefaultWidth,
		Height:    core.DefaultHeight,
		LogLevel:  "info",
		Workers:   1,
	}
}

// Validate checks the config for obviously wrong values.
func (c Config) Validate() error {
	if c.GridPath == "" {
		return errors.New("grid path is required")
	}
	if c.CasesPath == "" {
		return errors.New("cases path is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid grid size %dx%d", c.Width, c.Height)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxIterations < 0 {
		return errors.Errorf("negative iteration limit %d", c.MaxIterations)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}
