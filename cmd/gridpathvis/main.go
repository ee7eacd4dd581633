// Command gridpathvis replays a grid search step by step in a window.
package main

import (
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/vis"
)

func main() {
	gridPath := flag.String("grid", "", "grid file (empty: built-in 10x10 grid with a wall)")
	width := flag.Int("width", core.DefaultWidth, "grid width")
	height := flag.Int("height", core.DefaultHeight, "grid height")
	sx := flag.Int("sx", 0, "start x")
	sy := flag.Int("sy", 0, "start y")
	gx := flag.Int("gx", core.DefaultWidth-1, "goal x")
	gy := flag.Int("gy", 0, "goal y")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := logutil.InitLogger(*logLevel)
	if err != nil {
		log.Fatal(err)
	}

	grid := defaultGrid()
	if *gridPath != "" {
		grid, err = fixture.LoadGrid(*gridPath, *width, *height)
		if err != nil {
			logger.Fatal("load grid", zap.Error(err))
		}
	}
	q := core.NewQuery(*sx, *sy, *gx, *gy)
	if err := q.Validate(grid); err != nil {
		logger.Fatal("invalid query", zap.Error(err))
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("gridpath"),
			app.Size(unit.Dp(1000), unit.Dp(900)),
		)

		application := vis.NewApp(grid, q)
		if err := application.Run(window); err != nil {
			logger.Fatal("viewer", zap.Error(err))
		}
		_ = logger.Sync()
		os.Exit(0)
	}()
	app.Main()
}

// defaultGrid is open except for a wall at x=5 with a gap at y=5.
func defaultGrid() *core.Grid {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for y := 0; y < g.Height; y++ {
		if y != 5 {
			g.Set(5, y, false)
		}
	}
	return g
}
