// Package render draws a search snapshot as a raster image.
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Palette is the set of colours used by Search.
type Palette struct {
	Background color.Color
	Walkable   color.Color
	Blocked    color.Color
	Open       color.Color
	Closed     color.Color
	Current    color.Color
	Start      color.Color
	Goal       color.Color
	Lines      color.Color
}

// DefaultPalette is a light palette suited to printed output.
var DefaultPalette = Palette{
	Background: color.White,
	Walkable:   color.RGBA{235, 235, 235, 255},
	Blocked:    color.RGBA{45, 45, 50, 255},
	Open:       color.RGBA{130, 200, 255, 255},
	Closed:     color.RGBA{255, 205, 120, 255},
	Current:    color.RGBA{230, 120, 30, 255},
	Start:      color.RGBA{40, 180, 70, 255},
	Goal:       color.RGBA{50, 80, 220, 255},
	Lines:      color.RGBA{200, 200, 200, 255},
}

// Search draws grid with the open and closed sets of snap, the last promoted
// cell and the query endpoints. Each cell is scale pixels wide; y = 0 is the
// top row.
func Search(snap algo.StepSnapshot, grid *core.Grid, scale int) image.Image {
	return SearchWith(DefaultPalette, snap, grid, scale)
}

// SearchWith is Search with a custom palette.
func SearchWith(p Palette, snap algo.StepSnapshot, grid *core.Grid, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	s := float64(scale)
	dc := gg.NewContext(grid.Width*scale, grid.Height*scale)
	dc.SetColor(p.Background)
	dc.Clear()

	cell := func(x, y int, c color.Color) {
		dc.SetColor(c)
		dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
		dc.Fill()
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.IsWalkable(x, y) {
				cell(x, y, p.Walkable)
			} else {
				cell(x, y, p.Blocked)
			}
		}
	}
	for _, c := range snap.Closed {
		cell(c.X, c.Y, p.Closed)
	}
	for _, c := range snap.Open {
		cell(c.X, c.Y, p.Open)
	}
	if len(snap.Closed) > 0 {
		cell(snap.Current.X, snap.Current.Y, p.Current)
	}

	if scale >= 4 {
		dc.SetColor(p.Lines)
		dc.SetLineWidth(1)
		for x := 0; x <= grid.Width; x++ {
			dc.DrawLine(float64(x)*s, 0, float64(x)*s, float64(grid.Height)*s)
		}
		for y := 0; y <= grid.Height; y++ {
			dc.DrawLine(0, float64(y)*s, float64(grid.Width)*s, float64(y)*s)
		}
		dc.Stroke()
	}

	marker := func(pos core.Pos, c color.Color) {
		dc.SetColor(c)
		dc.DrawCircle(float64(pos.X)*s+s/2, float64(pos.Y)*s+s/2, s/3)
		dc.Fill()
	}
	marker(snap.Query.Start, p.Start)
	marker(snap.Query.Goal, p.Goal)

	return dc.Image()
}

// SavePNG renders the snapshot and writes it to path.
func SavePNG(path string, snap algo.StepSnapshot, grid *core.Grid, scale int) error {
	img := Search(snap, grid, scale)
	return errors.Wrapf(gg.SavePNG(path, img), "save %s", path)
}
