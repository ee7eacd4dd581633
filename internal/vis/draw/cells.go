// Package draw paints the grid and search state with Gio.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
)

var (
	ColorWalkable = color.NRGBA{R: 60, G: 66, B: 74, A: 255}
	ColorBlocked  = color.NRGBA{R: 18, G: 20, B: 24, A: 255}
	ColorOpen     = color.NRGBA{R: 70, G: 130, B: 190, A: 255}
	ColorClosed   = color.NRGBA{R: 170, G: 130, B: 60, A: 255}
	ColorCurrent  = color.NRGBA{R: 240, G: 150, B: 40, A: 255}
	ColorStart    = color.NRGBA{R: 80, G: 200, B: 110, A: 255}
	ColorGoal     = color.NRGBA{R: 90, G: 120, B: 240, A: 255}
	ColorHover    = color.NRGBA{R: 255, G: 255, B: 255, A: 60}
)

// cellGap is the screen gap between neighbouring cells.
const cellGap = 1

// DrawCells paints every cell of grid as walkable or blocked.
func DrawCells(gtx layout.Context, grid *core.Grid, camera *interact.Camera) {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			col := ColorBlocked
			if grid.IsWalkable(x, y) {
				col = ColorWalkable
			}
			FillCell(gtx, core.Pos{X: x, Y: y}, camera, col)
		}
	}
}

// DrawSearch paints the closed and open sets of snap and marks the last
// promoted cell.
func DrawSearch(gtx layout.Context, snap algo.StepSnapshot, camera *interact.Camera) {
	for _, p := range snap.Closed {
		FillCell(gtx, p, camera, ColorClosed)
	}
	for _, p := range snap.Open {
		FillCell(gtx, p, camera, ColorOpen)
	}
	if len(snap.Closed) > 0 {
		FillCell(gtx, snap.Current, camera, ColorCurrent)
	}
}

// DrawEndpoints marks the start and goal of q.
func DrawEndpoints(gtx layout.Context, q core.Query, camera *interact.Camera) {
	r := camera.CellSpan() / 3
	sx, sy := cellCenter(q.Start, camera)
	DrawDisc(gtx, sx, sy, r, ColorStart)
	gx, gy := cellCenter(q.Goal, camera)
	DrawDisc(gtx, gx, gy, r, ColorGoal)
	DrawRing(gtx, gx, gy, r, ColorGoal, r/3)
}

// FillCell fills one cell, leaving a one pixel gap to its neighbours.
func FillCell(gtx layout.Context, p core.Pos, camera *interact.Camera, col color.NRGBA) {
	rect, ok := cellRect(gtx, p, camera)
	if !ok {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

// HighlightCell draws a translucent overlay on p.
func HighlightCell(gtx layout.Context, p core.Pos, camera *interact.Camera) {
	FillCell(gtx, p, camera, ColorHover)
}

// cellRect is the on-screen rectangle of p, false when p is off screen.
func cellRect(gtx layout.Context, p core.Pos, camera *interact.Camera) (image.Rectangle, bool) {
	x, y := camera.CellOrigin(p)
	span := camera.CellSpan()
	rect := image.Rect(
		int(x)+cellGap, int(y)+cellGap,
		int(x+span), int(y+span),
	)
	bounds := image.Rectangle{Max: gtx.Constraints.Max}
	if !rect.Overlaps(bounds) || rect.Empty() {
		return image.Rectangle{}, false
	}
	return rect, true
}

func cellCenter(p core.Pos, camera *interact.Camera) (float32, float32) {
	x, y := camera.CellOrigin(p)
	half := camera.CellSpan() / 2
	return x + half, y + half
}

// DrawDisc fills a circle approximated by line segments.
func DrawDisc(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	circle(&path, cx, cy, radius, 20)
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawRing draws a circle outline of the given stroke width.
func DrawRing(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, width float32) {
	var path clip.Path
	path.Begin(gtx.Ops)
	circle(&path, cx, cy, radius+width, 24)
	inner := radius
	if inner < 0 {
		inner = 0
	}
	circle(&path, cx, cy, inner, 24)
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func circle(path *clip.Path, cx, cy, r float32, segments int) {
	path.MoveTo(f32.Pt(cx+r, cy))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		path.LineTo(f32.Pt(cx+r*float32(math.Cos(angle)), cy+r*float32(math.Sin(angle))))
	}
	path.Close()
}

// DrawGridLines draws a faint lattice over the visible area, one line per
// cell border.
func DrawGridLines(gtx layout.Context, grid *core.Grid, camera *interact.Camera, col color.NRGBA) {
	span := camera.CellSpan()
	if span < 6 {
		return
	}
	x0, y0 := camera.CellOrigin(core.Pos{})
	x1, y1 := camera.CellOrigin(core.Pos{X: grid.Width, Y: grid.Height})
	for x := 0; x <= grid.Width; x++ {
		sx := int(x0 + float32(x)*span)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(sx, int(y0), sx+1, int(y1))).Op())
	}
	for y := 0; y <= grid.Height; y++ {
		sy := int(y0 + float32(y)*span)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(int(x0), sy, int(x1), sy+1)).Op())
	}
}
