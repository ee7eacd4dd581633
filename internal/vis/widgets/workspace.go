// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/vis/draw"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Workspace is the grid view.
type Workspace struct {
	state  *state.State
	camera *interact.Camera

	hover      core.Pos
	hoverValid bool
	fitted     bool
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	sc := w.state.Scene
	if !w.fitted {
		w.camera.FitGrid(sc.Grid.Width, sc.Grid.Height, float32(bounds.X), float32(bounds.Y), 24)
		w.fitted = true
	}

	w.handlePointerEvents(gtx)

	draw.DrawCells(gtx, sc.Grid, w.camera)
	if snap, ok := w.state.Current(); ok {
		draw.DrawSearch(gtx, snap, w.camera)
	}
	draw.DrawGridLines(gtx, sc.Grid, w.camera, color.NRGBA{R: 40, G: 45, B: 50, A: 255})
	draw.DrawEndpoints(gtx, sc.Query, w.camera)

	if w.hoverValid && w.state.Edit.Mode != state.ModeView {
		draw.HighlightCell(gtx, w.hover, w.camera)
	}

	return layout.Dimensions{Size: bounds}
}

// Refit fits the grid to the view on the next frame.
func (w *Workspace) Refit() {
	w.fitted = false
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move | pointer.Leave,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.handlePointerEvent(pe)
		}
	}
}

func (w *Workspace) handlePointerEvent(ev pointer.Event) {
	w.camera.HandleEvent(ev)

	cell := w.camera.CellAt(ev.Position.X, ev.Position.Y)
	w.hover = cell
	w.hoverValid = w.state.Scene.Grid.Contains(cell)

	edit := w.state.Edit
	switch ev.Kind {
	case pointer.Press:
		if !ev.Buttons.Contain(pointer.ButtonPrimary) || !w.hoverValid {
			return
		}
		switch edit.Mode {
		case state.ModeWalls:
			edit.BeginStroke(w.state.Scene, cell)
		case state.ModeStart, state.ModeGoal:
			w.state.MoveEndpoint(cell)
		}

	case pointer.Drag:
		if edit.Painting() {
			edit.ContinueStroke(w.state.Scene, cell)
		}

	case pointer.Release, pointer.Cancel:
		if edit.EndStroke() {
			w.state.Rerecord()
		}

	case pointer.Leave:
		w.hoverValid = false
	}
}
