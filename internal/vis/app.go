// Package vis implements a Gio viewer that replays a grid search step by
// step and lets the user edit the grid and endpoints.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/vis/interact"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
	"github.com/elektrokombinacija/gridpath/internal/vis/widgets"
)

// App is the main visualization application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
}

// NewApp creates a viewer for q on grid. The app takes ownership of grid.
func NewApp(grid *core.Grid, q core.Query) *App {
	st := state.NewState(grid, q)

	return &App{
		state:     st,
		theme:     material.NewTheme(),
		workspace: widgets.NewWorkspace(st, interact.NewCamera()),
		timeline:  widgets.NewTimeline(st),
		toolbar:   widgets.NewToolbar(st),
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	defer a.state.Close()

	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.state.Sync()
			if a.state.Playback.Playing {
				a.state.Playback.Advance()
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			// keep redrawing while frames arrive or playback runs
			if _, finished, _ := a.state.Search.Outcome(); !finished || a.state.Playback.Playing {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameHome:
		pb.Reset()
	case key.NameEnd:
		pb.Pause()
		pb.SetFrame(pb.MaxFrame)
	case "+":
		pb.SetSpeed(pb.Speed * 1.5)
	case "-":
		pb.SetSpeed(pb.Speed / 1.5)
	case "R":
		a.workspace.Refit()
	case "V":
		a.setMode(state.ModeView)
	case "W":
		a.setMode(state.ModeWalls)
	case "S":
		a.setMode(state.ModeStart)
	case "G":
		a.setMode(state.ModeGoal)
	case "Z":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.Undo()
		}
	case "Y":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.Redo()
		}
	case key.NameReturn:
		a.state.Rerecord()
	}
}

func (a *App) setMode(m state.EditMode) {
	a.state.Edit.Mode = m
	logutil.BgLogger().Debug("edit mode", zap.Stringer("mode", m))
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.workspace.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
