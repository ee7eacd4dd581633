package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

// Toolbar provides control buttons.
type Toolbar struct {
	state *state.State

	// Playback
	playBtn      widget.Clickable
	resetBtn     widget.Clickable
	stepFwdBtn   widget.Clickable
	stepBackBtn  widget.Clickable
	endBtn       widget.Clickable
	speedUpBtn   widget.Clickable
	speedDownBtn widget.Clickable

	// Edit modes
	viewModeBtn  widget.Clickable
	wallsModeBtn widget.Clickable
	startModeBtn widget.Clickable
	goalModeBtn  widget.Clickable

	undoBtn  widget.Clickable
	redoBtn  widget.Clickable
	rerunBtn widget.Clickable
}

// NewToolbar creates a new toolbar.
func NewToolbar(st *state.State) *Toolbar {
	return &Toolbar{
		state: st,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutPlaybackControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSpeedControls(gtx, th)
			}),
			layout.Rigid(t.layoutSeparator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutEditControls(gtx, th)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.buttonBase(gtx, th, &t.rerunBtn, "Rerun", false)
			}),
		)
	})
}

func (t *Toolbar) layoutPlaybackControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	playIcon := ">"
	if t.state.Playback.Playing {
		playIcon = "||"
	}
	return t.row(gtx, unit.Dp(4),
		t.button(th, &t.resetBtn, "[]", false),
		t.button(th, &t.stepBackBtn, "|<", false),
		t.button(th, &t.playBtn, playIcon, false),
		t.button(th, &t.stepFwdBtn, ">|", false),
		t.button(th, &t.endBtn, ">>", false),
	)
}

func (t *Toolbar) layoutSpeedControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return t.row(gtx, unit.Dp(4),
		t.button(th, &t.speedDownBtn, "-", false),
		t.button(th, &t.speedUpBtn, "+", false),
	)
}

func (t *Toolbar) layoutEditControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	mode := t.state.Edit.Mode
	return t.row(gtx, unit.Dp(2),
		t.button(th, &t.viewModeBtn, "V", mode == state.ModeView),
		t.button(th, &t.wallsModeBtn, "W", mode == state.ModeWalls),
		t.button(th, &t.startModeBtn, "S", mode == state.ModeStart),
		t.button(th, &t.goalModeBtn, "G", mode == state.ModeGoal),
		layout.Spacer{Width: unit.Dp(6)}.Layout,
		t.button(th, &t.undoBtn, "<-", false),
		t.button(th, &t.redoBtn, "->", false),
	)
}

// row lays out widgets left to right with gap between them.
func (t *Toolbar) row(gtx layout.Context, gap unit.Dp, ws ...layout.Widget) layout.Dimensions {
	children := make([]layout.FlexChild, 0, 2*len(ws))
	for i, w := range ws {
		if i > 0 {
			children = append(children, layout.Rigid(layout.Spacer{Width: gap}.Layout))
		}
		children = append(children, layout.Rigid(w))
	}
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx, children...)
}

func (t *Toolbar) button(th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return t.buttonBase(gtx, th, btn, text, active)
	}
}

func (t *Toolbar) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		rect := image.Rect(0, 0, 1, 24)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(rect).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) buttonBase(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = min(bg.R, 240) + 15
		bg.G = min(bg.G, 240) + 15
		bg.B = min(bg.B, 240) + 15
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min = image.Point{X: 32, Y: 28}
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Label(th, 12, text)
					label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
					return label.Layout(gtx)
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	pb := t.state.Playback
	for t.playBtn.Clicked(gtx) {
		pb.TogglePlay()
	}
	for t.resetBtn.Clicked(gtx) {
		pb.Reset()
	}
	for t.stepFwdBtn.Clicked(gtx) {
		pb.StepForward()
	}
	for t.stepBackBtn.Clicked(gtx) {
		pb.StepBack()
	}
	for t.endBtn.Clicked(gtx) {
		pb.Pause()
		pb.SetFrame(pb.MaxFrame)
	}

	for t.speedUpBtn.Clicked(gtx) {
		pb.SetSpeed(pb.Speed * 1.5)
	}
	for t.speedDownBtn.Clicked(gtx) {
		pb.SetSpeed(pb.Speed / 1.5)
	}

	for t.viewModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeView
	}
	for t.wallsModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeWalls
	}
	for t.startModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeStart
	}
	for t.goalModeBtn.Clicked(gtx) {
		t.state.Edit.Mode = state.ModeGoal
	}

	for t.undoBtn.Clicked(gtx) {
		t.state.Undo()
	}
	for t.redoBtn.Clicked(gtx) {
		t.state.Redo()
	}
	for t.rerunBtn.Clicked(gtx) {
		t.state.Rerecord()
	}
}
