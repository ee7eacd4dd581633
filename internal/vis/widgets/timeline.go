package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/pkg/errors"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/vis/state"
)

const timelineMargin = 20

// Timeline scrubs through the recorded search steps.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{
		state: st,
	}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 60

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	trackWidth := gtx.Constraints.Max.X - 2*timelineMargin
	t.handlePointerEvents(gtx, height, trackWidth)

	trackY := height * 2 / 3
	trackHeight := 6

	trackRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	fillWidth := int(float64(trackWidth) * t.state.Playback.Progress())
	if fillWidth > 0 {
		fillRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	playheadX := timelineMargin + fillWidth
	playheadSize := 12
	playheadRect := image.Rect(playheadX-playheadSize/2, trackY-playheadSize/2, playheadX+playheadSize/2, trackY+playheadSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	frameText := "recording"
	if snap, ok := t.state.Current(); ok {
		frameText = frameLabel(snap)
	}
	current := material.Label(th, 12, frameText)
	current.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	speed := material.Label(th, 12, fmt.Sprintf("%.0f steps/s", t.state.Playback.Speed))
	speed.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	result := material.Label(th, 12, t.resultLabel())
	result.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(timelineMargin), Right: unit.Dp(timelineMargin)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(current.Layout),
			layout.Rigid(speed.Layout),
			layout.Rigid(result.Layout),
		)
	})
}

func frameLabel(snap algo.StepSnapshot) string {
	return fmt.Sprintf("step %d  iter %d  %s  open %d  closed %d",
		snap.Step, snap.Iteration, snap.State, len(snap.Open), len(snap.Closed))
}

func (t *Timeline) resultLabel() string {
	res, finished, err := t.state.Search.Outcome()
	switch {
	case !finished:
		return fmt.Sprintf("%d frames...", t.state.Search.Len())
	case errors.Is(err, algo.ErrNoPath):
		return fmt.Sprintf("no path after %d iterations", res.Iterations)
	case err != nil:
		return err.Error()
	}
	label := fmt.Sprintf("length %d in %d iterations", res.Length, res.Iterations)
	if t.state.Search.Truncated() {
		label += " (truncated)"
	}
	return label
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			switch pe.Kind {
			case pointer.Press:
				t.dragging = true
				t.seek(pe.Position.X, trackWidth)
			case pointer.Drag:
				if t.dragging {
					t.seek(pe.Position.X, trackWidth)
				}
			case pointer.Release:
				t.dragging = false
			}
		}
	}
}

func (t *Timeline) seek(screenX float32, trackWidth int) {
	if trackWidth <= 0 {
		return
	}
	progress := (float64(screenX) - timelineMargin) / float64(trackWidth)
	progress = max(0, min(progress, 1))
	pb := t.state.Playback
	pb.Pause()
	pb.SetFrame(progress * pb.MaxFrame)
}
