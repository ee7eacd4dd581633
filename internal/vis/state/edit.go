package state

import (
	"fmt"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// Scene is what the user edits: the grid and the query searched on it.
type Scene struct {
	Grid  *core.Grid
	Query core.Query
}

// EditAction is an undoable change to a Scene.
type EditAction interface {
	Do(sc *Scene)
	Undo(sc *Scene)
	Description() string
}

// EditMode selects what a primary click on a cell does.
type EditMode int

const (
	ModeView  EditMode = iota // clicks do nothing
	ModeWalls                 // click or drag paints obstacles
	ModeStart                 // click moves the start
	ModeGoal                  // click moves the goal
)

func (m EditMode) String() string {
	return [...]string{"view", "walls", "start", "goal"}[m]
}

// EditState holds the edit mode, an in-progress paint stroke and the
// undo/redo stacks.
type EditState struct {
	Mode EditMode

	Hover      core.Pos
	HoverValid bool

	painting   bool
	paintValue bool
	stroke     *BatchAction

	undoStack []EditAction
	redoStack []EditAction
}

// NewEditState creates an edit state in view mode.
func NewEditState() *EditState {
	return &EditState{Mode: ModeView}
}

// Execute performs an action and pushes it on the undo stack.
func (e *EditState) Execute(action EditAction, sc *Scene) {
	action.Do(sc)
	e.undoStack = append(e.undoStack, action)
	e.redoStack = nil
}

// Undo pops the last action and reverts it.
func (e *EditState) Undo(sc *Scene) EditAction {
	if len(e.undoStack) == 0 {
		return nil
	}
	action := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	action.Undo(sc)
	e.redoStack = append(e.redoStack, action)
	return action
}

// Redo reapplies the last undone action.
func (e *EditState) Redo(sc *Scene) EditAction {
	if len(e.redoStack) == 0 {
		return nil
	}
	action := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	action.Do(sc)
	e.undoStack = append(e.undoStack, action)
	return action
}

func (e *EditState) CanUndo() bool { return len(e.undoStack) > 0 }
func (e *EditState) CanRedo() bool { return len(e.redoStack) > 0 }

// BeginStroke starts painting at p. The stroke sets cells to the opposite
// of p's current state.
func (e *EditState) BeginStroke(sc *Scene, p core.Pos) {
	e.painting = true
	e.paintValue = !sc.Grid.IsWalkable(p.X, p.Y)
	e.stroke = &BatchAction{Label: "Paint cells"}
	e.ContinueStroke(sc, p)
}

// ContinueStroke paints p if it is not already painted.
func (e *EditState) ContinueStroke(sc *Scene, p core.Pos) {
	if !e.painting || !sc.Grid.Contains(p) {
		return
	}
	if sc.Grid.IsWalkable(p.X, p.Y) == e.paintValue {
		return
	}
	a := &SetCellAction{Cell: p, Walkable: e.paintValue}
	a.Do(sc)
	e.stroke.Actions = append(e.stroke.Actions, a)
}

// EndStroke records the stroke as one undoable action. It reports whether
// any cell changed.
func (e *EditState) EndStroke() bool {
	if !e.painting {
		return false
	}
	e.painting = false
	stroke := e.stroke
	e.stroke = nil
	if len(stroke.Actions) == 0 {
		return false
	}
	e.undoStack = append(e.undoStack, stroke)
	e.redoStack = nil
	return true
}

// Painting reports whether a stroke is in progress.
func (e *EditState) Painting() bool {
	return e.painting
}

// SetCellAction sets one cell's walkability.
type SetCellAction struct {
	Cell     core.Pos
	Walkable bool
}

func (a *SetCellAction) Do(sc *Scene)   { sc.Grid.Set(a.Cell.X, a.Cell.Y, a.Walkable) }
func (a *SetCellAction) Undo(sc *Scene) { sc.Grid.Set(a.Cell.X, a.Cell.Y, !a.Walkable) }

func (a *SetCellAction) Description() string {
	if a.Walkable {
		return fmt.Sprintf("Clear %v", a.Cell)
	}
	return fmt.Sprintf("Block %v", a.Cell)
}

// MoveStartAction moves the query start.
type MoveStartAction struct {
	Old, New core.Pos
}

func (a *MoveStartAction) Do(sc *Scene)        { sc.Query.Start = a.New }
func (a *MoveStartAction) Undo(sc *Scene)      { sc.Query.Start = a.Old }
func (a *MoveStartAction) Description() string { return "Move start" }

// MoveGoalAction moves the query goal.
type MoveGoalAction struct {
	Old, New core.Pos
}

func (a *MoveGoalAction) Do(sc *Scene)        { sc.Query.Goal = a.New }
func (a *MoveGoalAction) Undo(sc *Scene)      { sc.Query.Goal = a.Old }
func (a *MoveGoalAction) Description() string { return "Move goal" }

// BatchAction groups actions into one undo step. Its actions must already
// be applied when it is pushed by EndStroke.
type BatchAction struct {
	Label   string
	Actions []EditAction
}

func (a *BatchAction) Do(sc *Scene) {
	for _, act := range a.Actions {
		act.Do(sc)
	}
}

func (a *BatchAction) Undo(sc *Scene) {
	for i := len(a.Actions) - 1; i >= 0; i-- {
		a.Actions[i].Undo(sc)
	}
}

func (a *BatchAction) Description() string { return a.Label }
