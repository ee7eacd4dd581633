// Package state holds the viewer's state: the edited scene, the recorded
// search and the playback position.
package state

import (
	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

// State holds all visualization state.
type State struct {
	Scene    *Scene
	Search   *SearchState
	Playback *PlaybackState
	Edit     *EditState
}

// NewState takes ownership of grid and starts recording the search of q.
func NewState(grid *core.Grid, q core.Query) *State {
	s := &State{
		Scene:    &Scene{Grid: grid, Query: q},
		Search:   NewSearchState(),
		Playback: NewPlaybackState(0),
		Edit:     NewEditState(),
	}
	s.Rerecord()
	return s
}

// Rerecord restarts the recording after the scene changed.
func (s *State) Rerecord() {
	s.Search.Record(s.Scene.Grid, s.Scene.Query)
	s.Playback.Reset()
	s.Playback.SetMax(0)
}

// Apply executes an edit and rerecords.
func (s *State) Apply(action EditAction) {
	s.Edit.Execute(action, s.Scene)
	s.Rerecord()
}

// Undo reverts the last edit and rerecords.
func (s *State) Undo() {
	if s.Edit.Undo(s.Scene) != nil {
		s.Rerecord()
	}
}

// Redo reapplies the last undone edit and rerecords.
func (s *State) Redo() {
	if s.Edit.Redo(s.Scene) != nil {
		s.Rerecord()
	}
}

// MoveEndpoint moves the start or goal to p according to the edit mode.
// Moving onto the other endpoint or outside the grid is ignored.
func (s *State) MoveEndpoint(p core.Pos) {
	q := s.Scene.Query
	if !s.Scene.Grid.Contains(p) {
		return
	}
	switch s.Edit.Mode {
	case ModeStart:
		if p != q.Start && p != q.Goal {
			s.Apply(&MoveStartAction{Old: q.Start, New: p})
		}
	case ModeGoal:
		if p != q.Goal && p != q.Start {
			s.Apply(&MoveGoalAction{Old: q.Goal, New: p})
		}
	}
}

// Sync extends playback to the frames recorded so far. Call once per frame.
func (s *State) Sync() {
	if n := s.Search.Len(); n > 0 {
		s.Playback.SetMax(n - 1)
	}
}

// Current returns the frame under the playhead.
func (s *State) Current() (algo.StepSnapshot, bool) {
	return s.Search.At(s.Playback.Index())
}

// Close stops any running recording.
func (s *State) Close() {
	s.Search.Stop()
}
