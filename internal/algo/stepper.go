package algo

import (
	"github.com/elektrokombinacija/gridpath/internal/core"
)

// State is the phase of a search.
type State int

const (
	StateInitializing State = iota
	StateExpanding          // next step refills open from closed
	StatePromoting          // next step moves the best open node to closed
	StateReached            // terminal: goal promoted
	StateExhausted          // terminal: open ran dry first
)

func (s State) String() string {
	return [...]string{"Initializing", "Expanding", "Promoting", "Reached", "Exhausted"}[s]
}

// Terminal reports whether the search has finished.
func (s State) Terminal() bool {
	return s == StateReached || s == StateExhausted
}

// StepSnapshot exposes the state of a search between two steps.
type StepSnapshot struct {
	Query     core.Query
	Step      int
	State     State
	Iteration int
	Remaining int        // h of the last promoted node
	Added     int        // nodes admitted by the last expansion
	Current   core.Pos   // last promoted cell, start before the first promotion
	Open      []core.Pos // insertion order
	Closed    []core.Pos // insertion order
	Done      bool
	Found     bool
	Length    int
}

// Stepper drives one search a phase at a time. It owns the nodes of the
// search until Close.
type Stepper struct {
	grid  *core.Grid
	query core.Query
	opts  Options

	arena    *nodeArena
	frontier *frontier

	state     State
	steps     int
	iteration int
	remaining int
	added     int
	last      nodeAddr
	length    int

	// counters captured by Close
	closedOut bool
	nodes     int
	openN     int
	closedN   int
}

// NewStepper validates the query and places the start node in closed. The
// grid must not change until the stepper is closed.
func NewStepper(grid *core.Grid, query core.Query, options ...Option) (*Stepper, error) {
	if err := query.Validate(grid); err != nil {
		return nil, err
	}
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}

	a := getArena()
	s := &Stepper{
		grid:     grid,
		query:    query,
		opts:     opts,
		arena:    a,
		frontier: newFrontier(grid, query.Goal, a),
		state:    StateInitializing,
		length:   core.NoPath,
	}

	start := makeNode(a, query.Start.X, query.Start.Y, query.Goal.X, query.Goal.Y, nullAddr)
	s.frontier.closed.insert(start)
	s.last = start
	s.remaining = core.Manhattan(query.Start.X, query.Start.Y, query.Goal.X, query.Goal.Y)
	if s.remaining == 0 {
		s.reach()
	} else {
		s.state = StateExpanding
	}
	return s, nil
}

// State returns the current phase.
func (s *Stepper) State() State {
	return s.state
}

// Done reports whether the search has reached a terminal state.
func (s *Stepper) Done() bool {
	return s.state.Terminal()
}

// Step advances one phase and returns the new state. Steps after a terminal
// state are no-ops. ErrIterationLimit is returned when the configured limit
// is hit; the stepper is then exhausted.
func (s *Stepper) Step() (State, error) {
	if s.closedOut {
		return s.state, ErrClosed
	}
	switch s.state {
	case StateExpanding:
		if s.opts.MaxIterations > 0 && s.iteration >= s.opts.MaxIterations {
			s.state = StateExhausted
			return s.state, ErrIterationLimit
		}
		s.iteration++
		s.steps++
		s.added = s.frontier.findAccessible()
		s.state = StatePromoting

	case StatePromoting:
		s.steps++
		best := s.frontier.selectBest()
		if best.isNull() {
			s.state = StateExhausted
			return s.state, nil
		}
		s.last = best
		s.remaining = s.arena.get(best).H
		if s.remaining == 0 {
			s.reach()
		} else {
			s.state = StateExpanding
		}
	}
	return s.state, nil
}

func (s *Stepper) reach() {
	s.state = StateReached
	s.length = pathLength(s.arena, s.last)
}

// Run steps until the search terminates.
func (s *Stepper) Run() error {
	for !s.Done() {
		if _, err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Result summarises the search so far. Length is core.NoPath unless the goal
// was reached.
func (s *Stepper) Result() Result {
	r := Result{
		Length:     s.length,
		Found:      s.state == StateReached,
		Iterations: s.iteration,
	}
	if s.closedOut {
		r.Nodes, r.Open, r.Closed = s.nodes, s.openN, s.closedN
		return r
	}
	r.Nodes = s.arena.allocated
	r.Open = s.frontier.open.len()
	r.Closed = s.frontier.closed.len()
	return r
}

// Snapshot copies the current open and closed cells. It is meant for
// visualisation and costs O(nodes).
func (s *Stepper) Snapshot() StepSnapshot {
	snap := StepSnapshot{
		Query:     s.query,
		Step:      s.steps,
		State:     s.state,
		Iteration: s.iteration,
		Remaining: s.remaining,
		Added:     s.added,
		Done:      s.Done(),
		Found:     s.state == StateReached,
		Length:    s.length,
		Current:   s.query.Start,
	}
	if s.closedOut {
		return snap
	}
	if n := s.arena.get(s.last); n != nil {
		snap.Current = n.Pos()
	}
	snap.Open = s.frontier.open.positions()
	snap.Closed = s.frontier.closed.positions()
	return snap
}

// Close releases every node of the search. Result keeps working afterwards
// with the counters captured at close time.
func (s *Stepper) Close() {
	if s.closedOut {
		return
	}
	s.nodes, s.openN, s.closedN = s.arena.allocated, s.frontier.open.len(), s.frontier.closed.len()
	s.frontier = nil
	putArena(s.arena)
	s.arena = nil
	s.closedOut = true
}
