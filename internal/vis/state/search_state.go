package state

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/vis/observer"
)

// DefaultFrameLimit caps the snapshots kept per recording.
const DefaultFrameLimit = 20000

// SearchState records a search in the background, one snapshot per step,
// for the timeline to play back.
type SearchState struct {
	mu sync.Mutex

	FrameLimit int

	frames    []algo.StepSnapshot
	truncated bool
	result    algo.Result
	err       error
	finished  bool

	generation int
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewSearchState creates an idle recorder.
func NewSearchState() *SearchState {
	return &SearchState{FrameLimit: DefaultFrameLimit}
}

// Record discards the current recording and starts recording a search of
// q on a private copy of grid.
func (s *SearchState) Record(grid *core.Grid, q core.Query) {
	s.Stop()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.frames = nil
	s.truncated = false
	s.result = algo.Result{Length: core.NoPath}
	s.err = nil
	s.finished = false
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	g := grid.Clone()
	go func() {
		defer close(done)
		stepper, err := algo.NewStepper(g, q)
		if err != nil {
			s.finish(gen, algo.Result{Length: core.NoPath}, err)
			return
		}
		defer stepper.Close()
		if err := observer.Drive(ctx, stepper, recorder{s, gen}); err != nil && err != context.Canceled {
			logutil.BgLogger().Warn("search recording stopped", zap.Stringer("query", q), zap.Error(err))
		}
	}()
}

// Stop cancels a running recording and waits for it to exit. Frames
// recorded so far are kept.
func (s *SearchState) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Wait blocks until the current recording finishes.
func (s *SearchState) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Len is the number of recorded frames.
func (s *SearchState) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// At returns frame i.
func (s *SearchState) At(i int) (algo.StepSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.frames) {
		return algo.StepSnapshot{}, false
	}
	return s.frames[i], true
}

// Outcome returns the search result once the recording has finished.
func (s *SearchState) Outcome() (res algo.Result, finished bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.finished, s.err
}

// Truncated reports whether frames were dropped because of FrameLimit.
func (s *SearchState) Truncated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.truncated
}

func (s *SearchState) add(gen int, snap algo.StepSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if s.FrameLimit > 0 && len(s.frames) >= s.FrameLimit {
		// keep the last frame current so the final state stays visible
		s.frames[len(s.frames)-1] = snap
		s.truncated = true
		return
	}
	s.frames = append(s.frames, snap)
}

func (s *SearchState) finish(gen int, res algo.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	s.result, s.err, s.finished = res, err, true
}

// recorder tags observer callbacks with the generation that started them.
type recorder struct {
	s   *SearchState
	gen int
}

func (r recorder) OnStep(snap algo.StepSnapshot)    { r.s.add(r.gen, snap) }
func (r recorder) OnDone(res algo.Result, err error) { r.s.finish(r.gen, res, err) }
