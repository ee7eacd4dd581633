// Package observer connects a running search to whatever displays it.
package observer

import (
	"context"

	"github.com/elektrokombinacija/gridpath/internal/algo"
)

// Observer receives the progress of one search.
type Observer interface {
	// OnStep is called with the initial state and after every step.
	OnStep(snap algo.StepSnapshot)

	// OnDone is called once when the search stops. err is algo.ErrNoPath
	// for an exhausted search and the stopping error otherwise.
	OnDone(res algo.Result, err error)
}

// Drive steps s until it terminates or ctx is done, reporting to o. It
// returns ctx.Err() or a step error; finishing without a path is not an
// error for Drive.
func Drive(ctx context.Context, s *algo.Stepper, o Observer) error {
	o.OnStep(s.Snapshot())
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			o.OnDone(s.Result(), err)
			return err
		}
		if _, err := s.Step(); err != nil {
			o.OnDone(s.Result(), err)
			return err
		}
		o.OnStep(s.Snapshot())
	}

	res := s.Result()
	if !res.Found {
		o.OnDone(res, algo.ErrNoPath)
		return nil
	}
	o.OnDone(res, nil)
	return nil
}
