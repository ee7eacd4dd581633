package observer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

type collector struct {
	steps  []algo.StepSnapshot
	result algo.Result
	err    error
	done   int
}

func (c *collector) OnStep(snap algo.StepSnapshot)    { c.steps = append(c.steps, snap) }
func (c *collector) OnDone(res algo.Result, err error) { c.result, c.err = res, err; c.done++ }

func TestDriveReportsEveryStep(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	s, err := algo.NewStepper(g, core.NewQuery(0, 0, 9, 0))
	require.NoError(t, err)
	defer s.Close()

	var c collector
	require.NoError(t, Drive(context.Background(), s, &c))
	assert.Equal(t, 1, c.done)
	assert.NoError(t, c.err)
	assert.Equal(t, 9, c.result.Length)
	require.Len(t, c.steps, 1+2*9)
	assert.Equal(t, algo.StateExpanding, c.steps[0].State)
	assert.Equal(t, algo.StateReached, c.steps[len(c.steps)-1].State)
}

func TestDriveNoPath(t *testing.T) {
	g := core.NewOpenGrid(3, 3)
	g.Set(2, 2, false)
	s, err := algo.NewStepper(g, core.NewQuery(0, 0, 2, 2))
	require.NoError(t, err)
	defer s.Close()

	var c collector
	require.NoError(t, Drive(context.Background(), s, &c))
	assert.ErrorIs(t, c.err, algo.ErrNoPath)
	assert.False(t, c.result.Found)
}

func TestDriveCancelled(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	s, err := algo.NewStepper(g, core.NewQuery(0, 0, 9, 9))
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var c collector
	assert.ErrorIs(t, Drive(ctx, s, &c), context.Canceled)
	assert.Len(t, c.steps, 1)
	assert.ErrorIs(t, c.err, context.Canceled)
}
