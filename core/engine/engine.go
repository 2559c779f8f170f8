// Package engine is the frame driver: it owns a session's State and runs
// its per-tick ordering, either from a front-end's frame callback or
// headless on its own goroutine.
package engine

import (
	"context"
	"time"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/sim"
)

// Event reports one headless tick.
type Event struct {
	Time  float64
	Stats sim.StepStats
}

const DefaultTickInterval = 16 * time.Millisecond

// Runner ticks a State at a fixed interval with no input. The State must
// not be touched by anything else while Run is active.
type Runner struct {
	state    *State
	interval time.Duration
	Events   chan Event
}

func NewRunner(state *State, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{state: state, interval: interval, Events: make(chan Event, 16)}
}

// Run blocks until ctx is done. Each tick advances the clock by exactly
// the interval so runs are reproducible. Events are dropped when nobody
// keeps up with the channel.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	dt := r.interval.Seconds()
	for {
		select {
		case <-ticker.C:
			st := r.state.Tick(editor.Input{}, dt)
			select {
			case r.Events <- Event{Time: r.state.Clock.Time, Stats: st}:
			default:
			}
		case <-ctx.Done():
			r.state.logger.Infof("[ENGINE] Runner stopped at t=%.3f", r.state.Clock.Time)
			return ctx.Err()
		}
	}
}
