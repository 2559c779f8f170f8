// Package sim moves signals along the graph. It owns the live signal set;
// nothing outside it holds on to a signal between ticks, so graph edits can
// invalidate a signal's edge at any time and the next Step drops it.
package sim

import (
	"math"

	"github.com/ingyamilmolinar/nodeseq/core/beat"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

// maxCatchUp bounds how many overdue periods a spawner replays in one tick.
const maxCatchUp = 64

// Signal is a pulse travelling along Edge. Start is the simulation time at
// which it left the edge's source.
type Signal struct {
	Edge  model.EdgeID
	Start float64
}

// Playback plays samples. Implementations must not block.
type Playback interface {
	Trigger(sample int)
}

// Effects spawns visual bursts.
type Effects interface {
	SpawnBurst(pos geom.Point, b Burst)
}

// Burst describes a radial particle burst.
type Burst struct {
	Count    int
	SpeedMin float64
	SpeedMax float64
	Lifetime float64
}

var DefaultBurst = Burst{Count: 20, SpeedMin: 17, SpeedMax: 25, Lifetime: 2}

type nopPlayback struct{}

func (nopPlayback) Trigger(int) {}

type nopEffects struct{}

func (nopEffects) SpawnBurst(geom.Point, Burst) {}

// StepStats summarises one Step.
type StepStats struct {
	Arrived int
	Emitted int
	Pruned  int
	Stalled int
}

type Simulation struct {
	graph    *model.Graph
	clock    *beat.Clock
	signals  []Signal
	playback Playback
	effects  Effects
	burst    Burst
	logger   *game_log.Logger
}

// New builds a simulation over g. Nil collaborators are replaced with no-ops.
func New(g *model.Graph, clock *beat.Clock, playback Playback, effects Effects, logger *game_log.Logger) *Simulation {
	if playback == nil {
		playback = nopPlayback{}
	}
	if effects == nil {
		effects = nopEffects{}
	}
	return &Simulation{
		graph:    g,
		clock:    clock,
		playback: playback,
		effects:  effects,
		burst:    DefaultBurst,
		logger:   logger,
	}
}

func (s *Simulation) SetBurst(b Burst) { s.burst = b }

// Emit puts a new signal on edge e.
func (s *Simulation) Emit(e model.EdgeID, start float64) {
	s.signals = append(s.signals, Signal{Edge: e, Start: start})
}

// Signals returns the live signals. The slice is owned by the simulation.
func (s *Simulation) Signals() []Signal { return s.signals }

func (s *Simulation) Len() int { return len(s.signals) }

// Clear drops every signal.
func (s *Simulation) Clear() { s.signals = s.signals[:0] }

// SpawnTick lets every due spawner emit onto its outgoing edges. A spawner
// that is several periods behind emits once per missed period, each batch
// stamped with its own scheduled time, so late ticks do not shift the phase.
func (s *Simulation) SpawnTick() int {
	now := s.clock.Time
	emitted := 0
	for id, n := range s.graph.Nodes() {
		sp, ok := n.Kind.(model.Spawner)
		if !ok || sp.NextSpawn > now {
			continue
		}
		period := sp.Period(s.clock.BarDuration)
		if period <= 0 {
			s.logger.Warnf("[SIM] Spawner %s has non-positive period %.3f, skipping", id, period)
			continue
		}
		out := s.graph.Outgoing(id)
		for i := 0; sp.NextSpawn <= now; i++ {
			if i == maxCatchUp {
				missed := math.Floor((now-sp.NextSpawn)/period) + 1
				sp.NextSpawn += missed * period
				s.logger.Warnf("[SIM] Spawner %s skipped %.0f overdue periods", id, missed)
				break
			}
			for _, l := range out {
				s.Emit(l.Edge, sp.NextSpawn)
				emitted++
			}
			sp.NextSpawn += period
		}
		n.Kind = sp
	}
	if emitted > 0 {
		s.logger.Debugf("[SIM] Spawners emitted %d signals at t=%.3f", emitted, now)
	}
	return emitted
}

// Step advances every live signal once.
//
// Signals are walked from the back and removed by swapping in the last
// element; signals appended during fan-out land past the walk and are first
// seen on the next Step.
func (s *Simulation) Step() StepStats {
	var st StepStats
	speed := s.clock.SignalSpeed()
	now := s.clock.Time
	for i := len(s.signals) - 1; i >= 0; i-- {
		sig := &s.signals[i]
		e, ok := s.graph.Edge(sig.Edge)
		if !ok {
			s.remove(i)
			st.Pruned++
			continue
		}
		from, _ := s.graph.Node(e.From)
		to, _ := s.graph.Node(e.To)
		dx := to.Pos.X - from.Pos.X
		if dx < 0 {
			// Right-to-left edges hold the signal in place.
			sig.Start += s.clock.Dt
			st.Stalled++
			continue
		}
		if speed <= 0 || (now-sig.Start)*speed < dx {
			continue
		}

		start := sig.Start + dx/speed
		s.arrive(e.To, to)
		st.Arrived++
		for _, l := range s.graph.Outgoing(e.To) {
			s.Emit(l.Edge, start)
			st.Emitted++
		}
		s.remove(i)
	}
	if st != (StepStats{}) {
		s.logger.Debugf("[SIM] Step t=%.3f arrived=%d emitted=%d pruned=%d stalled=%d live=%d",
			now, st.Arrived, st.Emitted, st.Pruned, st.Stalled, len(s.signals))
	}
	return st
}

func (s *Simulation) arrive(id model.NodeID, n *model.Node) {
	if k, ok := n.Kind.(model.SampleTrigger); ok {
		s.playback.Trigger(k.Sample)
		s.logger.Debugf("[SIM] Node %s triggered sample %d", id, k.Sample)
	}
	s.effects.SpawnBurst(n.Pos, s.burst)
}

// Prune drops signals whose edge no longer exists.
func (s *Simulation) Prune() int {
	pruned := 0
	for i := len(s.signals) - 1; i >= 0; i-- {
		if !s.graph.HasEdge(s.signals[i].Edge) {
			s.remove(i)
			pruned++
		}
	}
	return pruned
}

func (s *Simulation) remove(i int) {
	last := len(s.signals) - 1
	s.signals[i] = s.signals[last]
	s.signals = s.signals[:last]
}

// Position returns where sig should be drawn: along its edge, advanced
// horizontally at signal speed, never past the destination. Signals on
// edges that do not point right stay at the source.
func (s *Simulation) Position(sig Signal) (geom.Point, bool) {
	from, to, ok := s.graph.EdgePoints(sig.Edge)
	if !ok {
		return geom.Point{}, false
	}
	dx := to.X - from.X
	if dx <= 0 {
		return from, true
	}
	travelled := (s.clock.Time - sig.Start) * s.clock.SignalSpeed()
	travelled = geom.Clamp(travelled, 0, dx)
	f := travelled / dx
	return geom.Pt(from.X+(to.X-from.X)*f, from.Y+(to.Y-from.Y)*f), true
}
