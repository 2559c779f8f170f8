package engine

import (
	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	"github.com/ingyamilmolinar/nodeseq/internal/fx"
)

type NodeView struct {
	ID   model.NodeID
	Pos  geom.Point
	Kind model.Kind
	// Progress is the share of the spawn period still to run; zero for
	// other kinds.
	Progress float64
}

func (n NodeView) Position() geom.Point { return n.Pos }

type EdgeView struct {
	ID       model.EdgeID
	From, To geom.Point
}

type SignalView struct {
	Edge  model.EdgeID
	Start float64
	Pos   geom.Point
}

func (s SignalView) Position() geom.Point { return s.Pos }

// Snapshot is a read-only copy of what a renderer needs for one frame.
type Snapshot struct {
	Time    float64
	Paused  bool
	Camera  geom.Point
	Pointer geom.Point
	Mode    editor.Mode
	Hovered model.NodeID

	Nodes     []NodeView
	Edges     []EdgeView
	Signals   []SignalView
	Particles []fx.Particle
}

// Snapshot copies the current state. Slices are freshly allocated.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Time:    s.Clock.Time,
		Paused:  s.Clock.Paused,
		Camera:  s.Camera,
		Pointer: s.pointer,
		Mode:    s.Editor.Mode(),
		Hovered: s.Editor.Hovered(),
		Nodes:   make([]NodeView, 0, s.Graph.NodeCount()),
		Edges:   make([]EdgeView, 0, s.Graph.EdgeCount()),
		Signals: make([]SignalView, 0, s.Sim.Len()),
	}
	for id, n := range s.Graph.Nodes() {
		v := NodeView{ID: id, Pos: n.Pos, Kind: n.Kind}
		if sp, ok := n.Kind.(model.Spawner); ok {
			v.Progress = geom.Clamp(sp.Progress(s.Clock.Time, s.Clock.BarDuration), 0, 1)
		}
		snap.Nodes = append(snap.Nodes, v)
	}
	for id := range s.Graph.Edges() {
		from, to, ok := s.Graph.EdgePoints(id)
		if !ok {
			continue
		}
		snap.Edges = append(snap.Edges, EdgeView{ID: id, From: from, To: to})
	}
	for _, sig := range s.Sim.Signals() {
		pos, ok := s.Sim.Position(sig)
		if !ok {
			continue
		}
		snap.Signals = append(snap.Signals, SignalView{Edge: sig.Edge, Start: sig.Start, Pos: pos})
	}
	snap.Particles = append([]fx.Particle(nil), s.FX.Particles()...)
	return snap
}
