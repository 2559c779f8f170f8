package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	"github.com/ingyamilmolinar/nodeseq/core/sim"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

type recordingPlayback struct{ samples []int }

func (r *recordingPlayback) Trigger(sample int) { r.samples = append(r.samples, sample) }

var idComparers = cmp.Options{
	cmp.Comparer(func(a, b model.NodeID) bool { return a == b }),
	cmp.Comparer(func(a, b model.EdgeID) bool { return a == b }),
	cmpopts.EquateApprox(0, 1e-9),
}

func newState(barDuration float64) (*State, *recordingPlayback) {
	cfg := DefaultConfig
	cfg.BarDuration = barDuration
	play := &recordingPlayback{}
	return New(cfg, play, testLogger), play
}

func TestTickRunsSpawnerThroughToPlayback(t *testing.T) {
	s, play := newState(1) // speed 150
	sp := s.Graph.AddNode(model.Node{Pos: geom.Pt(0, 0), Kind: model.Spawner{BarDelay: 1}})
	dst := s.Graph.AddNode(model.Node{Pos: geom.Pt(150, 0), Kind: model.SampleTrigger{Sample: 4}})
	s.Graph.AddEdge(sp, dst)

	s.Tick(editor.Input{}, 0)
	require.Equal(t, 1, s.Sim.Len())

	s.Tick(editor.Input{}, 0.5)
	require.Empty(t, play.samples)

	st := s.Tick(editor.Input{}, 0.5)
	require.Equal(t, 1, st.Arrived)
	require.Equal(t, []int{4}, play.samples)
	// The second spawn of this tick is still on its way.
	require.Equal(t, []sim.Signal{{Edge: s.Graph.Outgoing(sp)[0].Edge, Start: 1}}, s.Sim.Signals())
	require.Equal(t, sim.DefaultBurst.Count, s.FX.Len())
}

func TestPauseFreezesTimeButNotEditing(t *testing.T) {
	s, play := newState(1)
	sp := s.Graph.AddNode(model.Node{Pos: geom.Pt(0, 0), Kind: model.Spawner{BarDelay: 1}})
	dst := s.Graph.AddNode(model.Node{Pos: geom.Pt(150, 0), Kind: model.SampleTrigger{Sample: 1}})
	e := s.Graph.AddEdge(sp, dst)
	s.Sim.Emit(e, 0)

	s.Tick(editor.Input{Actions: editor.ActionPause}, 0.25)
	require.True(t, s.Clock.Paused)
	require.Zero(t, s.Clock.Time)

	for i := 0; i < 10; i++ {
		s.Tick(editor.Input{}, 1)
	}
	require.Zero(t, s.Clock.Time)
	require.Equal(t, 1, s.Sim.Len())
	require.Empty(t, play.samples)

	s.Tick(editor.Input{Assign: model.SampleTrigger{Sample: 3}}, 0.1)
	s.Tick(editor.Input{Pointer: geom.Pt(500, 500), PointerPressed: true, PointerHeld: true}, 0.1)
	require.Equal(t, 3, s.Graph.NodeCount())

	require.NoError(t, s.Graph.RemoveEdge(e))
	st := s.Tick(editor.Input{}, 0.1)
	require.Equal(t, 1, st.Pruned)
	require.Zero(t, s.Sim.Len())

	s.Tick(editor.Input{Actions: editor.ActionPause}, 0.25)
	require.False(t, s.Clock.Paused)
	require.Equal(t, 0.25, s.Clock.Time)
}

func TestCameraPansWithFrameTime(t *testing.T) {
	s, _ := newState(10)
	s.Tick(editor.Input{Pan: geom.Pt(1, 0)}, 0.5)
	require.Equal(t, geom.Pt(150, 0), s.Camera)

	s.Clock.Paused = true
	s.Tick(editor.Input{Pan: geom.Pt(0, -1)}, 0.5)
	require.Equal(t, geom.Pt(150, -150), s.Camera)
	require.Equal(t, geom.Pt(160, -140), s.ScreenToWorld(geom.Pt(10, 10)))
}

func TestSnapshot(t *testing.T) {
	s, _ := newState(10) // speed 15
	a := s.Graph.AddNode(model.NewNode(0, 0))
	b := s.Graph.AddNode(model.Node{Pos: geom.Pt(150, 30), Kind: model.Spawner{BarDelay: 2, NextSpawn: 10}})
	e := s.Graph.AddEdge(a, b)
	s.Sim.Emit(e, 0)
	s.Clock.Time = 5

	want := Snapshot{
		Time: 5,
		Mode: editor.Idle{},
		Nodes: []NodeView{
			{ID: a, Pos: geom.Pt(0, 0), Kind: model.Default{}},
			{ID: b, Pos: geom.Pt(150, 30), Kind: model.Spawner{BarDelay: 2, NextSpawn: 10}, Progress: 0.25},
		},
		Edges:   []EdgeView{{ID: e, From: geom.Pt(0, 0), To: geom.Pt(150, 30)}},
		Signals: []SignalView{{Edge: e, Start: 0, Pos: geom.Pt(75, 15)}},
	}
	if diff := cmp.Diff(want, s.Snapshot(), idComparers); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newState(10)
	id := s.Graph.AddNode(model.NewNode(1, 2))
	snap := s.Snapshot()
	snap.Nodes[0].Pos = geom.Pt(99, 99)
	n, _ := s.Graph.Node(id)
	require.Equal(t, geom.Pt(1, 2), n.Pos)
}

func TestSeedDemo(t *testing.T) {
	s, _ := newState(10)
	d := s.SeedDemo(1)
	require.Equal(t, 6, s.Graph.NodeCount())
	require.Equal(t, 6, s.Graph.EdgeCount())
	n, ok := s.Graph.Node(d.Spawner)
	require.True(t, ok)
	require.Equal(t, model.Spawner{BarDelay: 1}, n.Kind)
	require.Len(t, s.Graph.Outgoing(d.Spawner), 2)
}

func TestRunnerTicksUntilCancelled(t *testing.T) {
	s, play := newState(0.01) // 15000 px/s, a 150 px edge takes 10 ms
	s.SeedDemo(1)
	r := NewRunner(s, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for arrived := false; !arrived; {
		select {
		case ev := <-r.Events:
			arrived = ev.Stats.Arrived > 0
		case <-deadline:
			cancel()
			t.Fatal("no arrivals reported")
		}
	}
	cancel()
	require.True(t, errors.Is(<-done, context.Canceled))
	require.NotEmpty(t, play.samples)
}
