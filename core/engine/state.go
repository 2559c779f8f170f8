package engine

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ingyamilmolinar/nodeseq/core/beat"
	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	"github.com/ingyamilmolinar/nodeseq/core/sim"
	"github.com/ingyamilmolinar/nodeseq/internal/fx"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

// Config gathers the tuning knobs of one session.
type Config struct {
	BarDuration  float64
	PixelsPerBar float64
	CameraSpeed  float64 // world units per second of pan
	Editor       editor.Config
	Burst        sim.Burst
	Turbulence   float64
	Seed         int64
}

var DefaultConfig = Config{
	BarDuration:  10,
	PixelsPerBar: 150,
	CameraSpeed:  300,
	Editor:       editor.DefaultConfig,
	Burst:        sim.DefaultBurst,
}

// State is everything one session owns. It is not safe for concurrent use;
// a single goroutine drives it through Tick.
type State struct {
	Graph  *model.Graph
	Clock  *beat.Clock
	Sim    *sim.Simulation
	Editor *editor.Editor
	FX     *fx.System
	Camera geom.Point

	cfg     Config
	pointer geom.Point
	logger  *game_log.Logger
}

// New wires a fresh session. playback may be nil for a silent session.
func New(cfg Config, playback sim.Playback, logger *game_log.Logger) *State {
	g := model.NewGraph(logger)
	clock := beat.NewClock(cfg.BarDuration, cfg.PixelsPerBar)
	particles := fx.New(clock, cfg.Turbulence, cfg.Seed, logger)
	s := sim.New(g, clock, playback, particles, logger)
	s.SetBurst(cfg.Burst)
	logger.Infof("[ENGINE] New session bar=%.2fs speed=%.1f px/s", cfg.BarDuration, clock.SignalSpeed())
	return &State{
		Graph:  g,
		Clock:  clock,
		Sim:    s,
		Editor: editor.New(g, cfg.Editor, logger),
		FX:     particles,
		cfg:    cfg,
		logger: logger,
	}
}

// Tick runs one frame: pause and camera, editor input, spawners, editor
// update, signal step, then particle cleanup. frameDt is wall time since
// the previous frame; the simulation only sees it while unpaused.
func (s *State) Tick(in editor.Input, frameDt float64) sim.StepStats {
	if in.Pressed(editor.ActionPause) {
		s.Clock.TogglePause()
		s.logger.Infof("[ENGINE] Paused=%t at t=%.3f", s.Clock.Paused, s.Clock.Time)
	}
	s.Clock.Advance(frameDt)
	if in.Pan != (geom.Point{}) && frameDt > 0 {
		s.Camera = r2.Add(s.Camera, r2.Scale(s.cfg.CameraSpeed*frameDt, in.Pan))
	}
	s.pointer = in.Pointer

	s.Editor.HandleInput(in, s.Clock.Time)
	if !s.Clock.Paused {
		s.Sim.SpawnTick()
	}
	s.Editor.Update(in)

	var st sim.StepStats
	if s.Clock.Paused {
		st.Pruned = s.Sim.Prune()
	} else {
		st = s.Sim.Step()
	}
	s.FX.Update()
	return st
}

// ScreenToWorld converts a screen position into world space using the
// current camera.
func (s *State) ScreenToWorld(p geom.Point) geom.Point { return geom.ToWorld(p, s.Camera) }

func (s *State) Config() Config { return s.cfg }
