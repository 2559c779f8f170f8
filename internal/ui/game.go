// Package ui is the ebiten front-end: it polls input into the frame driver
// and draws its snapshots.
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/nodeseq/core/editor"
	"github.com/ingyamilmolinar/nodeseq/core/engine"
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

// TPS is the update rate the game assumes when advancing time.
const TPS = 60

const helpText = "E add-edge  X delete  1-5 sample  Q spawner  0 plain  Space pause  WASD pan  Esc idle"

type Game struct {
	state    *engine.State
	logger   *game_log.Logger
	barDelay float64

	winW, winH int
	frame      int64
}

// New returns a game driving state. barDelay is the period, in bars, given
// to spawners placed from the keyboard.
func New(state *engine.State, barDelay float64, logger *game_log.Logger) *Game {
	return &Game{state: state, barDelay: barDelay, logger: logger}
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.logger.Debugf("[GAME] Layout: %dx%d", w, h)
	}
	g.winW, g.winH = w, h
	return w, h
}

func (g *Game) Update() error {
	in := readInput(g.state.Camera, g.barDelay)
	st := g.state.Tick(in, 1.0/TPS)
	g.frame++
	if st.Arrived > 0 {
		g.logger.Debugf("[GAME] frame=%d arrivals=%d live=%d", g.frame, st.Arrived, g.state.Sim.Len())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.state.Snapshot()
	cfg := g.state.Config()
	radius := cfg.Editor.NodeRadius

	g.drawGrid(screen, snap, cfg.PixelsPerBar)

	for _, e := range snap.Edges {
		c := colEdge
		if e.To.X < e.From.X {
			c = colEdgeBack
		}
		drawArrow(screen, geom.ToCamera(e.From, snap.Camera), geom.ToCamera(e.To, snap.Camera), radius, c)
	}

	for _, n := range snap.Nodes {
		t := geom.Translate(n, snap.Camera)
		drawCircle(screen, t.Pos, radius, kindColor(n.Kind), true)
		drawCircle(screen, t.Pos, radius, colNodeBorder, false)
		if _, ok := n.Kind.(model.Spawner); ok {
			drawArc(screen, t.Pos, radius+5, n.Progress, colSpawnerArc)
		}
	}

	for _, s := range snap.Signals {
		drawCircle(screen, geom.Translate(s, snap.Camera).Pos, 5, colSignal, true)
	}
	for _, p := range snap.Particles {
		drawCircle(screen, geom.Translate(p, snap.Camera).Pos, 2, colParticle, true)
	}

	g.drawOverlay(screen, snap, radius)

	status := fmt.Sprintf("mode: %s  t=%.2f  nodes=%d  edges=%d  signals=%d",
		snap.Mode.Name(), snap.Time, len(snap.Nodes), len(snap.Edges), len(snap.Signals))
	if snap.Paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
	ebitenutil.DebugPrintAt(screen, helpText, 8, g.winH-20)
}

func (g *Game) drawGrid(screen *ebiten.Image, snap engine.Snapshot, pxPerBar float64) {
	minX, maxX, minY, maxY := visibleWorldRect(snap.Camera, g.winW, g.winH)
	for _, x := range gridLines(minX, maxX, gridStep) {
		drawLine(screen, geom.Pt(x-snap.Camera.X, 0), geom.Pt(x-snap.Camera.X, float64(g.winH)), 1, colGridLine)
	}
	for _, y := range gridLines(minY, maxY, gridStep) {
		drawLine(screen, geom.Pt(0, y-snap.Camera.Y), geom.Pt(float64(g.winW), y-snap.Camera.Y), 1, colGridLine)
	}
	// Signals cross one bar line per bar, so these show the tempo.
	for _, x := range gridLines(minX, maxX, pxPerBar) {
		drawLine(screen, geom.Pt(x-snap.Camera.X, 0), geom.Pt(x-snap.Camera.X, float64(g.winH)), 1, colBarLine)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap engine.Snapshot, radius float64) {
	pos := make(map[model.NodeID]geom.Point, len(snap.Nodes))
	for _, n := range snap.Nodes {
		pos[n.ID] = geom.ToCamera(n.Pos, snap.Camera)
	}
	pointer := geom.ToCamera(snap.Pointer, snap.Camera)
	hovered, hasHover := pos[snap.Hovered]

	switch m := snap.Mode.(type) {
	case editor.AddEdge:
		target := pointer
		if hasHover {
			target = hovered
			drawCircle(screen, hovered, radius+4, colHover, false)
		} else {
			drawCircle(screen, pointer, radius, colGhost, true)
		}
		if from, ok := pos[m.Pending]; ok {
			drawArrow(screen, from, target, radius, colGhost)
		}
	case editor.Delete:
		switch {
		case m.Hover.IsNode():
			if p, ok := pos[m.Hover.Node]; ok {
				drawCircle(screen, p, radius+4, colDelete, false)
			}
		case m.Hover.IsEdge():
			for _, e := range snap.Edges {
				if e.ID == m.Hover.Edge {
					a, b := geom.ToCamera(e.From, snap.Camera), geom.ToCamera(e.To, snap.Camera)
					drawLine(screen, a, b, 4, colDelete)
					drawCircle(screen, geom.Midpoint(a, b), 5, colDelete, true)
				}
			}
		}
	case editor.AssignKind:
		if hasHover {
			drawCircle(screen, hovered, radius+4, colHover, false)
		} else {
			c := kindColor(m.Kind)
			c.A = colGhost.A
			drawCircle(screen, pointer, radius, c, true)
		}
	case editor.Idle:
	}
}

func kindColor(k model.Kind) color.RGBA {
	switch k := k.(type) {
	case model.Spawner:
		return colNodeSpawner
	case model.SampleTrigger:
		if k.Sample >= 0 && k.Sample < len(sampleColors) {
			return sampleColors[k.Sample]
		}
		return colNodeSample
	default:
		return colNodeDefault
	}
}
