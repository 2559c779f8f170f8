// Package editor turns per-tick input into graph edits according to the
// active Mode.
package editor

import (
	"math"

	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

// Config holds the hit-testing distances, all in world units.
type Config struct {
	NodeRadius   float64 // drag pick radius in Idle
	HoverRadius  float64 // snap radius for the hovered node
	EdgeMargin   float64 // endpoint margin for edge distance in Delete
	DeleteCutoff float64 // nothing farther than this is selected in Delete
}

var DefaultConfig = Config{
	NodeRadius:   14,
	HoverRadius:  21,
	EdgeMargin:   0.5,
	DeleteCutoff: 100,
}

type Editor struct {
	graph   *model.Graph
	cfg     Config
	mode    Mode
	hovered model.NodeID
	logger  *game_log.Logger
}

func New(g *model.Graph, cfg Config, logger *game_log.Logger) *Editor {
	return &Editor{graph: g, cfg: cfg, mode: Idle{}, logger: logger}
}

func (e *Editor) Mode() Mode { return e.mode }

// Hovered is the node nearest the pointer within the hover radius, as of
// the last HandleInput.
func (e *Editor) Hovered() model.NodeID { return e.hovered }

func (e *Editor) SetMode(m Mode) {
	if m == nil {
		m = Idle{}
	}
	if m.Name() != e.mode.Name() {
		e.logger.Debugf("[EDITOR] Mode %s -> %s", e.mode.Name(), m.Name())
	}
	e.mode = m
}

// HandleInput applies this tick's discrete input: mode switches and
// click commits. now is the simulation time, used to schedule spawners
// stamped in AssignKind.
func (e *Editor) HandleInput(in Input, now float64) {
	e.hovered = e.closestNode(in.Pointer, e.cfg.HoverRadius)

	if in.Assign != nil {
		e.SetMode(AssignKind{Kind: in.Assign})
		return
	}
	if in.Pressed(ActionEscape) {
		e.SetMode(Idle{})
		return
	}

	switch m := e.mode.(type) {
	case Idle:
		e.handleIdle(m, in)
	case AddEdge:
		e.handleAddEdge(m, in)
	case Delete:
		e.handleDelete(m, in)
	case AssignKind:
		e.handleAssign(m, in, now)
	}
}

func (e *Editor) handleIdle(m Idle, in Input) {
	switch {
	case in.Pressed(ActionToggleDelete):
		e.SetMode(Delete{})
		return
	case in.Pressed(ActionToggleAddEdge):
		e.SetMode(AddEdge{})
		return
	case in.RightPressed:
		e.SetMode(Idle{})
		return
	case in.PointerHeld && m.Selected.IsZero():
		// First hit in iteration order, not necessarily the closest.
		r2 := e.cfg.NodeRadius * e.cfg.NodeRadius
		for id, n := range e.graph.Nodes() {
			if geom.DistSq(n.Pos, in.Pointer) <= r2 {
				m.Selected = id
				e.logger.Debugf("[EDITOR] Picked node %s", id)
				break
			}
		}
	}
	if in.PointerReleased {
		m.Selected = model.InvalidNodeID
	}
	e.mode = m
}

func (e *Editor) handleAddEdge(m AddEdge, in Input) {
	if in.Pressed(ActionToggleAddEdge) {
		e.SetMode(Idle{})
		return
	}
	if !m.Pending.IsZero() && !e.graph.HasNode(m.Pending) {
		m.Pending = model.InvalidNodeID
	}
	if in.RightPressed {
		m.Pending = model.InvalidNodeID
		e.mode = m
		return
	}
	if !in.PointerPressed {
		e.mode = m
		return
	}
	if m.Pending.IsZero() {
		m.Pending = e.endpointAt(in.Pointer)
		e.mode = m
		return
	}
	next := e.endpointAt(in.Pointer)
	if next == m.Pending {
		e.logger.Debugf("[EDITOR] Ignoring self-edge on %s", next)
		e.mode = m
		return
	}
	e.graph.AddEdge(m.Pending, next)
	m.Pending = next
	e.mode = m
}

// endpointAt returns the hovered node, or a new node at p.
func (e *Editor) endpointAt(p geom.Point) model.NodeID {
	if !e.hovered.IsZero() && e.graph.HasNode(e.hovered) {
		return e.hovered
	}
	id := e.graph.AddNode(model.Node{Pos: p, Kind: model.Default{}})
	e.hovered = id
	return id
}

func (e *Editor) handleDelete(m Delete, in Input) {
	switch {
	case in.Pressed(ActionToggleDelete), in.RightPressed:
		e.SetMode(Idle{})
		return
	case in.PointerPressed:
		var err error
		switch {
		case m.Hover.IsNode():
			err = e.graph.RemoveNode(m.Hover.Node)
		case m.Hover.IsEdge():
			err = e.graph.RemoveEdge(m.Hover.Edge)
		}
		if err != nil {
			e.logger.Debugf("[EDITOR] Delete of %s skipped: %v", m.Hover, err)
		}
		if m.Hover.Node == e.hovered {
			e.hovered = model.InvalidNodeID
		}
		m.Hover = Selection{}
	}
	e.mode = m
}

func (e *Editor) handleAssign(m AssignKind, in Input, now float64) {
	switch {
	case in.Pressed(ActionToggleDelete):
		e.SetMode(Delete{})
		return
	case in.Pressed(ActionToggleAddEdge):
		e.SetMode(AddEdge{})
		return
	case in.RightPressed:
		e.SetMode(Idle{})
		return
	case !in.PointerPressed:
		return
	}
	k := stamp(m.Kind, now)
	if !e.hovered.IsZero() && e.graph.SetKind(e.hovered, k) {
		return
	}
	e.hovered = e.graph.AddNode(model.Node{Pos: in.Pointer, Kind: k})
}

// stamp returns the copy of k a node should receive. Spawners start their
// schedule at now.
func stamp(k model.Kind, now float64) model.Kind {
	if sp, ok := k.(model.Spawner); ok {
		sp.NextSpawn = now
		return sp
	}
	return k
}

// Update runs the per-tick work of the active mode: dragging in Idle and
// re-picking the deletion target in Delete.
func (e *Editor) Update(in Input) {
	switch m := e.mode.(type) {
	case Idle:
		if m.Selected.IsZero() {
			return
		}
		if !e.graph.SetPosition(m.Selected, in.Pointer) {
			e.mode = Idle{}
		}
	case Delete:
		e.mode = Delete{Hover: e.deletionTarget(in.Pointer)}
	case AddEdge, AssignKind:
	}
}

// deletionTarget picks the nearest node, unless an edge is nearer still.
// Edges measure against their inner part only, and must also be within
// twice the node distance, which keeps clicks near a node on the node.
func (e *Editor) deletionTarget(p geom.Point) Selection {
	best := math.Inf(1)
	var sel Selection
	for id, n := range e.graph.Nodes() {
		if d := geom.DistSq(n.Pos, p); d < best {
			best = d
			sel = NodeSelection(id)
		}
	}
	nodeDist := best
	for id := range e.graph.Edges() {
		a, b, ok := e.graph.EdgePoints(id)
		if !ok {
			continue
		}
		d := geom.SegmentDistSq(p, a, b, e.cfg.EdgeMargin)
		if d < 4*nodeDist && d < best {
			best = d
			sel = EdgeSelection(id)
		}
	}
	if best > e.cfg.DeleteCutoff*e.cfg.DeleteCutoff {
		return Selection{}
	}
	return sel
}

// closestNode returns the node nearest p within radius, or the zero id.
func (e *Editor) closestNode(p geom.Point, radius float64) model.NodeID {
	best := radius * radius
	found := model.InvalidNodeID
	for id, n := range e.graph.Nodes() {
		if d := geom.DistSq(n.Pos, p); d <= best {
			best = d
			found = id
		}
	}
	return found
}
