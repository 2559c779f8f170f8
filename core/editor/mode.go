package editor

import (
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
)

// Mode is the active interpretation of pointer input. Exactly one of Idle,
// AddEdge, Delete or AssignKind.
type Mode interface {
	isMode()
	Name() string
}

// Idle drags Selected with the pointer while the button is held.
type Idle struct {
	Selected model.NodeID
}

// AddEdge chains edges: each click connects Pending to the clicked node and
// makes that node the new Pending.
type AddEdge struct {
	Pending model.NodeID
}

// Delete removes whatever Hover points at on click.
type Delete struct {
	Hover Selection
}

// AssignKind stamps Kind onto the clicked node, creating one if needed.
type AssignKind struct {
	Kind model.Kind
}

func (Idle) isMode()       {}
func (AddEdge) isMode()    {}
func (Delete) isMode()     {}
func (AssignKind) isMode() {}

func (Idle) Name() string       { return "idle" }
func (AddEdge) Name() string    { return "add-edge" }
func (Delete) Name() string     { return "delete" }
func (AssignKind) Name() string { return "assign-kind" }

// Selection points at one node, one edge, or nothing.
type Selection struct {
	Node model.NodeID
	Edge model.EdgeID
}

func NodeSelection(id model.NodeID) Selection { return Selection{Node: id} }
func EdgeSelection(id model.EdgeID) Selection { return Selection{Edge: id} }

func (s Selection) IsZero() bool { return s.Node.IsZero() && s.Edge.IsZero() }
func (s Selection) IsNode() bool { return !s.Node.IsZero() }
func (s Selection) IsEdge() bool { return !s.Edge.IsZero() }

func (s Selection) String() string {
	switch {
	case s.IsNode():
		return s.Node.String()
	case s.IsEdge():
		return s.Edge.String()
	default:
		return "none"
	}
}

// Center is the node position, or the midpoint of the edge's endpoints.
func (s Selection) Center(g *model.Graph) (geom.Point, bool) {
	switch {
	case s.IsNode():
		n, ok := g.Node(s.Node)
		if !ok {
			return geom.Point{}, false
		}
		return n.Pos, true
	case s.IsEdge():
		a, b, ok := g.EdgePoints(s.Edge)
		if !ok {
			return geom.Point{}, false
		}
		return geom.Midpoint(a, b), true
	}
	return geom.Point{}, false
}
