package model

import (
	"fmt"
	"iter"

	"github.com/ingyamilmolinar/nodeseq/core/geom"
	game_log "github.com/ingyamilmolinar/nodeseq/internal/log"
)

type NodeID Key
type EdgeID Key

// InvalidNodeID and InvalidEdgeID never resolve.
var (
	InvalidNodeID NodeID
	InvalidEdgeID EdgeID
)

func (id NodeID) IsZero() bool   { return Key(id).IsZero() }
func (id EdgeID) IsZero() bool   { return Key(id).IsZero() }
func (id NodeID) String() string { return "n" + Key(id).String() }
func (id EdgeID) String() string { return "e" + Key(id).String() }

type Node struct {
	Pos  geom.Point
	Kind Kind
}

func NewNode(x, y float64) Node { return Node{Pos: geom.Pt(x, y), Kind: Default{}} }

func (n Node) Position() geom.Point { return n.Pos }

// Edge is directed: signals travel From -> To.
type Edge struct {
	From, To NodeID
}

// Link is one adjacency entry: the node on the other end and the edge that
// connects to it.
type Link struct {
	Node NodeID
	Edge EdgeID
}

// Adjacency lists the links of one node. Order carries no meaning.
type Adjacency struct {
	Incoming []Link
	Outgoing []Link
}

// Graph owns nodes, edges and the adjacency index derived from them.
type Graph struct {
	nodes  Arena[Node]
	edges  Arena[Edge]
	adj    map[NodeID]*Adjacency
	logger *game_log.Logger
}

func NewGraph(logger *game_log.Logger) *Graph {
	return &Graph{
		adj:    map[NodeID]*Adjacency{},
		logger: logger,
	}
}

func (g *Graph) AddNode(n Node) NodeID {
	if n.Kind == nil {
		n.Kind = Default{}
	}
	id := NodeID(g.nodes.Insert(n))
	g.adj[id] = &Adjacency{}
	g.logger.Debugf("[GRAPH] Added node %s at (%.1f, %.1f) kind=%s", id, n.Pos.X, n.Pos.Y, n.Kind)
	return id
}

// AddEdge connects u -> v. Self-edges and unknown endpoints are programming
// errors and panic.
func (g *Graph) AddEdge(u, v NodeID) EdgeID {
	if u == v {
		panic(fmt.Errorf("add edge %s -> %s: %w", u, v, ErrSelfEdge))
	}
	au, ok := g.adj[u]
	if !ok || !g.nodes.Contains(Key(u)) {
		panic(fmt.Errorf("add edge from %s: %w", u, ErrNodeNotFound))
	}
	av, ok := g.adj[v]
	if !ok || !g.nodes.Contains(Key(v)) {
		panic(fmt.Errorf("add edge to %s: %w", v, ErrNodeNotFound))
	}
	id := EdgeID(g.edges.Insert(Edge{From: u, To: v}))
	au.Outgoing = append(au.Outgoing, Link{Node: v, Edge: id})
	av.Incoming = append(av.Incoming, Link{Node: u, Edge: id})
	g.logger.Debugf("[GRAPH] Added edge %s: %s -> %s", id, u, v)
	return id
}

// RemoveNode deletes id together with every edge touching it.
func (g *Graph) RemoveNode(id NodeID) error {
	a, ok := g.adj[id]
	if !ok || !g.nodes.Contains(Key(id)) {
		return fmt.Errorf("remove node %s: %w", id, ErrNodeNotFound)
	}
	for _, in := range a.Incoming {
		if other, ok := g.adj[in.Node]; ok {
			other.Outgoing = removeLink(other.Outgoing, Link{Node: id, Edge: in.Edge})
		}
		g.edges.Remove(Key(in.Edge))
	}
	for _, out := range a.Outgoing {
		if other, ok := g.adj[out.Node]; ok {
			other.Incoming = removeLink(other.Incoming, Link{Node: id, Edge: out.Edge})
		}
		g.edges.Remove(Key(out.Edge))
	}
	delete(g.adj, id)
	g.nodes.Remove(Key(id))
	g.logger.Debugf("[GRAPH] Removed node %s (%d in, %d out edges)", id, len(a.Incoming), len(a.Outgoing))
	return nil
}

func (g *Graph) RemoveEdge(id EdgeID) error {
	e, ok := g.edges.Get(Key(id))
	if !ok {
		return fmt.Errorf("remove edge %s: %w", id, ErrEdgeNotFound)
	}
	u, v := e.From, e.To
	if a, ok := g.adj[u]; ok {
		a.Outgoing = removeLink(a.Outgoing, Link{Node: v, Edge: id})
	}
	if a, ok := g.adj[v]; ok {
		a.Incoming = removeLink(a.Incoming, Link{Node: u, Edge: id})
	}
	g.edges.Remove(Key(id))
	g.logger.Debugf("[GRAPH] Removed edge %s: %s -> %s", id, u, v)
	return nil
}

// removeLink swap-removes l from links.
func removeLink(links []Link, l Link) []Link {
	for i, x := range links {
		if x == l {
			last := len(links) - 1
			links[i] = links[last]
			return links[:last]
		}
	}
	return links
}

// Node returns a pointer to the stored node; it stays valid until the next
// AddNode.
func (g *Graph) Node(id NodeID) (*Node, bool) { return g.nodes.Get(Key(id)) }

func (g *Graph) HasNode(id NodeID) bool { return g.nodes.Contains(Key(id)) }

func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	e, ok := g.edges.Get(Key(id))
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

func (g *Graph) HasEdge(id EdgeID) bool { return g.edges.Contains(Key(id)) }

// EdgePoints resolves both endpoint positions of id.
func (g *Graph) EdgePoints(id EdgeID) (from, to geom.Point, ok bool) {
	e, ok := g.edges.Get(Key(id))
	if !ok {
		return
	}
	u, uok := g.nodes.Get(Key(e.From))
	v, vok := g.nodes.Get(Key(e.To))
	if !uok || !vok {
		return from, to, false
	}
	return u.Pos, v.Pos, true
}

// Adjacency returns the links of id. The slices belong to the graph and must
// not be modified.
func (g *Graph) Adjacency(id NodeID) (Adjacency, bool) {
	a, ok := g.adj[id]
	if !ok {
		return Adjacency{}, false
	}
	return *a, true
}

// Outgoing returns the outgoing links of id, or nil if id is unknown.
func (g *Graph) Outgoing(id NodeID) []Link {
	if a, ok := g.adj[id]; ok {
		return a.Outgoing
	}
	return nil
}

func (g *Graph) SetPosition(id NodeID, p geom.Point) bool {
	n, ok := g.nodes.Get(Key(id))
	if !ok {
		return false
	}
	n.Pos = p
	return true
}

func (g *Graph) SetKind(id NodeID, k Kind) bool {
	n, ok := g.nodes.Get(Key(id))
	if !ok {
		return false
	}
	n.Kind = k
	g.logger.Debugf("[GRAPH] Node %s kind=%s", id, k)
	return true
}

// Nodes yields every live node in slot order.
func (g *Graph) Nodes() iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for k, n := range g.nodes.All() {
			if !yield(NodeID(k), n) {
				return
			}
		}
	}
}

// Edges yields every live edge in slot order.
func (g *Graph) Edges() iter.Seq2[EdgeID, Edge] {
	return func(yield func(EdgeID, Edge) bool) {
		for k, e := range g.edges.All() {
			if !yield(EdgeID(k), *e) {
				return
			}
		}
	}
}

func (g *Graph) NodeCount() int { return g.nodes.Len() }
func (g *Graph) EdgeCount() int { return g.edges.Len() }
