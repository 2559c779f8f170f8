package engine

import (
	"github.com/ingyamilmolinar/nodeseq/core/geom"
	"github.com/ingyamilmolinar/nodeseq/core/model"
)

// Demo describes the starter graph. Its topology: a spawner fans out to two
// samples, they merge into a third, which fans out again.
type Demo struct {
	Spawner model.NodeID
	Nodes   []model.NodeID
	Edges   []model.EdgeID
}

// SeedDemo adds the starter graph to s, with the spawner firing every
// barDelay bars starting now.
func (s *State) SeedDemo(barDelay float64) Demo {
	g := s.Graph
	add := func(x, y float64, k model.Kind) model.NodeID {
		return g.AddNode(model.Node{Pos: geom.Pt(x, y), Kind: k})
	}
	sp := add(100, 300, model.Spawner{BarDelay: barDelay, NextSpawn: s.Clock.Time})
	hi := add(250, 220, model.SampleTrigger{Sample: 0})
	lo := add(250, 380, model.SampleTrigger{Sample: 1})
	mid := add(400, 300, model.SampleTrigger{Sample: 2})
	up := add(550, 220, model.SampleTrigger{Sample: 3})
	end := add(550, 380, model.Default{})

	d := Demo{Spawner: sp, Nodes: []model.NodeID{sp, hi, lo, mid, up, end}}
	for _, e := range [][2]model.NodeID{{sp, hi}, {sp, lo}, {hi, mid}, {lo, mid}, {mid, up}, {mid, end}} {
		d.Edges = append(d.Edges, g.AddEdge(e[0], e[1]))
	}
	s.logger.Infof("[ENGINE] Seeded demo graph: %d nodes, %d edges", len(d.Nodes), len(d.Edges))
	return d
}
