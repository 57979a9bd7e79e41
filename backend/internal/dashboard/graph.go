package dashboard

import (
	"fmt"
	"sort"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/relindex"
)

type NodeKind string

const (
	NodeCarrier NodeKind = "carrier"
	NodeBroker  NodeKind = "broker"
	NodeEntity  NodeKind = "entity"
	NodeOwner   NodeKind = "owner"
)

// Node IDs are "<kind>:<label>", so a broker linked both ways is one node.
type Node struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
}

// Edge always starts at a carrier node.
type Edge struct {
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Relation relindex.Field `json:"relation"`
}

type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func nodeKind(f relindex.Field) NodeKind {
	switch f {
	case relindex.FieldBrokerEntityOf:
		return NodeEntity
	case relindex.FieldRelationshipOwner:
		return NodeOwner
	}
	return NodeBroker
}

func nodeID(kind NodeKind, label string) string {
	return string(kind) + ":" + label
}

// BuildGraph returns the relationship graph of the given carriers, or of every
// carrier when none are given. Nodes are sorted by ID; edges by carrier, then
// relationship kind in column order, then target.
func BuildGraph(ix *relindex.Index, carriers []string) (Graph, error) {
	if ix == nil {
		return Graph{}, errNoDataset
	}
	if len(carriers) == 0 {
		carriers = ix.Names()
	}

	nodes := map[string]Node{}
	edges := make([]Edge, 0)
	seen := map[string]bool{}
	for _, name := range carriers {
		if seen[name] {
			continue
		}
		seen[name] = true
		e, ok := ix.Lookup(name)
		if !ok {
			return Graph{}, fmt.Errorf("graph %q: %w", name, relindex.ErrUnknownCarrier)
		}
		src := nodeID(NodeCarrier, name)
		nodes[src] = Node{ID: src, Label: name, Kind: NodeCarrier}
		for _, f := range relindex.RelationFields {
			kind := nodeKind(f)
			for _, v := range e.Values(f) {
				dst := nodeID(kind, v)
				nodes[dst] = Node{ID: dst, Label: v, Kind: kind}
				edges = append(edges, Edge{Source: src, Target: dst, Relation: f})
			}
		}
	}

	g := Graph{Nodes: make([]Node, 0, len(nodes)), Edges: edges}
	for _, n := range nodes {
		g.Nodes = append(g.Nodes, n)
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })

	order := map[relindex.Field]int{}
	for i, f := range relindex.RelationFields {
		order[f] = i
	}
	sort.SliceStable(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Relation != b.Relation {
			return order[a.Relation] < order[b.Relation]
		}
		return a.Target < b.Target
	})
	return g, nil
}
