// Package residual implements the shared mutable state of the max-flow
// engine: a directed graph whose edges carry residual capacity, with every
// arc (u,v) paired with a reverse arc (v,u) stored in v's adjacency list.
//
// Grounded on the Config/Graph type in original_source/lonestar/preflowpush/
// Preflowpush.cpp (LC_Linear_Graph with sorted adjacency and findEdge), and
// on the sorted-adjacency / edge-lookup conventions used throughout
// ScottSallinen-lollipop's graph package.
package residual

import (
	"sort"

	"github.com/boenset/Galois/enforce"
	"github.com/boenset/Galois/utils"
)

// Edge is one directed arc. Capacity is the *residual* capacity remaining
// on the arc; it is mutated in lockstep with the paired reverse arc by
// Push so that Capacity(u,v) + Capacity(v,u) stays invariant.
type Edge struct {
	Dst      uint32
	Capacity int32
}

// Node holds the per-vertex state mutated by discharge and global relabel.
// OutEdges is kept sorted by Dst ascending for the lifetime of the run;
// this bounds FindEdge's cost and lets discharge resume scanning from
// Current without rescanning already-exhausted edges.
type Node struct {
	Id       uint32
	Excess   int64
	Height   uint32
	Current  uint32
	OutEdges []Edge
}

// Graph is the residual graph. Nodes and edges are allocated once at load
// time; only Excess, Height, Current and Edge.Capacity mutate afterward.
type Graph struct {
	Nodes  []Node
	Source uint32
	Sink   uint32
}

// MaxHeight is used as both "unreachable" and the clamp value for a vertex
// whose relabel finds no outgoing residual edge; it is always graph size.
func (g *Graph) MaxHeight() uint32 {
	return uint32(len(g.Nodes))
}

// MaxFlowValue reads off the total flow delivered once the run has
// converged: excess(sink) after a run with no remaining augmenting path
// equals the value of a maximum flow.
func (g *Graph) MaxFlowValue() int64 {
	return g.Nodes[g.Sink].Excess
}

func NewGraph(numVertices int) *Graph {
	return &Graph{Nodes: make([]Node, numVertices)}
}

// findEdgeLinearThreshold is the out-degree below which FindEdge scans
// linearly rather than binary-searching the sorted adjacency list.
const findEdgeLinearThreshold = 32

// FindEdge returns the index of the unique edge (u,v) in u's adjacency.
// Precondition: the edge exists (callers only ask for edges known to be
// paired by construction). A miss is an invariant violation, not a normal
// failure mode -- it indicates the loader failed to pair every edge.
func (g *Graph) FindEdge(u, v uint32) int {
	edges := g.Nodes[u].OutEdges
	if len(edges) < findEdgeLinearThreshold {
		for i := range edges {
			if edges[i].Dst == v {
				return i
			}
		}
	} else {
		idx, ok := utils.BinarySearchIdxFunc(edges, v, func(i int, target uint32) int {
			switch {
			case edges[i].Dst < target:
				return -1
			case edges[i].Dst > target:
				return 1
			default:
				return 0
			}
		})
		if ok {
			return idx
		}
	}
	enforce.That(false, "FindEdge: no paired edge ("+utils.V(u)+" -> "+utils.V(v)+"); loader failed to pair every edge")
	return -1
}

// Push moves delta units of residual capacity from u to v along the edge at
// handle (which must be the edge (u,v)). It decrements capacity(u,v) and
// increments the paired capacity(v,u), keeping their sum invariant. Not
// atomic across the pair: correctness during the non-deterministic
// scheduler relies on per-vertex neighborhood acquisition (see pushrelabel
// package), not on this call itself.
func (g *Graph) Push(u, v uint32, handle int, delta int64) {
	enforce.That(delta >= 0, "Push: delta must be non-negative")
	g.Nodes[u].OutEdges[handle].Capacity -= int32(delta)
	rev := g.FindEdge(v, u)
	g.Nodes[v].OutEdges[rev].Capacity += int32(delta)
}

// SortAdjacency restores the ascending-Dst ordering FindEdge and the
// discharge scan both depend on. Called once per node after all of that
// node's edges have been appended at load time.
func SortAdjacency(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].Dst < edges[j].Dst })
}
