// Package pushrelabel implements the parallel preflow-push max-flow engine:
// the discharge kernel, the work-bag scheduler (FIFO, highest-label, and the
// two deterministic replay modes), the global-relabel heuristic, and the
// post-run verifier wiring.
//
// Grounded directly on the discharge/relabel/globalRelabel state machine of
// original_source/lonestar/preflowpush/Preflowpush.cpp, reworked into Go
// goroutines and a work-bag in place of Galois's for_each/worklists, in the
// concurrency idiom of ScottSallinen-lollipop (atomic counters, CAS-guarded
// shared state, zerolog logging).
package pushrelabel

import (
	"math"

	"github.com/boenset/Galois/enforce"
	"github.com/boenset/Galois/residual"
)

// Alpha and Beta are Goldberg's global-relabel tuning parameters: the
// default relabel interval is alpha*|V| + |E|/3, and a discharge that
// relabels charges beta extra units of work toward that interval.
const (
	Alpha = 6
	Beta  = 12
)

// Discharge repeatedly pushes u's excess to lower-height neighbours until
// either the excess reaches zero or no admissible edge remains, relabelling
// and retrying in the latter case. onActivate is called (at most once) for
// each neighbour whose excess transitions from zero to positive by a push,
// excluding source and sink; the caller uses this to seed the work bag.
//
// Returns whether a relabel occurred during this discharge, which the
// scheduler uses to charge 1+Beta units of work instead of 1 toward the
// global-relabel counter.
func Discharge(g *residual.Graph, u uint32, onActivate func(v uint32)) (relabeled bool) {
	node := &g.Nodes[u]
	maxHeight := g.MaxHeight()

	if node.Excess == 0 || node.Height >= maxHeight {
		return false
	}

	for {
		if scanAndPush(g, u, onActivate) {
			return relabeled
		}
		relabel(g, u)
		relabeled = true
		if g.Nodes[u].Height >= maxHeight {
			return relabeled
		}
	}
}

// scanAndPush scans u's adjacency starting at Current, pushing along every
// admissible edge it finds, until either u's excess reaches zero (returns
// true, having stored the resume position into Current) or the adjacency is
// exhausted (returns false, leaving Current at len(OutEdges)).
func scanAndPush(g *residual.Graph, u uint32, onActivate func(v uint32)) (finished bool) {
	node := &g.Nodes[u]
	edges := node.OutEdges
	for i := int(node.Current); i < len(edges); i++ {
		e := &edges[i]
		if e.Capacity <= 0 {
			continue
		}
		v := e.Dst
		if node.Height != g.Nodes[v].Height+1 {
			continue
		}

		delta := min64(node.Excess, int64(e.Capacity))
		enforce.That(delta > 0, "scanAndPush: non-positive push amount")

		wasZero := g.Nodes[v].Excess == 0
		g.Push(u, v, i, delta)
		node.Excess -= delta
		g.Nodes[v].Excess += delta

		if wasZero && v != g.Source && v != g.Sink && onActivate != nil {
			onActivate(v)
		}

		if node.Excess == 0 {
			node.Current = uint32(i)
			return true
		}
	}
	node.Current = uint32(len(edges))
	return false
}

// relabel sets height(u) = 1 + min{height(v) : capacity(u,v) > 0}, and
// rewinds Current to the edge achieving that minimum so the next discharge
// resumes scanning from an edge now known to be admissible. If no edge has
// positive capacity (the pathological case flagged in the design notes --
// Discharge is only ever called with excess>0, so some residual edge must
// exist, but a defensive implementation should not assume it), height is
// clamped to |V| and the vertex is left inactive.
func relabel(g *residual.Graph, u uint32) {
	node := &g.Nodes[u]
	minHeight := uint32(math.MaxUint32)
	minEdge := 0
	for i, e := range node.OutEdges {
		if e.Capacity > 0 {
			if h := g.Nodes[e.Dst].Height; h < minHeight {
				minHeight, minEdge = h, i
			}
		}
	}

	maxHeight := g.MaxHeight()
	if minHeight == uint32(math.MaxUint32) {
		node.Height = maxHeight
		node.Current = uint32(len(node.OutEdges))
		return
	}

	minHeight++
	if minHeight < maxHeight {
		node.Height = minHeight
		node.Current = uint32(minEdge)
	} else {
		node.Height = maxHeight
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
