package pushrelabel

import (
	"sort"
	"sync"

	"github.com/boenset/Galois/residual"
)

// DetBase processes a round's active set in a single fixed order -- active
// vertices sorted ascending by id -- committing each discharge before the
// next begins. The resulting sequence of (height, excess) snapshots after
// every global relabel is therefore identical across runs regardless of
// worker count, since there is exactly one possible commit order and it
// does not depend on goroutine scheduling.
func DetBase(g *residual.Graph, active []uint32, onActivate func(v uint32)) (relabels int) {
	ordered := append([]uint32(nil), active...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	seen := make(map[uint32]bool, len(ordered))
	activate := func(v uint32) {
		if !seen[v] {
			seen[v] = true
			onActivate(v)
		}
	}

	for _, u := range ordered {
		if Discharge(g, u, activate) {
			relabels++
		}
	}
	return relabels
}

// DetDisjoint partitions a round's active set into successive batches whose
// closed neighbourhoods are pairwise disjoint, using a deterministic greedy
// scan over vertices sorted ascending by id: a vertex joins the current
// batch if none of its closed neighbourhood has already been claimed this
// batch, otherwise it waits for the next one. Batch membership depends only
// on graph structure and vertex ids, never on thread count or scheduling, so
// the partition -- and hence the result -- is identical on every run.
// Vertices within a batch are discharged concurrently without any locking,
// since disjointness guarantees their writes cannot collide; batches run
// one after another.
func DetDisjoint(g *residual.Graph, active []uint32, workers int, onActivate func(v uint32)) (relabels int) {
	ordered := append([]uint32(nil), active...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	var mu sync.Mutex
	seen := make(map[uint32]bool, len(ordered))
	activate := func(v uint32) {
		mu.Lock()
		defer mu.Unlock()
		if !seen[v] {
			seen[v] = true
			onActivate(v)
		}
	}

	var relabelCount int
	var relabelMu sync.Mutex

	for len(ordered) > 0 {
		batch, rest := claimDisjointBatch(g, ordered)
		ordered = rest

		parallelForEachIndex(len(batch), workers, func(i int) {
			if Discharge(g, batch[i], activate) {
				relabelMu.Lock()
				relabelCount++
				relabelMu.Unlock()
			}
		})
	}
	return relabelCount
}

// claimDisjointBatch scans ordered (ascending by id) and greedily collects
// every vertex whose closed neighbourhood does not intersect any
// neighbourhood already claimed for this batch, returning the claimed batch
// and the vertices deferred to the next one.
func claimDisjointBatch(g *residual.Graph, ordered []uint32) (batch, rest []uint32) {
	claimed := make(map[uint32]bool)
	for _, u := range ordered {
		ids := neighborhoodIDs(g, u)
		conflict := false
		for _, id := range ids {
			if claimed[id] {
				conflict = true
				break
			}
		}
		if conflict {
			rest = append(rest, u)
			continue
		}
		for _, id := range ids {
			claimed[id] = true
		}
		batch = append(batch, u)
	}
	return batch, rest
}
