package pushrelabel

import (
	"sync"

	"github.com/boenset/Galois/residual"
)

// WorkBag is the scheduler's active-vertex container. Implementations need
// not be FIFO: Pop is free to return whichever vertex the ordering policy
// currently prefers, as long as every Pushed vertex is eventually Popped.
type WorkBag interface {
	Push(v uint32)
	Pop() (uint32, bool)
	Len() int
}

// FIFOBag is the default ordering: plain first-in-first-out, giving the
// engine's non-deterministic mode the same work-discovery order as the
// reference implementation's default worklist.
type FIFOBag struct {
	mu    sync.Mutex
	items []uint32
}

func NewFIFOBag(initial []uint32) *FIFOBag {
	b := &FIFOBag{items: make([]uint32, len(initial))}
	copy(b.items, initial)
	return b
}

func (b *FIFOBag) Push(v uint32) {
	b.mu.Lock()
	b.items = append(b.items, v)
	b.mu.Unlock()
}

func (b *FIFOBag) Pop() (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return 0, false
	}
	v := b.items[0]
	b.items = b.items[1:]
	return v, true
}

func (b *FIFOBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// HLBag buckets vertices by height and always pops from the highest
// non-empty bucket, approximating Galois's GGreater/Indexer ordering:
// discharging the highest vertex first tends to push excess toward the
// sink instead of bouncing it between low-height vertices, which in
// practice needs fewer relabels than FIFO on wide graphs.
type HLBag struct {
	mu      sync.Mutex
	buckets [][]uint32
	top     int
	count   int
}

func NewHLBag(initial []uint32, g *residual.Graph) *HLBag {
	b := &HLBag{buckets: make([][]uint32, g.MaxHeight()+1), top: -1}
	for _, v := range initial {
		b.pushLocked(v, int(g.Nodes[v].Height))
	}
	return b
}

func (b *HLBag) pushLocked(v uint32, height int) {
	if height >= len(b.buckets) {
		height = len(b.buckets) - 1
	}
	b.buckets[height] = append(b.buckets[height], v)
	b.count++
	if height > b.top {
		b.top = height
	}
}

// PushAt buckets v at the given height, normally v's height at the moment a
// push activates it (the scheduler calls it from inside the discharge of the
// pushing neighbour). The bucket is not moved if v's height rises before v
// is popped, so the highest-label order is approximate.
func (b *HLBag) PushAt(v uint32, height uint32) {
	b.mu.Lock()
	b.pushLocked(v, int(height))
	b.mu.Unlock()
}

// Push exists to satisfy WorkBag; HLBag needs the height at push time, so
// callers that know it should call PushAt instead. Push buckets at height 0,
// which is only ever correct for vertices the caller has no better estimate
// for (this is never invoked by the engine's own scheduler, only by code
// written generically against WorkBag).
func (b *HLBag) Push(v uint32) {
	b.PushAt(v, 0)
}

func (b *HLBag) Pop() (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.top >= 0 && len(b.buckets[b.top]) == 0 {
		b.top--
	}
	if b.top < 0 {
		return 0, false
	}
	bucket := b.buckets[b.top]
	v := bucket[len(bucket)-1]
	b.buckets[b.top] = bucket[:len(bucket)-1]
	b.count--
	return v, true
}

func (b *HLBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// NeighborhoodLocks grants advisory write ownership over a vertex's closed
// neighbourhood (itself plus every adjacent vertex) before a discharge may
// mutate shared state: a push touches both u's outgoing edge and the paired
// reverse edge stored in the neighbour's own adjacency list, so two workers
// discharging adjacent vertices concurrently must not interleave those
// writes. Locks are always acquired in ascending vertex-id order, which
// rules out the circular wait a naive "lock u, then lock each neighbour"
// scheme would be exposed to.
type NeighborhoodLocks struct {
	locks []sync.Mutex
}

func NewNeighborhoodLocks(n int) *NeighborhoodLocks {
	return &NeighborhoodLocks{locks: make([]sync.Mutex, n)}
}

// Acquire locks u and every distinct neighbour reachable from u's adjacency,
// in ascending id order, and returns a function that releases them all.
func (n *NeighborhoodLocks) Acquire(g *residual.Graph, u uint32) func() {
	ids := neighborhoodIDs(g, u)
	for _, id := range ids {
		n.locks[id].Lock()
	}
	return func() {
		for _, id := range ids {
			n.locks[id].Unlock()
		}
	}
}

func neighborhoodIDs(g *residual.Graph, u uint32) []uint32 {
	seen := map[uint32]bool{u: true}
	ids := []uint32{u}
	for _, e := range g.Nodes[u].OutEdges {
		if !seen[e.Dst] {
			seen[e.Dst] = true
			ids = append(ids, e.Dst)
		}
	}
	insertionSortUint32(ids)
	return ids
}

func insertionSortUint32(ids []uint32) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
