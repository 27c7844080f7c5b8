package pushrelabel

import (
	"sync"

	"github.com/boenset/Galois/residual"
	"github.com/boenset/Galois/utils"
)

// GlobalRelabel restores exact BFS-distance heights from the sink in the
// residual graph and returns the freshly discovered active set. It is a
// barrier: callers must not let any discharge run concurrently with it, and
// must not resume discharge until it returns.
//
// Grounded on ResetHeights/UpdateHeights/FindWork in Preflowpush.cpp,
// ported from Galois's do_all_local/BulkSynchronous worklist to explicit
// goroutines operating wave by wave, with the CAS-min height update from
// ScottSallinen-lollipop's utils.AtomicMinUint32 standing in for Galois's
// __sync_bool_compare_and_swap.
func GlobalRelabel(g *residual.Graph, workers int) []uint32 {
	resetHeights(g, workers)
	reverseBFS(g, workers)
	return findWork(g, workers)
}

func resetHeights(g *residual.Graph, workers int) {
	maxHeight := g.MaxHeight()
	parallelForEachIndex(len(g.Nodes), workers, func(i int) {
		g.Nodes[i].Height = maxHeight
		g.Nodes[i].Current = 0
	})
	g.Nodes[g.Sink].Height = 0
}

// reverseBFS performs a level-synchronous BFS from sink over the reverse
// residual graph: for a vertex u in the current wave, a neighbour v listed
// in u's own adjacency is a predecessor (can push flow forward into u)
// exactly when the paired arc (v,u) has positive residual capacity. Any
// number of workers may race to lower v's height; only the smallest
// candidate height ever commits, and only the worker whose CAS wins
// enqueues v for the next wave -- this is what keeps BFS levels correct
// under concurrent writers.
func reverseBFS(g *residual.Graph, workers int) {
	frontier := []uint32{g.Sink}
	for len(frontier) > 0 {
		var mu sync.Mutex
		var next []uint32

		parallelForEachIndex(len(frontier), workers, func(i int) {
			u := frontier[i]
			candidate := g.Nodes[u].Height + 1
			for _, e := range g.Nodes[u].OutEdges {
				v := e.Dst
				rev := g.FindEdge(v, u)
				if g.Nodes[v].OutEdges[rev].Capacity <= 0 {
					continue
				}
				if old := utils.AtomicMinUint32(&g.Nodes[v].Height, candidate); candidate < old {
					mu.Lock()
					next = append(next, v)
					mu.Unlock()
				}
			}
		})

		frontier = next
	}
}

func findWork(g *residual.Graph, workers int) []uint32 {
	maxHeight := g.MaxHeight()
	var mu sync.Mutex
	var active []uint32

	parallelForEachIndex(len(g.Nodes), workers, func(i int) {
		u := uint32(i)
		if u == g.Source || u == g.Sink {
			return
		}
		node := &g.Nodes[i]
		if node.Height == 0 || node.Height >= maxHeight {
			return
		}
		if node.Excess > 0 {
			mu.Lock()
			active = append(active, u)
			mu.Unlock()
		}
	})
	return active
}

// parallelForEachIndex splits [0,n) into contiguous chunks across workers
// goroutines and waits for all of them, mirroring the do_all_local parallel
// forall used for ResetHeights/FindWork in the reference implementation.
func parallelForEachIndex(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers = clampWorkers(workers, n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := utils.Min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

func clampWorkers(workers, n int) int {
	if workers < 1 {
		return 1
	}
	if workers > n {
		return n
	}
	return workers
}
