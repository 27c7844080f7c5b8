package pushrelabel

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/boenset/Galois/residual"
	"github.com/boenset/Galois/utils"
)

// Mode selects how the active set is scheduled across workers.
type Mode int

const (
	// ModeFIFO is the non-deterministic default: a single shared FIFO work
	// bag drained concurrently, advisory-locked per neighbourhood.
	ModeFIFO Mode = iota
	// ModeHL is ModeFIFO with highest-label ordering instead of FIFO.
	ModeHL
	// ModeDetBase commits one round's discharges in a single fixed order.
	ModeDetBase
	// ModeDetDisjoint commits one round's discharges in deterministically
	// computed disjoint batches, parallel within a batch.
	ModeDetDisjoint
)

// Options configures a Run.
type Options struct {
	Workers int
	Mode    Mode
	// RelabelInterval overrides the default Alpha*|V| + |E|/3 threshold of
	// accumulated work between global relabel passes. Zero means default;
	// negative disables global relabel entirely.
	RelabelInterval int64
}

// Run drives the engine to completion: preflow initialization, repeated
// rounds of discharge interleaved with global relabel on the configured
// schedule, until no vertex remains active. g is mutated in place; callers
// verify the result with residual.Verifier against a separately loaded
// copy of the original graph.
func Run(g *residual.Graph, opts Options) *Stats {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	stats := newStats()

	stats.PreflowTime.Start()
	active := InitPreflow(g)
	stats.PreflowTime.Pause()

	stats.DischargeTime.Start()
	stats.DischargeTime.Pause()
	stats.GlobalRelabelTime.Start()
	stats.GlobalRelabelTime.Pause()

	var interval int64
	switch {
	case opts.RelabelInterval < 0:
		interval = math.MaxInt64 // disabled: never crossed, so global relabel never fires
	case opts.RelabelInterval == 0:
		interval = int64(Alpha)*int64(len(g.Nodes)) + int64(countEdges(g))/3
	default:
		interval = opts.RelabelInterval
	}
	var workSinceRelabel int64

	for len(active) > 0 {
		stats.DischargeTime.Unpause()
		var discharges, relabels int64
		var broke bool
		var next []uint32

		switch opts.Mode {
		case ModeDetBase:
			var mu sync.Mutex
			r := DetBase(g, active, func(v uint32) {
				mu.Lock()
				next = append(next, v)
				mu.Unlock()
			})
			discharges, relabels = int64(len(active)), int64(r)
		case ModeDetDisjoint:
			var mu sync.Mutex
			r := DetDisjoint(g, active, opts.Workers, func(v uint32) {
				mu.Lock()
				next = append(next, v)
				mu.Unlock()
			})
			discharges, relabels = int64(len(active)), int64(r)
		default:
			// broke is true iff a worker's per-thread quota was crossed before
			// the bag drained naturally; Run must then always rediscover the
			// active set via GlobalRelabel rather than trust workSinceRelabel,
			// since an abandoned bag's remaining vertices are not reflected
			// anywhere else.
			discharges, relabels, broke = runNonDet(g, active, opts, workSinceRelabel, interval)
		}
		stats.DischargeTime.Pause()

		stats.Discharges += discharges
		stats.Relabels += relabels
		workSinceRelabel += discharges + relabels*Beta

		if broke || workSinceRelabel >= interval {
			stats.GlobalRelabelTime.Unpause()
			active = GlobalRelabel(g, opts.Workers)
			stats.GlobalRelabelTime.Pause()
			stats.GlobalRelabels++
			workSinceRelabel = 0
		} else {
			active = next
		}
	}

	return stats
}

// runNonDet drains a live shared work bag with opts.Workers goroutines, each
// under per-neighbourhood advisory locking. It stops either when the bag and
// every in-flight push it spawned have been accounted for (true local
// convergence), or earlier, the moment any one worker's own cache-padded
// work counter crosses its share -- (interval-alreadyAccumulated)/Workers --
// of the global-relabel threshold. That worker sets a shared break flag;
// every worker (including ones mid-backoff on an empty bag) checks the flag
// between discharges and returns without draining what is left of the bag,
// trusting the global relabel that follows to rediscover the true active
// set from scratch. Returns the total discharge and relabel counts charged
// during the drain, plus whether a break actually fired (as opposed to the
// bag draining to true local convergence on its own).
func runNonDet(g *residual.Graph, initial []uint32, opts Options, alreadyAccumulated, interval int64) (discharges, relabels int64, broke bool) {
	var bag WorkBag
	if opts.Mode == ModeHL {
		bag = NewHLBag(initial, g)
	} else {
		bag = NewFIFOBag(initial)
	}
	locks := NewNeighborhoodLocks(len(g.Nodes))

	var inFlight atomic.Int64
	inFlight.Store(int64(len(initial)))

	push := func(v uint32) {
		inFlight.Add(1)
		if hl, ok := bag.(*HLBag); ok {
			hl.PushAt(v, g.Nodes[v].Height)
		} else {
			bag.Push(v)
		}
	}

	remaining := interval - alreadyAccumulated
	if remaining < 1 {
		remaining = 1
	}
	perWorkerQuota := remaining / int64(opts.Workers)
	if perWorkerQuota < 1 {
		perWorkerQuota = 1
	}

	// One cache-padded counter per worker: each is written by exactly one
	// goroutine, so summing them after the join needs no synchronization
	// during the run itself.
	dischargeCounts := make([]utils.PaddedCounter, opts.Workers)
	relabelCounts := make([]utils.PaddedCounter, opts.Workers)
	var breakRequested atomic.Bool

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			backoff := 0
			for {
				if breakRequested.Load() {
					return
				}
				v, ok := bag.Pop()
				if !ok {
					if inFlight.Load() == 0 {
						return
					}
					utils.BackOff(backoff)
					backoff++
					continue
				}
				backoff = 0

				release := locks.Acquire(g, v)
				relabeled := Discharge(g, v, push)
				release()

				dischargeCounts[worker].Add(1)
				if relabeled {
					relabelCounts[worker].Add(1)
				}
				inFlight.Add(-1)

				local := dischargeCounts[worker].Load() + relabelCounts[worker].Load()*Beta
				if local >= perWorkerQuota {
					breakRequested.Store(true)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < opts.Workers; w++ {
		discharges += dischargeCounts[w].Load()
		relabels += relabelCounts[w].Load()
	}
	return discharges, relabels, breakRequested.Load()
}

func countEdges(g *residual.Graph) int {
	n := 0
	for i := range g.Nodes {
		n += len(g.Nodes[i].OutEdges)
	}
	return n
}
