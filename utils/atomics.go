package utils

import "sync/atomic"

// AtomicMinUint32 stores new into targetVal if new is strictly smaller than
// the current value, retrying under contention. Returns the value that was
// in place before the (possible) update.
//
// This is the CAS-min primitive the global-relabel BFS relies on: many
// goroutines may try to lower the same vertex's height concurrently, and
// only the smallest candidate height may ever commit.
//
//go:nosplit
func AtomicMinUint32(targetVal *uint32, new uint32) (old uint32) {
	for {
		old = atomic.LoadUint32(targetVal)
		if new >= old {
			return old
		}
		if atomic.CompareAndSwapUint32(targetVal, old, new) {
			return old
		}
	}
}

// PaddedCounter is a per-thread accumulator kept on its own cache line, so
// that independent workers bumping their own counters never false-share.
type PaddedCounter struct {
	v   int64
	_   [7]int64 // pad to 64 bytes alongside v
}

func (c *PaddedCounter) Add(delta int64) {
	atomic.AddInt64(&c.v, delta)
}

func (c *PaddedCounter) Load() int64 {
	return atomic.LoadInt64(&c.v)
}

func (c *PaddedCounter) Reset() {
	atomic.StoreInt64(&c.v, 0)
}
