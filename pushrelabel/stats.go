package pushrelabel

import "github.com/boenset/Galois/utils"

// Stats accumulates the run's work counters and phase timings, mirroring
// the counters Preflowpush.cpp prints at the end of a run (discharges,
// relabels, global relabel passes) plus wall-clock timing per phase in the
// style of ScottSallinen-lollipop's utils.Watch-based instrumentation.
type Stats struct {
	Discharges     int64
	Relabels       int64
	GlobalRelabels int64

	PreflowTime       utils.Watch
	DischargeTime     utils.Watch
	GlobalRelabelTime utils.Watch
	VerifyTime        utils.Watch
}

func newStats() *Stats {
	return &Stats{}
}
