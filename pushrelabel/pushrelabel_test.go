package pushrelabel

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/boenset/Galois/residual"
)

const maxTestWorkers = 6

func assertEqual[C comparable](t *testing.T, expected, actual C, prefix string) {
	if expected == actual {
		return
	}
	t.Fatalf("%s: expected %v, got %v", prefix, expected, actual)
}

func runAndVerify(t *testing.T, tc testCase, opts Options) int64 {
	g := buildGraph(tc)
	orig := cloneGraph(g)

	Run(g, opts)

	v := residual.NewVerifier(g)
	if err := v.Verify(orig); err != nil {
		t.Fatalf("%s (mode %d, workers %d): verification failed: %v", tc.Name, opts.Mode, opts.Workers, err)
	}
	return g.MaxFlowValue()
}

func TestFIFO(t *testing.T) {
	runModeAcrossGraphsAndWorkers(t, ModeFIFO)
}

func TestHighestLabel(t *testing.T) {
	runModeAcrossGraphsAndWorkers(t, ModeHL)
}

func TestDeterministicBase(t *testing.T) {
	runModeAcrossGraphsAndWorkers(t, ModeDetBase)
}

func TestDeterministicDisjoint(t *testing.T) {
	runModeAcrossGraphsAndWorkers(t, ModeDetDisjoint)
}

func runModeAcrossGraphsAndWorkers(t *testing.T, mode Mode) {
	for _, tc := range testGraphs {
		for i := 0; i < 5; i++ {
			workers := rand.Intn(maxTestWorkers-1) + 1
			got := runAndVerify(t, tc, Options{Workers: workers, Mode: mode})
			assertEqual(t, tc.MaxFlow, got, fmt.Sprintf("%s (workers=%d)", tc.Name, workers))
		}
	}
}

// TestSmallRelabelInterval forces a global relabel on nearly every round by
// setting the interval to 1, exercising the interleaving of discharge and
// global relabel rather than relying on the default interval never firing
// on these small graphs.
func TestSmallRelabelInterval(t *testing.T) {
	for _, tc := range testGraphs {
		got := runAndVerify(t, tc, Options{Workers: 3, Mode: ModeFIFO, RelabelInterval: 1})
		assertEqual(t, tc.MaxFlow, got, tc.Name+" (relabel_interval=1)")
	}
}

// TestSmallRelabelIntervalForcesMidDrainBreaks checks that a tiny
// relabel_interval actually interrupts the non-deterministic schedulers
// before the graph has converged, not merely once after the fact: on a
// graph wide enough to take more than a handful of discharges, the number
// of global relabels charged must exceed one.
func TestSmallRelabelIntervalForcesMidDrainBreaks(t *testing.T) {
	tc := testCase{
		Name: "wide fan into a long bottleneck chain",
		N:    10,
		Edges: [][3]int{
			{0, 1, 5}, {0, 2, 5}, {0, 3, 5}, {0, 4, 5},
			{1, 5, 5}, {2, 5, 5}, {3, 5, 5}, {4, 5, 5},
			{5, 6, 5}, {6, 7, 5}, {7, 8, 5}, {8, 9, 5},
		},
		Source:  0,
		Sink:    9,
		MaxFlow: 5,
	}

	for _, mode := range []Mode{ModeFIFO, ModeHL} {
		g := buildGraph(tc)
		stats := Run(g, Options{Workers: 4, Mode: mode, RelabelInterval: 1})
		if stats.GlobalRelabels <= 1 {
			t.Fatalf("mode %d: expected more than one global relabel mid-computation with relabel_interval=1, got %d", mode, stats.GlobalRelabels)
		}
		if got := g.MaxFlowValue(); got != tc.MaxFlow {
			t.Fatalf("mode %d: max flow = %d, want %d", mode, got, tc.MaxFlow)
		}
	}
}

// TestNegativeRelabelIntervalDisablesGlobalRelabel checks that a negative
// interval is honored as "never relabel globally" rather than silently
// falling back to the default, across every scheduling mode.
func TestNegativeRelabelIntervalDisablesGlobalRelabel(t *testing.T) {
	for _, mode := range []Mode{ModeFIFO, ModeHL, ModeDetBase, ModeDetDisjoint} {
		for _, tc := range testGraphs {
			g := buildGraph(tc)
			stats := Run(g, Options{Workers: 3, Mode: mode, RelabelInterval: -1})
			if stats.GlobalRelabels != 0 {
				t.Fatalf("%s (mode %d): expected no global relabels with a negative interval, got %d",
					tc.Name, mode, stats.GlobalRelabels)
			}
			if got := g.MaxFlowValue(); got != tc.MaxFlow {
				t.Fatalf("%s (mode %d): max flow = %d, want %d", tc.Name, mode, got, tc.MaxFlow)
			}
		}
	}
}
