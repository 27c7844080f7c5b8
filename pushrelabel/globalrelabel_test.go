package pushrelabel

import (
	"testing"

	"github.com/boenset/Galois/residual"
)

// TestGlobalRelabelMatchesBFSDistance checks the defining property of a
// correct relabel: afterward every vertex's height equals its exact BFS
// distance to sink over edges with positive residual capacity (clamped to
// |V| for vertices that cannot reach sink at all), independent of worker
// count.
func TestGlobalRelabelMatchesBFSDistance(t *testing.T) {
	for _, tc := range testGraphs {
		for _, workers := range []int{1, 2, 5} {
			g := buildGraph(tc)
			InitPreflow(g)
			GlobalRelabel(g, workers)

			want := bfsDistancesFromSink(g)
			for i := range g.Nodes {
				if g.Nodes[i].Height != want[i] {
					t.Fatalf("%s (workers=%d): vertex %d height = %d, want %d",
						tc.Name, workers, i, g.Nodes[i].Height, want[i])
				}
			}
		}
	}
}

// bfsDistancesFromSink computes the same reverse-BFS distance GlobalRelabel
// is supposed to produce, independently and single-threaded, as an oracle.
func bfsDistancesFromSink(g *residual.Graph) []uint32 {
	maxHeight := g.MaxHeight()
	dist := make([]uint32, len(g.Nodes))
	for i := range dist {
		dist[i] = maxHeight
	}
	dist[g.Sink] = 0
	queue := []uint32{g.Sink}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range g.Nodes[u].OutEdges {
			v := e.Dst
			rev := g.FindEdge(v, u)
			if g.Nodes[v].OutEdges[rev].Capacity > 0 && dist[v] == maxHeight {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}
