package pushrelabel

import "github.com/boenset/Galois/residual"

// testCase mirrors the table-driven TestCase used for the reference
// push-relabel suite: a small graph, its source/sink, and the max-flow
// value a correct run must produce.
type testCase struct {
	Name    string
	N       int
	Edges   [][3]int // {u, v, capacity}
	Source  int
	Sink    int
	MaxFlow int64
}

var testGraphs = []testCase{
	{
		Name:    "single edge",
		N:       2,
		Edges:   [][3]int{{0, 1, 7}},
		Source:  0,
		Sink:    1,
		MaxFlow: 7,
	},
	{
		Name:    "path bottleneck",
		N:       3,
		Edges:   [][3]int{{0, 1, 5}, {1, 2, 3}},
		Source:  0,
		Sink:    2,
		MaxFlow: 3,
	},
	{
		Name: "diamond",
		N:    4,
		Edges: [][3]int{
			{0, 1, 10}, {0, 2, 10},
			{1, 3, 4}, {2, 3, 6},
		},
		Source:  0,
		Sink:    3,
		MaxFlow: 10,
	},
	{
		Name:    "disconnected",
		N:       3,
		Edges:   [][3]int{{1, 2, 9}},
		Source:  0,
		Sink:    2,
		MaxFlow: 0,
	},
	{
		Name: "long chain needs cascading relabels",
		N:    5,
		Edges: [][3]int{
			{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1},
		},
		Source:  0,
		Sink:    4,
		MaxFlow: 1,
	},
	{
		Name: "cycle in the middle",
		N:    4,
		Edges: [][3]int{
			{0, 1, 5}, {1, 2, 5}, {2, 1, 5}, {2, 3, 5},
		},
		Source:  0,
		Sink:    3,
		MaxFlow: 5,
	},
	{
		Name: "three disjoint augmenting paths",
		N:    6,
		Edges: [][3]int{
			{0, 1, 4}, {1, 5, 4},
			{0, 2, 6}, {2, 3, 6}, {3, 5, 6},
			{0, 4, 2}, {4, 5, 1},
		},
		Source:  0,
		Sink:    5,
		MaxFlow: 11,
	},
	{
		Name:    "single edge",
		N:       2,
		Edges:   [][3]int{{0, 1, 5}},
		Source:  0,
		Sink:    1,
		MaxFlow: 5,
	},
	{
		Name: "diamond with crossing edge",
		N:    4,
		Edges: [][3]int{
			{0, 1, 3}, {0, 2, 2}, {1, 3, 2}, {2, 3, 3}, {1, 2, 1},
		},
		Source:  0,
		Sink:    3,
		MaxFlow: 5,
	},
	{
		Name:    "single bottleneck edge",
		N:       4,
		Edges:   [][3]int{{0, 1, 10}, {1, 2, 1}, {2, 3, 10}},
		Source:  0,
		Sink:    3,
		MaxFlow: 1,
	},
	{
		Name:    "edge to nowhere near sink",
		N:       3,
		Edges:   [][3]int{{0, 1, 4}},
		Source:  0,
		Sink:    2,
		MaxFlow: 0,
	},
	{
		Name:    "two parallel unit-width pipes",
		N:       5,
		Edges:   [][3]int{{0, 1, 3}, {0, 2, 3}, {1, 4, 3}, {2, 4, 3}},
		Source:  0,
		Sink:    4,
		MaxFlow: 6,
	},
	{
		Name: "unit-capacity bipartite matching as flow",
		N:    8,
		Edges: [][3]int{
			{0, 1, 1}, {0, 2, 1}, {0, 3, 1},
			{1, 4, 1}, {1, 5, 1}, {1, 6, 1},
			{2, 4, 1}, {2, 5, 1}, {2, 6, 1},
			{3, 4, 1}, {3, 5, 1}, {3, 6, 1},
			{4, 7, 1}, {5, 7, 1}, {6, 7, 1},
		},
		Source:  0,
		Sink:    7,
		MaxFlow: 3,
	},
}

// buildGraph constructs a residual graph from a directed edge list, pairing
// every forward arc with a reverse arc of capacity zero where none was
// given, the same postcondition residual.LoadFile establishes.
func buildGraph(tc testCase) *residual.Graph {
	g := residual.NewGraph(tc.N)
	for i := range g.Nodes {
		g.Nodes[i].Id = uint32(i)
	}
	for _, e := range tc.Edges {
		u, v, c := uint32(e[0]), uint32(e[1]), int32(e[2])
		g.Nodes[u].OutEdges = append(g.Nodes[u].OutEdges, residual.Edge{Dst: v, Capacity: c})
	}
	residual.Symmetrize(g)
	for i := range g.Nodes {
		residual.SortAdjacency(g.Nodes[i].OutEdges)
	}
	g.Source = uint32(tc.Source)
	g.Sink = uint32(tc.Sink)
	return g
}

func cloneGraph(g *residual.Graph) *residual.Graph {
	out := residual.NewGraph(len(g.Nodes))
	out.Source, out.Sink = g.Source, g.Sink
	for i := range g.Nodes {
		out.Nodes[i].Id = g.Nodes[i].Id
		out.Nodes[i].OutEdges = append([]residual.Edge(nil), g.Nodes[i].OutEdges...)
	}
	return out
}
