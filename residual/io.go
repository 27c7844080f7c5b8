package residual

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoadOptions configures how LoadFile interprets and post-processes an
// edge-list file.
type LoadOptions struct {
	// UnitCapacity overrides every parsed capacity to 1.
	UnitCapacity bool
	// SkipSymmetrize skips the symmetrize pre-pass. Set this when the input
	// file is already known to carry both directions of every arc
	// explicitly; the loader then trusts the file rather than inserting
	// zero-capacity reverses, so a file that is not actually symmetric will
	// leave FindEdge's paired-edge precondition broken.
	SkipSymmetrize bool
}

// LoadFile reads a graph in the engine's plain edge-list format:
//
//	<numVertices> <numEdges>
//	<u> <v> <capacity>   (repeated numEdges times)
//
// This loader, and the on-disk format it reads, sit outside the core this
// module implements -- the engine only ever needs a *Graph with sorted,
// paired adjacency. LoadFile exists so the CLI in cmd/maxflow-pr has
// something concrete to point at; swapping it for a different file format
// or an in-memory graph builder does not touch pushrelabel at all.
func LoadFile(path string, opts LoadOptions) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n, m, err := readHeader(sc)
	if err != nil {
		return nil, fmt.Errorf("reading graph header: %w", err)
	}

	g := NewGraph(n)
	for i := range g.Nodes {
		g.Nodes[i].Id = uint32(i)
	}

	for i := 0; i < m; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("graph file %q: expected %d edges, found %d", path, m, i)
		}
		u, v, cap, err := parseEdgeLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("graph file %q, edge %d: %w", path, i, err)
		}
		if int(u) >= n || int(v) >= n {
			return nil, fmt.Errorf("graph file %q, edge %d: vertex out of range", path, i)
		}
		if opts.UnitCapacity {
			cap = 1
		}
		addDirectedEdge(g, u, v, cap)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading graph file %q: %w", path, err)
	}

	if !opts.SkipSymmetrize {
		Symmetrize(g)
	}
	for i := range g.Nodes {
		SortAdjacency(g.Nodes[i].OutEdges)
	}
	return g, nil
}

func readHeader(sc *bufio.Scanner) (n, m int, err error) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return 0, 0, fmt.Errorf("malformed header %q", line)
		}
		n, err = strconv.Atoi(fields[0])
		if err != nil {
			return 0, 0, err
		}
		m, err = strconv.Atoi(fields[1])
		if err != nil {
			return 0, 0, err
		}
		return n, m, nil
	}
	return 0, 0, fmt.Errorf("empty graph file")
}

func parseEdgeLine(line string) (u, v uint32, capacity int32, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed edge line %q", line)
	}
	uu, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	vv, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	if c < 0 {
		return 0, 0, 0, fmt.Errorf("negative capacity %d", c)
	}
	return uint32(uu), uint32(vv), int32(c), nil
}

// addDirectedEdge appends a forward edge (u,v) with the given capacity. It
// does not create a reverse edge; Symmetrize does that in bulk once loading
// is finished, which avoids quadratic re-scans of partially built adjacency
// lists while the file is still being read.
func addDirectedEdge(g *Graph, u, v uint32, capacity int32) {
	if u == v {
		log.Warn().Msg("ignoring self-loop at vertex " + strconv.Itoa(int(u)))
		return
	}
	g.Nodes[u].OutEdges = append(g.Nodes[u].OutEdges, Edge{Dst: v, Capacity: capacity})
}

// Symmetrize establishes the paired-edge postcondition every component past
// the loader relies on: for every directed edge (u,v) there is a distinct
// edge (v,u) in the adjacency list, with capacity zero when no such arc was
// present in the input. It does not sort; callers sort each adjacency list
// afterward (LoadFile does this once per node after symmetrizing).
func Symmetrize(g *Graph) {
	// hasEdge[u][v] records that u's adjacency already holds an arc to v.
	hasEdge := make([]map[uint32]bool, len(g.Nodes))
	for u := range g.Nodes {
		hasEdge[u] = make(map[uint32]bool, len(g.Nodes[u].OutEdges))
		for _, e := range g.Nodes[u].OutEdges {
			hasEdge[u][e.Dst] = true
		}
	}
	for u := range g.Nodes {
		for _, e := range g.Nodes[u].OutEdges {
			if !hasEdge[e.Dst][uint32(u)] {
				g.Nodes[e.Dst].OutEdges = append(g.Nodes[e.Dst].OutEdges, Edge{Dst: uint32(u), Capacity: 0})
				hasEdge[e.Dst][uint32(u)] = true
			}
		}
	}
}
