package pushrelabel

import "github.com/boenset/Galois/residual"

// InitPreflow saturates every source-incident edge, sets height(source) =
// |V|, and returns the deduplicated set of neighbours left with positive
// excess -- the scheduler's initial work bag.
func InitPreflow(g *residual.Graph) []uint32 {
	src := &g.Nodes[g.Source]
	src.Height = g.MaxHeight()

	seen := make(map[uint32]bool)
	var initial []uint32

	for i := range src.OutEdges {
		e := &src.OutEdges[i]
		if e.Capacity <= 0 {
			continue
		}
		v := e.Dst
		c := int64(e.Capacity)
		g.Push(g.Source, v, i, c)
		g.Nodes[v].Excess += c
		if !seen[v] {
			seen[v] = true
			initial = append(initial, v)
		}
	}
	return initial
}
