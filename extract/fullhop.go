package extract

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/oleksiik/enclose/graph"
)

// FullKHop extracts the h-hop enclosing subgraph around the pair
// (src, dst): breadth-first expansion runs from each endpoint
// independently to depth h, tracking the minimum distance at which every
// node is first reached, and the result is the union of both frontiers.
//
// Fully deterministic unless fringe subsampling is requested
// (WithRatioPerHop below 1.0 or WithMaxNodesPerHop), in which case the
// supplied WithFringeRNG stream is consumed — first for the source-side
// expansion, then for the destination side.
//
// Complexity: O(min(b^h, V) + E') per endpoint, b = branching factor.
func FullKHop(g *graph.Graph, src, dst int64, h int, opts ...Option) (*NodeSet, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if src == dst {
		return nil, fmt.Errorf("%w: node %d", ErrSameEndpoints, src)
	}
	if h < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadHops, h)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	subsampling := o.ratioPerHop < 1.0 || o.maxNodesPerHop > 0
	if subsampling && o.fringeRNG == nil {
		return nil, fmt.Errorf("%w: fringe subsampling", ErrNilRNG)
	}
	if err := checkEndpoints(g, src, dst); err != nil {
		return nil, err
	}

	distSrc, err := expand(g, src, h, o)
	if err != nil {
		return nil, err
	}
	distDst, err := expand(g, dst, h, o)
	if err != nil {
		return nil, err
	}

	return newNodeSet(src, dst, distSrc, distDst), nil
}

// expand runs a depth-limited BFS from start, returning minimum hop
// distances for every node kept. The fringe at each depth is gathered in
// ascending id order, then optionally thinned.
func expand(g *graph.Graph, start int64, h int, o options) (map[int64]int, error) {
	dist := map[int64]int{start: 0}
	fringe := []int64{start}
	for depth := 1; depth <= h && len(fringe) > 0; depth++ {
		next := make(map[int64]struct{})
		for _, v := range fringe {
			nbrs, err := g.Neighbors(v)
			if err != nil {
				return nil, err
			}
			for _, nb := range nbrs {
				if _, seen := dist[nb]; !seen {
					next[nb] = struct{}{}
				}
			}
		}
		fringe = sortedKeys(next)
		fringe = thin(fringe, o)
		for _, v := range fringe {
			dist[v] = depth
		}
	}

	return dist, nil
}

// thin applies RatioPerHop then MaxNodesPerHop to a sorted fringe,
// sampling without replacement from the rng stream.
func thin(fringe []int64, o options) []int64 {
	keep := len(fringe)
	if o.ratioPerHop < 1.0 {
		keep = int(o.ratioPerHop * float64(keep))
	}
	if o.maxNodesPerHop > 0 && keep > o.maxNodesPerHop {
		keep = o.maxNodesPerHop
	}
	if keep >= len(fringe) {
		return fringe
	}
	sample(fringe, o.fringeRNG)
	fringe = fringe[:keep]
	sort.Slice(fringe, func(i, j int) bool { return fringe[i] < fringe[j] })

	return fringe
}

// sample shuffles in place; the input is sorted, so the permutation is a
// pure function of the stream state.
func sample(ids []int64, r *rand.Rand) {
	r.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

func sortedKeys(m map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// checkEndpoints validates both pair endpoints against the graph before
// any expansion work starts.
func checkEndpoints(g *graph.Graph, src, dst int64) error {
	if _, err := g.Degree(src); err != nil {
		return err
	}
	if _, err := g.Degree(dst); err != nil {
		return err
	}

	return nil
}
