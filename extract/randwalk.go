package extract

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/oleksiik/enclose/graph"
)

// RandomWalks extracts an enclosing subgraph around (src, dst) by sampling:
// numWalks independent walks of walkLen uniform steps are launched from
// each endpoint, and the result is the union of every node they touch,
// plus the endpoints themselves (always included, even if no walk moves).
//
// Per endpoint, a node's distance is the minimum step count at which any
// of that endpoint's walks first reached it — an optimistic estimate that
// upper-bounds the true shortest-path distance. Revisits are allowed and
// simply never improve the recorded distance.
//
// srcRNG and dstRNG must be independent streams derived per
// (seed, pair, endpoint); see the rng package. The caller owns the streams,
// so total work is O(numWalks·walkLen) per endpoint regardless of
// branching factor.
func RandomWalks(g *graph.Graph, src, dst int64, walkLen, numWalks int, srcRNG, dstRNG *rand.Rand) (*NodeSet, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if src == dst {
		return nil, fmt.Errorf("%w: node %d", ErrSameEndpoints, src)
	}
	if walkLen < 1 || numWalks < 1 {
		return nil, fmt.Errorf("%w: m=%d, M=%d", ErrBadWalkParams, walkLen, numWalks)
	}
	if srcRNG == nil || dstRNG == nil {
		return nil, fmt.Errorf("%w: walk streams", ErrNilRNG)
	}
	if err := checkEndpoints(g, src, dst); err != nil {
		return nil, err
	}

	distSrc, err := walkFrom(g, src, walkLen, numWalks, srcRNG)
	if err != nil {
		return nil, err
	}
	distDst, err := walkFrom(g, dst, walkLen, numWalks, dstRNG)
	if err != nil {
		return nil, err
	}

	return newNodeSet(src, dst, distSrc, distDst), nil
}

// walkFrom aggregates first-visit step counts over all walks from start,
// keeping the minimum per node. An isolated current node ends its walk
// early; that is graceful degradation, not an error.
func walkFrom(g *graph.Graph, start int64, walkLen, numWalks int, r *rand.Rand) (map[int64]int, error) {
	dist := map[int64]int{start: 0}
	for w := 0; w < numWalks; w++ {
		cur := start
		for step := 1; step <= walkLen; step++ {
			nb, err := g.RandomNeighbor(cur, r)
			if err != nil {
				if errors.Is(err, graph.ErrEmptyNeighborhood) {
					break // nowhere to go; the walk simply stops
				}

				return nil, err
			}
			if d, seen := dist[nb]; !seen || step < d {
				dist[nb] = step
			}
			cur = nb
		}
	}

	return dist, nil
}
