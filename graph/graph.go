package graph

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// New freezes an observed graph over nodes 0..numNodes-1 from the given
// edge list. Undirected by default: each kept edge contributes two arcs.
// Parallel edges collapse to one arc (the first weight wins); self-loops
// are kept as a single arc.
//
// Excluded edges (see WithExcluded) are matched irrespective of endpoint
// order on undirected graphs and removed before the adjacency is built.
//
// Returns ErrNoNodes, ErrBadEdge, or ErrDimensionMismatch on invalid input.
// Complexity: O(V + E log E).
func New(numNodes int64, edges []Edge, opts ...Option) (*Graph, error) {
	if numNodes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoNodes, numNodes)
	}
	var b builder
	for _, opt := range opts {
		opt(&b)
	}
	if b.weights != nil && len(b.weights) != len(edges) {
		return nil, fmt.Errorf("%w: %d weights for %d edges", ErrDimensionMismatch, len(b.weights), len(edges))
	}
	if b.features != nil && int64(len(b.features)) != numNodes {
		return nil, fmt.Errorf("%w: %d feature rows for %d nodes", ErrDimensionMismatch, len(b.features), numNodes)
	}

	excluded := make(map[Edge]struct{}, len(b.excluded))
	for _, e := range b.excluded {
		excluded[canonical(e, b.directed)] = struct{}{}
	}

	// Collect arcs per node, then sort and dedupe each row.
	type arc struct {
		to int64
		w  float64
	}
	adj := make([][]arc, numNodes)
	kept := 0
	for i, e := range edges {
		if e.U < 0 || e.U >= numNodes || e.V < 0 || e.V >= numNodes {
			return nil, fmt.Errorf("%w: (%d,%d) with %d nodes", ErrBadEdge, e.U, e.V, numNodes)
		}
		if _, skip := excluded[canonical(e, b.directed)]; skip {
			continue
		}
		w := 1.0
		if b.weights != nil {
			w = b.weights[i]
		}
		adj[e.U] = append(adj[e.U], arc{to: e.V, w: w})
		if !b.directed && e.U != e.V {
			adj[e.V] = append(adj[e.V], arc{to: e.U, w: w})
		}
		kept++
	}

	g := &Graph{
		n:        numNodes,
		rowPtr:   make([]int64, numNodes+1),
		directed: b.directed,
		features: b.features,
		numEdges: kept,
	}
	for v := int64(0); v < numNodes; v++ {
		row := adj[v]
		sort.Slice(row, func(i, j int) bool { return row[i].to < row[j].to })
		for i, a := range row {
			if i > 0 && a.to == row[i-1].to {
				continue // parallel edge, first weight wins
			}
			g.cols = append(g.cols, a.to)
			g.weights = append(g.weights, a.w)
		}
		g.rowPtr[v+1] = int64(len(g.cols))
	}

	return g, nil
}

// canonical orders undirected endpoints so (u,v) and (v,u) compare equal.
func canonical(e Edge, directed bool) Edge {
	if !directed && e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}

	return e
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int64 { return g.n }

// NumEdges returns the number of input edges retained after exclusion.
func (g *Graph) NumEdges() int { return g.numEdges }

// Directed reports whether arcs are one-way.
func (g *Graph) Directed() bool { return g.directed }

// NumFeatures returns the node feature dimensionality, 0 when absent.
func (g *Graph) NumFeatures() int {
	if len(g.features) == 0 {
		return 0
	}

	return len(g.features[0])
}

// Neighbors returns the adjacency row of v in ascending id order.
// The slice shares the graph's backing storage; callers must not mutate it.
func (g *Graph) Neighbors(v int64) ([]int64, error) {
	if v < 0 || v >= g.n {
		return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, v)
	}

	return g.cols[g.rowPtr[v]:g.rowPtr[v+1]], nil
}

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int64) (int, error) {
	if v < 0 || v >= g.n {
		return 0, fmt.Errorf("%w: %d", ErrNodeOutOfRange, v)
	}

	return int(g.rowPtr[v+1] - g.rowPtr[v]), nil
}

// RandomNeighbor steps from v to a uniformly chosen neighbor using r.
// Returns ErrEmptyNeighborhood when v is isolated.
func (g *Graph) RandomNeighbor(v int64, r *rand.Rand) (int64, error) {
	if v < 0 || v >= g.n {
		return 0, fmt.Errorf("%w: %d", ErrNodeOutOfRange, v)
	}
	lo, hi := g.rowPtr[v], g.rowPtr[v+1]
	if lo == hi {
		return 0, fmt.Errorf("%w: node %d", ErrEmptyNeighborhood, v)
	}

	return g.cols[lo+r.Int64N(hi-lo)], nil
}

// HasEdge reports whether the arc u→v exists (either direction is checked
// implicitly on undirected graphs, since both arcs are stored).
func (g *Graph) HasEdge(u, v int64) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return false
	}
	row := g.cols[g.rowPtr[u]:g.rowPtr[u+1]]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= v })

	return i < len(row) && row[i] == v
}

// Weight returns the weight of arc u→v, or false when the arc is absent.
func (g *Graph) Weight(u, v int64) (float64, bool) {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return 0, false
	}
	lo := g.rowPtr[u]
	row := g.cols[lo:g.rowPtr[u+1]]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= v })
	if i < len(row) && row[i] == v {
		return g.weights[lo+int64(i)], true
	}

	return 0, false
}

// Features returns the feature vector of v, nil when the graph carries none.
// The slice shares the graph's backing storage; callers must not mutate it.
func (g *Graph) Features(v int64) []float32 {
	if g.features == nil || v < 0 || v >= g.n {
		return nil
	}

	return g.features[v]
}
