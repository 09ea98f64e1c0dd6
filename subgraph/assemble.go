package subgraph

import (
	"fmt"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
)

// Assemble builds the induced subgraph over the extracted node set:
// global ids are remapped through the set's index table, the edge list is
// the observed adjacency restricted to members, arcs touching both
// endpoints are flagged in TargetMask, and node features and edge weights
// are forwarded by lookup.
//
// Arc order is deterministic: local nodes ascending, each row in the
// graph's CSR neighbor order. The record is never empty — it contains at
// least the two endpoints, possibly disconnected.
func Assemble(g *graph.Graph, set *extract.NodeSet, labels []int64, opts ...Option) (*Record, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if set == nil {
		return nil, ErrNilSet
	}
	if len(labels) != set.Len() {
		return nil, fmt.Errorf("%w: %d labels for %d nodes", ErrLabelMismatch, len(labels), set.Len())
	}
	var o asmOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.dropRate > 0 && o.dropRNG == nil {
		return nil, fmt.Errorf("%w: dropedge", extract.ErrNilRNG)
	}

	rec := &Record{
		NodeIDs: append([]int64(nil), set.Nodes...),
		Labels:  append([]int64(nil), labels...),
		Y:       o.y,
	}
	if g.NumFeatures() > 0 {
		rec.Features = make([][]float32, set.Len())
		for i, v := range set.Nodes {
			rec.Features[i] = g.Features(v)
		}
	}

	// dropped records one retention decision per unordered local pair, so
	// the mirrored arc of an undirected edge shares its fate.
	dropped := make(map[[2]int64]bool)
	decide := func(u, v int64) bool {
		key := [2]int64{min(u, v), max(u, v)}
		drop, seen := dropped[key]
		if !seen {
			drop = o.dropRNG.Float64() < o.dropRate
			dropped[key] = drop
		}

		return drop
	}

	for u, gu := range rec.NodeIDs {
		nbrs, err := g.Neighbors(gu)
		if err != nil {
			return nil, err
		}
		for _, gv := range nbrs {
			v, member := set.Local(gv)
			if !member {
				continue
			}
			lu, lv := int64(u), int64(v)
			target := isTarget(lu, lv)
			if !target && o.dropRate > 0 && decide(lu, lv) {
				continue
			}
			w, _ := g.Weight(gu, gv)
			rec.EdgeIndex = append(rec.EdgeIndex, [2]int64{lu, lv})
			rec.EdgeWeight = append(rec.EdgeWeight, w)
			rec.TargetMask = append(rec.TargetMask, target)
		}
	}

	return rec, nil
}

// isTarget reports whether a local arc connects the two endpoint slots.
func isTarget(u, v int64) bool {
	return (u == SrcLocal && v == DstLocal) || (u == DstLocal && v == SrcLocal)
}

// MessageEdges returns the arcs and weights visible to message passing:
// everything except the masked target arcs. The ground-truth link can
// never leak through this view.
func (r *Record) MessageEdges() ([][2]int64, []float64) {
	edges := make([][2]int64, 0, len(r.EdgeIndex))
	weights := make([]float64, 0, len(r.EdgeWeight))
	for i, e := range r.EdgeIndex {
		if r.TargetMask[i] {
			continue
		}
		edges = append(edges, e)
		weights = append(weights, r.EdgeWeight[i])
	}

	return edges, weights
}

// VerifyNoLeakage re-checks the masking invariant: every arc between the
// endpoint slots must be flagged. A violation is fatal — it means the
// ground-truth link would be visible to the model.
func (r *Record) VerifyNoLeakage() error {
	for i, e := range r.EdgeIndex {
		if isTarget(e[0], e[1]) && !r.TargetMask[i] {
			return fmt.Errorf("%w: arc %d→%d at index %d", ErrLeakage, e[0], e[1], i)
		}
	}

	return nil
}

// NumNodes returns the local node count.
func (r *Record) NumNodes() int { return len(r.NodeIDs) }

// NumEdges returns the number of stored arcs, masked target arcs included.
func (r *Record) NumEdges() int { return len(r.EdgeIndex) }
