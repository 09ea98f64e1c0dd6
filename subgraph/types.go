// Package subgraph assembles an extracted node set into the final,
// locally-indexed enclosing-subgraph record consumed by batching and
// training.
package subgraph

import (
	"errors"
	"math/rand/v2"
)

// Fixed local indices of the candidate pair inside every record.
const (
	// SrcLocal is the local index of the source endpoint.
	SrcLocal = 0

	// DstLocal is the local index of the destination endpoint.
	DstLocal = 1
)

// Sentinel errors for assembly.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("subgraph: graph is nil")

	// ErrNilSet is returned if a nil node set is passed.
	ErrNilSet = errors.New("subgraph: node set is nil")

	// ErrLabelMismatch is returned when the label vector length does not
	// match the node set.
	ErrLabelMismatch = errors.New("subgraph: label vector length mismatch")

	// ErrBadDropRate is returned for a dropedge rate outside [0, 1].
	ErrBadDropRate = errors.New("subgraph: dropedge rate must be in [0,1]")

	// ErrLeakage reports the fatal invariant violation of an unmasked
	// target edge inside an assembled record. It must never occur; if it
	// does, evaluation would be silently corrupted.
	ErrLeakage = errors.New("subgraph: target edge not masked")
)

// Record is one assembled enclosing subgraph: local adjacency, per-node
// labels, optional features and edge weights, the target-edge mask, and
// the binary link label. Immutable after assembly.
//
// Local node indices follow the extraction contract: the source is
// SrcLocal, the destination DstLocal, remaining nodes ascend by global id.
// EdgeIndex holds directed arcs; undirected graphs contribute both
// orientations of each kept edge.
type Record struct {
	// NodeIDs maps local index → global node id.
	NodeIDs []int64

	// Labels holds the structural label class per local node.
	Labels []int64

	// Features holds per-node feature vectors when the graph carries them.
	Features [][]float32

	// EdgeIndex lists local arcs (from, to).
	EdgeIndex [][2]int64

	// EdgeWeight is aligned with EdgeIndex.
	EdgeWeight []float64

	// TargetMask marks arcs connecting SrcLocal and DstLocal. Masked arcs
	// must never reach message passing.
	TargetMask []bool

	// Y is the binary link label: 1 for a positive pair.
	Y int
}

// Option configures assembly.
type Option func(*asmOptions)

type asmOptions struct {
	y        int
	dropRate float64
	dropRNG  *rand.Rand

	err error
}

// WithLinkLabel sets the record's binary link label.
func WithLinkLabel(positive bool) Option {
	return func(o *asmOptions) {
		if positive {
			o.y = 1
		}
	}
}

// WithDropedge independently drops each non-target edge with the given
// probability, drawing from r. Both orientations of an undirected edge
// share one decision. Rate 0 with any r is a no-op.
func WithDropedge(rate float64, r *rand.Rand) Option {
	return func(o *asmOptions) {
		if rate < 0 || rate > 1 {
			o.err = ErrBadDropRate
			return
		}
		o.dropRate = rate
		o.dropRNG = r
	}
}
