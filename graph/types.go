// Package graph defines the immutable observed-graph handle used by every
// extraction stage: a CSR adjacency view over integer node ids with fast
// neighbor lookup and uniform random-walk stepping.
//
// This file declares Edge, Option, sentinel errors, and the Graph type.
package graph

import (
	"errors"
)

// Sentinel errors for graph construction and queries.
var (
	// ErrNodeOutOfRange indicates a node id outside [0, NumNodes).
	ErrNodeOutOfRange = errors.New("graph: node id out of range")

	// ErrBadEdge indicates an edge referencing a node id outside [0, NumNodes).
	ErrBadEdge = errors.New("graph: edge endpoint out of range")

	// ErrEmptyNeighborhood indicates a random step was requested from an
	// isolated node.
	ErrEmptyNeighborhood = errors.New("graph: node has no neighbors")

	// ErrDimensionMismatch indicates a weight or feature slice whose length
	// does not match the edges or nodes it annotates.
	ErrDimensionMismatch = errors.New("graph: dimension mismatch")

	// ErrNoNodes indicates construction with a non-positive node count.
	ErrNoNodes = errors.New("graph: node count must be positive")
)

// Edge is an unordered node pair (ordered when the graph is directed).
type Edge struct {
	// U is the first endpoint.
	U int64

	// V is the second endpoint.
	V int64
}

// Option configures graph construction.
type Option func(*builder)

// builder accumulates construction inputs before the CSR is frozen.
type builder struct {
	directed bool
	weights  []float64
	features [][]float32
	excluded []Edge
}

// WithDirected treats input edges as directed arcs U→V.
func WithDirected() Option {
	return func(b *builder) { b.directed = true }
}

// WithWeights attaches one weight per input edge. The slice must have the
// same length as the edge list passed to New.
func WithWeights(w []float64) Option {
	return func(b *builder) { b.weights = w }
}

// WithFeatures attaches a per-node feature vector, indexed by node id. The
// outer slice must have length NumNodes.
func WithFeatures(x [][]float32) Option {
	return func(b *builder) { b.features = x }
}

// WithExcluded removes the given edges from the adjacency before it is
// frozen. This is the sole leakage-prevention mechanism: validation and
// test split edges passed here can never be observed by any extractor.
func WithExcluded(edges []Edge) Option {
	return func(b *builder) { b.excluded = edges }
}

// Graph is an immutable adjacency view in CSR form.
//
// It is never mutated after New returns, so any number of goroutines may
// query it concurrently without locks.
type Graph struct {
	n        int64
	rowPtr   []int64 // len n+1; rowPtr[v]..rowPtr[v+1] indexes cols
	cols     []int64 // neighbor ids, ascending within each row
	weights  []float64
	features [][]float32
	directed bool
	numEdges int // retained input edges (arcs when directed)
}
