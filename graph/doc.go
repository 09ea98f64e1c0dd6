// Package graph provides the immutable observed-graph handle shared by all
// subgraph extraction stages.
//
// What
//
//   - Freezes a node-count + edge-list input into a CSR adjacency:
//     Neighbors(v) is a zero-copy, ascending slice of neighbor ids.
//   - RandomNeighbor(v, r) takes one uniform random-walk step.
//   - WithExcluded removes validation/test split edges at construction —
//     the single point where test-set leakage is prevented. An extractor
//     can only ever see what survives this exclusion.
//   - Optional per-edge weights (WithWeights) and per-node feature vectors
//     (WithFeatures) are forwarded untouched to the assembler.
//
// Why
//
//	Enclosing-subgraph extraction launches millions of neighbor lookups and
//	walk steps against one shared graph. Freezing the adjacency once makes
//	every later read lock-free and safe under full parallelism.
//
// Determinism
//
//	Rows are sorted ascending at construction, so Neighbors iteration order
//	is reproducible and independent of map iteration order.
//
// Complexity (V = nodes, E = edges)
//
//   - New:            O(V + E log E)
//   - Neighbors:      O(1)
//   - RandomNeighbor: O(1)
//   - HasEdge/Weight: O(log d), d = degree
//
// Errors
//
//   - ErrNoNodes            non-positive node count.
//   - ErrBadEdge            edge endpoint out of range.
//   - ErrNodeOutOfRange     query for a node id outside [0, NumNodes).
//   - ErrEmptyNeighborhood  random step from an isolated node.
//   - ErrDimensionMismatch  weights/features of the wrong length.
package graph
