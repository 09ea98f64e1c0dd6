// Package extract pulls a bounded local neighborhood — the "enclosing
// subgraph" — out of an observed graph for each candidate link (src, dst).
//
// What
//
//   - FullKHop: deterministic breadth-first expansion to exactly h hops
//     from both endpoints; the node set is the union of both frontiers,
//     each node annotated with its minimum distance per endpoint.
//     Optional per-hop fringe thinning (WithRatioPerHop,
//     WithMaxNodesPerHop) bounds dense graphs at the cost of determinism
//     moving into a supplied rng stream.
//   - RandomWalks: M independent walks of m uniform steps per endpoint;
//     the node set is the union of everything touched. Work is O(M·m) per
//     endpoint regardless of branching factor — larger m approximates full
//     hop coverage, larger M improves recall of important nodes.
//   - Both always include src and dst, and both report distances through
//     the shared NodeSet type consumed by the labeler and assembler.
//
// Why
//
//	Exhaustive expansion grows with branching^h and drowns on dense
//	graphs; link prediction only needs a representative local context.
//	The walk sampler trades completeness for two sparsity knobs.
//
// Determinism
//
//	FullKHop is randomness-free unless thinning is requested. RandomWalks
//	consumes exactly the two caller-supplied streams, so results are a
//	pure function of (graph, pair, stream seeds) — reproducible under any
//	degree of cross-pair parallelism.
//
// Distance semantics
//
//	FullKHop distances are exact hop distances within the budget.
//	RandomWalks distances are minimum first-visit step counts across the
//	endpoint's walks: optimistic upper bounds, never recomputed.
//	Unreached nodes carry the Unreached (-1) sentinel.
//
// Errors
//
//   - ErrNilGraph, ErrSameEndpoints, graph.ErrNodeOutOfRange for bad input.
//   - ErrBadHops, ErrBadWalkParams, ErrNilRNG, ErrOptionViolation for bad
//     parameters — all surfaced before any expansion work.
//   - graph.ErrEmptyNeighborhood never escapes: an isolated node just
//     stops expanding.
package extract
