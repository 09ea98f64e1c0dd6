// Package sampler orchestrates enclosing-subgraph extraction end to end:
// configuration, mode selection, per-pair pipelines, and the parallel
// batch driver.
//
// What
//
//   - Config collects every knob of a run (hops or walk parameters,
//     dropedge, split ratios, seed, labeling scheme, worker count) and is
//     YAML-loadable. Validate rejects every malformed field — and the
//     conflicting selection of both modes — before any sampling begins.
//   - Mode resolves the extraction variant exactly once: walk parameters
//     present selects extract.RandomWalk, otherwise extract.FullHop.
//   - Sampler.Extract runs one pair through extraction → labeling →
//     assembly → leakage verification.
//   - Sampler.ExtractAll fans pairs out over an errgroup worker pool.
//     Results keep input order; the first failure cancels the batch and
//     carries the pair identity as a *PairError. A batch is never
//     silently thinned: skipping a broken pair would change dataset
//     composition non-reproducibly.
//
// Determinism
//
//	Every random stream is derived from (seed, pair index, endpoint or
//	purpose) through the rng package. Workers share no mutable state
//	beyond the immutable graph, so a parallel run reproduces a serial run
//	bit-for-bit, and two runs with one seed are byte-identical.
//
// Errors
//
//   - ErrInvalidConfig  any rejected configuration field.
//   - ErrNilGraph       nil observed graph.
//   - *PairError        wrapping ErrBadPair or any pipeline failure, with
//     the pair index and endpoints attached.
package sampler
