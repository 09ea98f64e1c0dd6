// Package enclose turns a plain edge list into the per-link training
// examples SEAL-style link prediction models consume: deterministic,
// leakage-free enclosing subgraphs.
//
// 🚀 What is enclose?
//
//	A library (plus the enclose CLI) that brings together:
//		• graph/    — immutable CSR adjacency, safe for lock-free concurrent reads
//		• split/    — train/val/test edge splits with negative sampling
//		• extract/  — full k-hop and random-walk neighborhood extraction
//		• label/    — double-radius (DRNL), hop and zero-one node labeling
//		• subgraph/ — record assembly, target-edge masking, edge dropout
//		• sampler/  — the per-pair pipeline with a bounded worker pool
//		• batch/    — collation into model-ready batches, sparsity diagnostics
//		• rng/      — seed-addressed random streams; same seed, same output
//
// ✨ Why choose enclose?
//
//   - Deterministic – every random choice flows from (seed, purpose, pair),
//     so runs reproduce byte for byte regardless of worker scheduling
//   - Leakage-free – held-out edges never enter the observed graph, and
//     target edges are masked out of message passing, verified per record
//   - Scalable – random-walk extraction bounds subgraph size on hub-heavy
//     graphs where exhaustive k-hop extraction explodes
//
// Quick ASCII example, the 1-hop enclosing subgraph of the pair (A, B):
//
//	  A───B        A───B
//	  │   │   ⇒    │   │   with the A─B target edge masked
//	  C───D        C───D   and C, D labeled by distance to (A, B)
//
// Dive into the per-package docs for the extraction and labeling details.
//
//	go get github.com/oleksiik/enclose
package enclose
