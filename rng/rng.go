// Package rng derives independent, reproducible random-number streams from
// a single run seed.
//
// Every randomized stage (walk sampling, fringe subsampling, edge dropout,
// edge splitting) asks for its own stream, addressed by a purpose tag plus
// any identifying labels — typically the candidate-pair index and endpoint
// slot. Stream derivation is a pure function of (seed, labels...), so a
// worker pool can extract pairs in any order and still reproduce a serial
// run bit-for-bit. There is no package-level generator and no lock.
package rng

import "math/rand/v2"

// Purpose tags partition the label space so that two stages can never
// collide on the same derived stream.
const (
	// PurposeWalk addresses random-walk streams: (seed, PurposeWalk, pair, endpoint).
	PurposeWalk uint64 = 0x57414c4b // "WALK"

	// PurposeFringe addresses per-hop fringe subsampling: (seed, PurposeFringe, pair).
	PurposeFringe uint64 = 0x46524e47 // "FRNG"

	// PurposeDropedge addresses edge-dropout streams: (seed, PurposeDropedge, pair).
	PurposeDropedge uint64 = 0x44524f50 // "DROP"

	// PurposeSplit addresses the train/val/test edge split: (seed, PurposeSplit).
	PurposeSplit uint64 = 0x53504c54 // "SPLT"
)

// Stream returns a fresh generator deterministically derived from seed and
// the given labels. Equal inputs always yield generators producing the
// same sequence; distinct label tuples yield statistically independent
// streams. Safe to call concurrently; the returned *rand.Rand is not.
func Stream(seed uint64, labels ...uint64) *rand.Rand {
	hi := splitmix64(seed)
	lo := splitmix64(hi ^ 0x9e3779b97f4a7c15)
	for _, l := range labels {
		hi = splitmix64(hi ^ l)
		lo = splitmix64(lo + l)
	}

	return rand.New(rand.NewPCG(hi, lo))
}

// splitmix64 is the finalizer from Vigna's SplitMix64; one round is enough
// to decorrelate adjacent label values.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}
