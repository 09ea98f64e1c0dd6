// Package split partitions a graph's edges into train/validation/test
// positives, samples matching negatives, and builds the leakage-free
// observed graph the extraction pipeline runs against.
//
// What
//
//   - Edges shuffles the (canonicalized, deduplicated) edge list with a
//     seed-derived stream and cuts it into validation, test, and training
//     positives.
//   - Negatives are sampled uniformly per split at the configured
//     negative-to-positive ratio, rejecting self-loops, observed edges,
//     and within-split duplicates.
//   - Percent subsamples the training pairs, positives and negatives
//     alike, for budget-bounded experiments.
//   - Split.Observed builds the graph handle with validation and test
//     positives excluded — the only correct input for extraction, since
//     anything else leaks evaluation edges into message passing.
//
// Determinism
//
//	All randomness flows from rng.Stream(seed, PurposeSplit): the same
//	seed and input reproduce the same split, byte for byte.
package split

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/rng"
)

// Sentinel errors for edge splitting.
var (
	// ErrBadRatios is returned when split fractions are negative or leave
	// no training remainder.
	ErrBadRatios = errors.New("split: val and test ratios must be non-negative and sum below 1")

	// ErrBadNegRatio is returned for a non-positive negative ratio.
	ErrBadNegRatio = errors.New("split: neg ratio must be >= 1")

	// ErrBadPercent is returned for a percent outside (0, 100].
	ErrBadPercent = errors.New("split: percent must be in (0,100]")

	// ErrNoEdges is returned when the input has no usable edges.
	ErrNoEdges = errors.New("split: no edges to split")

	// ErrNegSampling is returned when negative sampling cannot find
	// enough non-edges (the graph is too dense for the requested ratio).
	ErrNegSampling = errors.New("split: not enough non-edges for negative sampling")
)

// Options configures Edges.
type Options struct {
	// ValRatio and TestRatio are the held-out fractions.
	ValRatio, TestRatio float64

	// NegRatio is the negative-to-positive sampling ratio.
	NegRatio int

	// Percent subsamples training pairs, in (0, 100].
	Percent float64

	// Seed drives the shuffle and the negative sampling.
	Seed int64
}

// Split holds positive and negative node pairs per partition.
type Split struct {
	TrainPos, TrainNeg [][2]int64
	ValPos, ValNeg     [][2]int64
	TestPos, TestNeg   [][2]int64

	numNodes int64
}

// Edges splits the edge list of an undirected graph over numNodes nodes.
// Edges are canonicalized (u < v) and deduplicated before shuffling, so
// (a,b) and (b,a) never straddle partitions.
func Edges(numNodes int64, edges []graph.Edge, o Options) (*Split, error) {
	switch {
	case o.ValRatio < 0 || o.TestRatio < 0 || o.ValRatio+o.TestRatio >= 1:
		return nil, fmt.Errorf("%w: val=%v test=%v", ErrBadRatios, o.ValRatio, o.TestRatio)
	case o.NegRatio < 1:
		return nil, fmt.Errorf("%w: got %d", ErrBadNegRatio, o.NegRatio)
	case o.Percent <= 0 || o.Percent > 100:
		return nil, fmt.Errorf("%w: got %v", ErrBadPercent, o.Percent)
	}

	pos := canonicalize(numNodes, edges)
	if len(pos) == 0 {
		return nil, ErrNoEdges
	}
	r := rng.Stream(uint64(o.Seed), rng.PurposeSplit)
	r.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })

	nVal := int(o.ValRatio * float64(len(pos)))
	nTest := int(o.TestRatio * float64(len(pos)))
	s := &Split{
		ValPos:   pos[:nVal],
		TestPos:  pos[nVal : nVal+nTest],
		TrainPos: pos[nVal+nTest:],
		numNodes: numNodes,
	}

	// The rejection set covers every real edge, so a sampled negative can
	// never be a positive of any partition.
	observed := make(map[[2]int64]struct{}, len(pos))
	for _, e := range pos {
		observed[e] = struct{}{}
	}
	var err error
	if s.TrainNeg, err = sampleNegatives(numNodes, len(s.TrainPos)*o.NegRatio, observed, r); err != nil {
		return nil, err
	}
	if s.ValNeg, err = sampleNegatives(numNodes, len(s.ValPos)*o.NegRatio, observed, r); err != nil {
		return nil, err
	}
	if s.TestNeg, err = sampleNegatives(numNodes, len(s.TestPos)*o.NegRatio, observed, r); err != nil {
		return nil, err
	}

	if o.Percent < 100 {
		s.TrainPos = subsample(s.TrainPos, o.Percent, r)
		s.TrainNeg = subsample(s.TrainNeg, o.Percent, r)
	}

	return s, nil
}

// Observed builds the training-time graph handle: every edge except the
// validation and test positives. Extra graph options (weights, features)
// pass through.
func (s *Split) Observed(opts ...graph.Option) (*graph.Graph, error) {
	held := make([]graph.Edge, 0, len(s.ValPos)+len(s.TestPos))
	for _, e := range append(append([][2]int64{}, s.ValPos...), s.TestPos...) {
		held = append(held, graph.Edge{U: e[0], V: e[1]})
	}
	all := make([]graph.Edge, 0, len(s.TrainPos)+len(held))
	for _, e := range s.TrainPos {
		all = append(all, graph.Edge{U: e[0], V: e[1]})
	}
	all = append(all, held...)
	opts = append(opts, graph.WithExcluded(held))

	return graph.New(s.numNodes, all, opts...)
}

// canonicalize orders endpoints, drops self-loops and out-of-range
// endpoints' duplicates, and dedupes, returning a sorted base list so the
// shuffle is the only source of order.
func canonicalize(numNodes int64, edges []graph.Edge) [][2]int64 {
	seen := make(map[[2]int64]struct{}, len(edges))
	out := make([][2]int64, 0, len(edges))
	for _, e := range edges {
		u, v := e.U, e.V
		if u == v || u < 0 || v < 0 || u >= numNodes || v >= numNodes {
			continue
		}
		if u > v {
			u, v = v, u
		}
		key := [2]int64{u, v}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0] || (out[i][0] == out[j][0] && out[i][1] < out[j][1])
	})

	return out
}

// sampleNegatives draws 'want' distinct non-edges uniformly. Rejection
// sampling is bounded; a dense graph that keeps rejecting fails with
// ErrNegSampling instead of spinning.
func sampleNegatives(numNodes int64, want int, observed map[[2]int64]struct{}, r *rand.Rand) ([][2]int64, error) {
	out := make([][2]int64, 0, want)
	taken := make(map[[2]int64]struct{}, want)
	limit := 100 * (want + 1)
	for attempts := 0; len(out) < want; attempts++ {
		if attempts > limit {
			return nil, fmt.Errorf("%w: found %d of %d", ErrNegSampling, len(out), want)
		}
		u, v := r.Int64N(numNodes), r.Int64N(numNodes)
		if u == v {
			continue
		}
		if u > v {
			u, v = v, u
		}
		key := [2]int64{u, v}
		if _, isEdge := observed[key]; isEdge {
			continue
		}
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		out = append(out, key)
	}

	return out, nil
}

// subsample keeps percent% of pairs, preserving relative order.
func subsample(pairs [][2]int64, percent float64, r *rand.Rand) [][2]int64 {
	keep := int(percent / 100 * float64(len(pairs)))
	if keep >= len(pairs) {
		return pairs
	}
	idx := r.Perm(len(pairs))[:keep]
	sort.Ints(idx)
	out := make([][2]int64, 0, keep)
	for _, i := range idx {
		out = append(out, pairs[i])
	}

	return out
}
