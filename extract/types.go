// Package extract provides tunable options, the Mode variants, and the
// NodeSet result type for enclosing-subgraph extraction.
package extract

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// Unreached is the distance sentinel for a node never reached from an
// endpoint within the extraction budget.
const Unreached = -1

// Sentinel errors for extraction.
var (
	// ErrNilGraph is returned if a nil graph pointer is passed.
	ErrNilGraph = errors.New("extract: graph is nil")

	// ErrSameEndpoints is returned when source and destination coincide.
	ErrSameEndpoints = errors.New("extract: source and destination must differ")

	// ErrBadHops is returned for a non-positive hop budget.
	ErrBadHops = errors.New("extract: hop count must be positive")

	// ErrBadWalkParams is returned for non-positive walk length or count.
	ErrBadWalkParams = errors.New("extract: walk length and walk count must be positive")

	// ErrNilRNG is returned when a randomized stage is invoked without a
	// generator stream.
	ErrNilRNG = errors.New("extract: rng stream is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("extract: invalid option supplied")
)

// Mode selects the extraction strategy once, at configuration time.
// Exactly two variants exist: FullHop and RandomWalk.
type Mode interface {
	fmt.Stringer

	// sealed prevents variants outside this package.
	sealed()
}

// FullHop is exhaustive breadth-first expansion to exactly H hops from
// both endpoints, optionally thinning each hop's fringe.
type FullHop struct {
	// H is the hop budget.
	H int

	// RatioPerHop keeps this fraction of each new fringe (1.0 keeps all).
	RatioPerHop float64

	// MaxNodesPerHop caps each new fringe after RatioPerHop (0 = no cap).
	MaxNodesPerHop int
}

func (FullHop) sealed() {}

func (m FullHop) String() string { return fmt.Sprintf("full-hop(h=%d)", m.H) }

// RandomWalk launches NumWalks independent walks of WalkLen steps from each
// endpoint and unions everything they touch.
type RandomWalk struct {
	// WalkLen is the number of steps per walk (m).
	WalkLen int

	// NumWalks is the number of walks per endpoint (M).
	NumWalks int
}

func (RandomWalk) sealed() {}

func (m RandomWalk) String() string { return fmt.Sprintf("random-walk(m=%d,M=%d)", m.WalkLen, m.NumWalks) }

// NodeSet is the outcome of one extraction: the global node ids reached,
// with per-endpoint distances.
//
// Ordering is fixed by contract: Nodes[0] is the source, Nodes[1] the
// destination, and the remaining ids ascend — reproducible regardless of
// map iteration order. DistSrc[i] and DistDst[i] are the distances of
// Nodes[i] to the endpoints, Unreached when never seen from that side.
type NodeSet struct {
	Nodes   []int64
	DistSrc []int
	DistDst []int

	index map[int64]int
}

// Len returns the number of extracted nodes.
func (s *NodeSet) Len() int { return len(s.Nodes) }

// Local returns the dense local index of a global node id.
func (s *NodeSet) Local(global int64) (int, bool) {
	i, ok := s.index[global]

	return i, ok
}

// Contains reports membership of a global node id.
func (s *NodeSet) Contains(global int64) bool {
	_, ok := s.index[global]

	return ok
}

// newNodeSet assembles the contract ordering (src, dst, rest ascending)
// from per-endpoint distance maps. Endpoints are always members.
func newNodeSet(src, dst int64, distSrc, distDst map[int64]int) *NodeSet {
	rest := make([]int64, 0, len(distSrc)+len(distDst))
	seen := map[int64]struct{}{src: {}, dst: {}}
	for _, m := range []map[int64]int{distSrc, distDst} {
		for v := range m {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			rest = append(rest, v)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	s := &NodeSet{
		Nodes: append([]int64{src, dst}, rest...),
		index: make(map[int64]int, len(rest)+2),
	}
	s.DistSrc = make([]int, len(s.Nodes))
	s.DistDst = make([]int, len(s.Nodes))
	for i, v := range s.Nodes {
		s.index[v] = i
		s.DistSrc[i] = distOf(distSrc, v)
		s.DistDst[i] = distOf(distDst, v)
	}
	// Endpoints are at distance zero from themselves even if no walk
	// returned home.
	s.DistSrc[0] = 0
	s.DistDst[1] = 0

	return s
}

func distOf(m map[int64]int, v int64) int {
	if d, ok := m[v]; ok {
		return d
	}

	return Unreached
}

// Option configures FullKHop behavior via functional arguments. Invalid
// options are recorded and surfaced as ErrOptionViolation on invocation.
type Option func(*options)

type options struct {
	ratioPerHop    float64
	maxNodesPerHop int
	fringeRNG      *rand.Rand

	err error
}

func defaultOptions() options {
	return options{ratioPerHop: 1.0}
}

// WithRatioPerHop keeps only the given fraction of each hop's new fringe,
// sampled without replacement. Requires WithFringeRNG when below 1.0.
func WithRatioPerHop(ratio float64) Option {
	return func(o *options) {
		if ratio <= 0 || ratio > 1 {
			o.err = fmt.Errorf("%w: RatioPerHop must be in (0,1], got %v", ErrOptionViolation, ratio)
			return
		}
		o.ratioPerHop = ratio
	}
}

// WithMaxNodesPerHop caps each hop's new fringe after the ratio is applied.
// 0 disables the cap. Requires WithFringeRNG when positive.
func WithMaxNodesPerHop(n int) Option {
	return func(o *options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodesPerHop cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.maxNodesPerHop = n
	}
}

// WithFringeRNG supplies the generator stream used for fringe subsampling.
func WithFringeRNG(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.fringeRNG = r
		}
	}
}
