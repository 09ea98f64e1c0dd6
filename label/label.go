// Package label assigns structural node labels to an extracted node set,
// encoding each node's position relative to the candidate link's endpoints.
//
// What
//
//	The default scheme is double-radius node labeling (DRNL): a pairing
//	function over the distances (dx, dy) to the two endpoints. Classes are
//	ordered first by the distance sum d = dx+dy, then by min(dx, dy), so a
//	node strictly closer to the pair never gets a larger class than a node
//	strictly farther away. The source always receives class 0 and the
//	destination class 1, letting a downstream GNN identify the target pair
//	positionally; every other node receives a class ≥ 2.
//
// Clipping
//
//	Distances are clipped to the MaxDist budget and the Unreached sentinel
//	maps to MaxDist+1, so the class space — NumClasses() — is a fixed
//	function of MaxDist and never of the graph diameter. Embedding tables
//	sized from NumClasses stay configuration-independent.
//
// Schemes
//
//   - SchemeDRNL:    the pairing function above (default).
//   - SchemeHop:     1 + min(dx, dy), a cheaper single-radius variant.
//   - SchemeZeroOne: endpoint indicator only; every non-endpoint is class 2.
//
// Labels are categorical features for the GNN and carry no other meaning.
package label

import (
	"errors"
	"fmt"

	"github.com/oleksiik/enclose/extract"
)

// Sentinel errors for labeling.
var (
	// ErrNilSet is returned when the node set is nil.
	ErrNilSet = errors.New("label: node set is nil")

	// ErrBadScheme is returned for an unknown labeling scheme.
	ErrBadScheme = errors.New("label: unknown scheme")

	// ErrBadMaxDist is returned for a non-positive distance budget.
	ErrBadMaxDist = errors.New("label: max distance must be positive")
)

// Scheme selects the labeling trick.
type Scheme int

const (
	// SchemeDRNL is double-radius node labeling.
	SchemeDRNL Scheme = iota

	// SchemeHop labels by minimum distance to either endpoint.
	SchemeHop

	// SchemeZeroOne labels endpoints only.
	SchemeZeroOne
)

// String implements fmt.Stringer for config and log output.
func (s Scheme) String() string {
	switch s {
	case SchemeDRNL:
		return "drnl"
	case SchemeHop:
		return "hop"
	case SchemeZeroOne:
		return "zo"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// ParseScheme maps the configuration surface names onto Scheme values.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "", "drnl":
		return SchemeDRNL, nil
	case "hop":
		return SchemeHop, nil
	case "zo":
		return SchemeZeroOne, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadScheme, name)
	}
}

// DefaultMaxDist is the distance budget used when none is configured.
const DefaultMaxDist = 10

// Labeler computes node label classes under a fixed distance budget.
// The zero value is not usable; construct with New.
type Labeler struct {
	scheme  Scheme
	maxDist int
}

// New returns a Labeler for the given scheme and distance budget.
// A non-positive budget is rejected rather than defaulted, so the budget
// in effect is always the one visible in configuration.
func New(scheme Scheme, maxDist int) (Labeler, error) {
	if scheme < SchemeDRNL || scheme > SchemeZeroOne {
		return Labeler{}, fmt.Errorf("%w: %d", ErrBadScheme, int(scheme))
	}
	if maxDist < 1 {
		return Labeler{}, fmt.Errorf("%w: got %d", ErrBadMaxDist, maxDist)
	}

	return Labeler{scheme: scheme, maxDist: maxDist}, nil
}

// Label computes one class per node in the set, aligned with set.Nodes.
// Slots 0 and 1 (source, destination) always receive classes 0 and 1.
func (l Labeler) Label(set *extract.NodeSet) ([]int64, error) {
	if set == nil {
		return nil, ErrNilSet
	}
	out := make([]int64, set.Len())
	for i := 2; i < set.Len(); i++ {
		dx := l.effective(set.DistSrc[i])
		dy := l.effective(set.DistDst[i])
		switch l.scheme {
		case SchemeHop:
			out[i] = int64(1 + min(dx, dy))
		case SchemeZeroOne:
			out[i] = 2
		default:
			out[i] = drnl(dx, dy)
		}
	}
	// out[0], out[1] stay 0 and 1: the endpoint sentinels.
	out[1] = 1

	return out, nil
}

// NumClasses returns the size of the label space, a function of the
// scheme and MaxDist alone.
func (l Labeler) NumClasses() int {
	worst := l.maxDist + 1 // the Unreached sentinel distance
	switch l.scheme {
	case SchemeHop:
		return 1 + worst + 1
	case SchemeZeroOne:
		return 3
	default:
		return int(drnl(worst, worst)) + 1
	}
}

// effective clips a raw distance to the budget; Unreached maps to the
// sentinel distance MaxDist+1.
func (l Labeler) effective(d int) int {
	if d == extract.Unreached || d > l.maxDist {
		return l.maxDist + 1
	}

	return d
}

// drnl is the double-radius pairing function
// z = 1 + min(dx,dy) + (d/2)·((d/2)+(d%2)−1), d = dx+dy.
// For non-endpoint nodes dx,dy ≥ 1, so z ≥ 2 and never collides with the
// endpoint sentinels.
func drnl(dx, dy int) int64 {
	d := dx + dy
	m := min(dx, dy)

	return int64(1 + m + (d/2)*((d/2)+(d%2)-1))
}
