package label_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/label"
)

// setFor extracts a full 3-hop node set on a small fixed graph.
func setFor(t *testing.T) *extract.NodeSet {
	t.Helper()
	// 0-2-3-1 path plus a 2-4 spur.
	g, err := graph.New(5, []graph.Edge{{U: 0, V: 2}, {U: 2, V: 3}, {U: 3, V: 1}, {U: 2, V: 4}})
	require.NoError(t, err)
	set, err := extract.FullKHop(g, 0, 1, 3)
	require.NoError(t, err)

	return set
}

func TestNew_Errors(t *testing.T) {
	if _, err := label.New(label.Scheme(9), 10); !errors.Is(err, label.ErrBadScheme) {
		t.Errorf("bad scheme: want ErrBadScheme, got %v", err)
	}
	if _, err := label.New(label.SchemeDRNL, 0); !errors.Is(err, label.ErrBadMaxDist) {
		t.Errorf("zero budget: want ErrBadMaxDist, got %v", err)
	}
}

func TestParseScheme(t *testing.T) {
	for name, want := range map[string]label.Scheme{
		"":     label.SchemeDRNL,
		"drnl": label.SchemeDRNL,
		"hop":  label.SchemeHop,
		"zo":   label.SchemeZeroOne,
	} {
		got, err := label.ParseScheme(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "name %q", name)
	}
	_, err := label.ParseScheme("degree")
	assert.ErrorIs(t, err, label.ErrBadScheme)
}

func TestLabel_EndpointSentinels(t *testing.T) {
	set := setFor(t)
	for _, scheme := range []label.Scheme{label.SchemeDRNL, label.SchemeHop, label.SchemeZeroOne} {
		l, err := label.New(scheme, label.DefaultMaxDist)
		require.NoError(t, err)
		z, err := l.Label(set)
		require.NoError(t, err)
		assert.EqualValues(t, 0, z[0], "%v: source sentinel", scheme)
		assert.EqualValues(t, 1, z[1], "%v: destination sentinel", scheme)
		for i := 2; i < len(z); i++ {
			assert.GreaterOrEqual(t, z[i], int64(2), "%v: non-endpoint class must not collide with sentinels", scheme)
		}
	}
}

func TestLabel_DRNLKnownValues(t *testing.T) {
	set := setFor(t)
	l, err := label.New(label.SchemeDRNL, label.DefaultMaxDist)
	require.NoError(t, err)
	z, err := l.Label(set)
	require.NoError(t, err)

	// Nodes are [0 1 2 3 4]; distances: 2:(1,2), 3:(2,1), 4:(2,3).
	// drnl(1,2)=drnl(2,1)=1+1+1*(1+1-1)=3; drnl(2,3)=1+2+2*(2+1-1)=7.
	assert.Equal(t, []int64{0, 1, 3, 3, 7}, z)
}

// TestLabel_DRNLMonotoneInDistanceSum checks the spec's ordering property:
// a strictly smaller dx+dy never yields a larger class.
func TestLabel_DRNLMonotoneInDistanceSum(t *testing.T) {
	l, err := label.New(label.SchemeDRNL, 20)
	require.NoError(t, err)

	type entry struct {
		sum int
		z   int64
	}
	var entries []entry
	for dx := 1; dx <= 21; dx++ {
		for dy := 1; dy <= 21; dy++ {
			z := drnlVia(t, l, dx, dy)
			entries = append(entries, entry{sum: dx + dy, z: z})
		}
	}
	for _, a := range entries {
		for _, b := range entries {
			if a.sum < b.sum && a.z > b.z {
				t.Fatalf("class ordering violated: sum %d got class %d > class %d of sum %d", a.sum, a.z, b.z, b.sum)
			}
		}
	}
}

// drnlVia routes a synthetic (dx, dy) through the public API by faking a
// three-node set whose only non-endpoint node has those distances.
func drnlVia(t *testing.T, l label.Labeler, dx, dy int) int64 {
	t.Helper()
	set := &extract.NodeSet{
		Nodes:   []int64{0, 1, 2},
		DistSrc: []int{0, extract.Unreached, dx},
		DistDst: []int{extract.Unreached, 0, dy},
	}
	z, err := l.Label(set)
	require.NoError(t, err)

	return z[2]
}

func TestLabel_ClippingBoundsClasses(t *testing.T) {
	l, err := label.New(label.SchemeDRNL, 3)
	require.NoError(t, err)
	max := int64(l.NumClasses() - 1)

	// Far beyond the budget and fully unreached nodes must still land
	// inside the class space.
	for _, d := range [][2]int{{100, 100}, {extract.Unreached, extract.Unreached}, {1, extract.Unreached}} {
		z := drnlVia(t, l, d[0], d[1])
		assert.LessOrEqual(t, z, max, "distances %v", d)
		assert.GreaterOrEqual(t, z, int64(2), "distances %v", d)
	}
	// The worst case is exactly the top class.
	worst := drnlVia(t, l, extract.Unreached, extract.Unreached)
	assert.Equal(t, max, worst)
}

func TestLabel_HopScheme(t *testing.T) {
	set := setFor(t)
	l, err := label.New(label.SchemeHop, label.DefaultMaxDist)
	require.NoError(t, err)
	z, err := l.Label(set)
	require.NoError(t, err)
	// 1 + min distance: node 2 → 2, node 3 → 2, node 4 → 3.
	assert.Equal(t, []int64{0, 1, 2, 2, 3}, z)
	assert.Equal(t, 1+(label.DefaultMaxDist+1)+1, l.NumClasses())
}

func TestLabel_NilSet(t *testing.T) {
	l, err := label.New(label.SchemeDRNL, 10)
	require.NoError(t, err)
	_, err = l.Label(nil)
	assert.ErrorIs(t, err, label.ErrNilSet)
}
