package subgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/label"
	"github.com/oleksiik/enclose/rng"
	"github.com/oleksiik/enclose/subgraph"
)

// assembleFixture extracts and labels the 2-hop subgraph of (0,1) on a
// square 0-1-3-2-0 with the target edge 0-1 present in the observed graph.
func assembleFixture(t *testing.T, opts ...subgraph.Option) *subgraph.Record {
	t.Helper()
	g, err := graph.New(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 3}, {U: 3, V: 2}, {U: 2, V: 0}})
	require.NoError(t, err)
	set, err := extract.FullKHop(g, 0, 1, 2)
	require.NoError(t, err)
	l, err := label.New(label.SchemeDRNL, label.DefaultMaxDist)
	require.NoError(t, err)
	z, err := l.Label(set)
	require.NoError(t, err)
	rec, err := subgraph.Assemble(g, set, z, opts...)
	require.NoError(t, err)

	return rec
}

func TestAssemble_EndpointsAtFixedSlots(t *testing.T) {
	rec := assembleFixture(t, subgraph.WithLinkLabel(true))
	assert.EqualValues(t, 0, rec.NodeIDs[subgraph.SrcLocal])
	assert.EqualValues(t, 1, rec.NodeIDs[subgraph.DstLocal])
	assert.EqualValues(t, 0, rec.Labels[subgraph.SrcLocal])
	assert.EqualValues(t, 1, rec.Labels[subgraph.DstLocal])
	assert.Equal(t, 1, rec.Y)
}

func TestAssemble_TargetEdgeMaskedNeverLeaks(t *testing.T) {
	rec := assembleFixture(t)
	require.NoError(t, rec.VerifyNoLeakage())

	// The 0-1 edge exists in the observed graph, so both orientations
	// must be present and flagged.
	flagged := 0
	for i, e := range rec.EdgeIndex {
		if (e == [2]int64{0, 1}) || (e == [2]int64{1, 0}) {
			assert.True(t, rec.TargetMask[i], "target arc %v unflagged", e)
			flagged++
		}
	}
	assert.Equal(t, 2, flagged)

	// And message passing must never see them.
	edges, weights := rec.MessageEdges()
	assert.Len(t, weights, len(edges))
	for _, e := range edges {
		assert.False(t, (e == [2]int64{0, 1}) || (e == [2]int64{1, 0}), "target arc leaked into message edges")
	}
	// The square has 4 undirected edges = 8 arcs; 2 are masked.
	assert.Len(t, edges, 6)
}

func TestVerifyNoLeakage_DetectsViolation(t *testing.T) {
	rec := assembleFixture(t)
	for i, e := range rec.EdgeIndex {
		if e == [2]int64{0, 1} {
			rec.TargetMask[i] = false
		}
	}
	assert.ErrorIs(t, rec.VerifyNoLeakage(), subgraph.ErrLeakage)
}

func TestAssemble_DropedgeFull(t *testing.T) {
	// Rate 1.0 drops every non-target edge; message passing sees nothing.
	r := rng.Stream(42, rng.PurposeDropedge, 0)
	rec := assembleFixture(t, subgraph.WithDropedge(1.0, r))
	edges, _ := rec.MessageEdges()
	assert.Empty(t, edges)
	// The flagged target arcs survive for verification.
	assert.Equal(t, 2, rec.NumEdges())
	require.NoError(t, rec.VerifyNoLeakage())
}

func TestAssemble_DropedgeSymmetricAndDeterministic(t *testing.T) {
	run := func() *subgraph.Record {
		return assembleFixture(t, subgraph.WithDropedge(0.5, rng.Stream(9, rng.PurposeDropedge, 3)))
	}
	a, b := run(), run()
	assert.Equal(t, a.EdgeIndex, b.EdgeIndex, "dropedge must be reproducible under one stream")

	// Each kept arc's mirror must be kept too.
	kept := map[[2]int64]bool{}
	for _, e := range a.EdgeIndex {
		kept[e] = true
	}
	for _, e := range a.EdgeIndex {
		assert.True(t, kept[[2]int64{e[1], e[0]}], "arc %v kept without its mirror", e)
	}
}

func TestAssemble_ForwardsFeaturesAndWeights(t *testing.T) {
	x := [][]float32{{1}, {2}, {3}}
	g, err := graph.New(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}},
		graph.WithFeatures(x), graph.WithWeights([]float64{0.5, 4}))
	require.NoError(t, err)
	set, err := extract.FullKHop(g, 0, 2, 2)
	require.NoError(t, err)
	l, _ := label.New(label.SchemeDRNL, label.DefaultMaxDist)
	z, err := l.Label(set)
	require.NoError(t, err)
	rec, err := subgraph.Assemble(g, set, z)
	require.NoError(t, err)

	// Local order is [0 2 1]: features follow the remap.
	assert.Equal(t, [][]float32{{1}, {3}, {2}}, rec.Features)
	for i, e := range rec.EdgeIndex {
		u, v := rec.NodeIDs[e[0]], rec.NodeIDs[e[1]]
		w, ok := g.Weight(u, v)
		require.True(t, ok)
		assert.Equal(t, w, rec.EdgeWeight[i], "weight of arc %d->%d", u, v)
	}
}

func TestAssemble_MinimalRecordNeverEmpty(t *testing.T) {
	// Disconnected endpoints: the record is two nodes, zero edges.
	g, err := graph.New(2, nil)
	require.NoError(t, err)
	set, err := extract.FullKHop(g, 0, 1, 1)
	require.NoError(t, err)
	l, _ := label.New(label.SchemeDRNL, label.DefaultMaxDist)
	z, err := l.Label(set)
	require.NoError(t, err)
	rec, err := subgraph.Assemble(g, set, z)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.NumNodes())
	assert.Equal(t, 0, rec.NumEdges())
}

func TestAssemble_Errors(t *testing.T) {
	g, err := graph.New(2, []graph.Edge{{U: 0, V: 1}})
	require.NoError(t, err)
	set, err := extract.FullKHop(g, 0, 1, 1)
	require.NoError(t, err)

	_, err = subgraph.Assemble(nil, set, []int64{0, 1})
	assert.ErrorIs(t, err, subgraph.ErrNilGraph)
	_, err = subgraph.Assemble(g, nil, nil)
	assert.ErrorIs(t, err, subgraph.ErrNilSet)
	_, err = subgraph.Assemble(g, set, []int64{0})
	assert.ErrorIs(t, err, subgraph.ErrLabelMismatch)
	_, err = subgraph.Assemble(g, set, []int64{0, 1}, subgraph.WithDropedge(1.5, nil))
	assert.ErrorIs(t, err, subgraph.ErrBadDropRate)
	_, err = subgraph.Assemble(g, set, []int64{0, 1}, subgraph.WithDropedge(0.5, nil))
	assert.ErrorIs(t, err, extract.ErrNilRNG)
}
