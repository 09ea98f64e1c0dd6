package sampler_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/sampler"
	"github.com/oleksiik/enclose/subgraph"
)

// ringGraph builds a cycle of n nodes with chords every k, giving the
// walks something to branch on.
func ringGraph(t *testing.T, n int64, k int64) *graph.Graph {
	t.Helper()
	var edges []graph.Edge
	for i := int64(0); i < n; i++ {
		edges = append(edges, graph.Edge{U: i, V: (i + 1) % n})
		if k > 0 && i%k == 0 {
			edges = append(edges, graph.Edge{U: i, V: (i + n/2) % n})
		}
	}
	g, err := graph.New(n, edges)
	require.NoError(t, err)

	return g
}

func walkConfig() sampler.Config {
	cfg := sampler.Default()
	cfg.NumHops = 0
	cfg.WalkLen = 3
	cfg.NumWalks = 5
	cfg.Seed = 42

	return cfg
}

func somePairs(n int64) []sampler.CandidatePair {
	var pos, neg [][2]int64
	for i := int64(0); i < 8; i++ {
		pos = append(pos, [2]int64{i, (i + 1) % n})
		neg = append(neg, [2]int64{i, (i + n/2 + 1) % n})
	}

	return sampler.MakePairs(pos, neg)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*sampler.Config){
		"negative walk len":    func(c *sampler.Config) { c.NumHops = 0; c.WalkLen = -1; c.NumWalks = 5 },
		"walk len without M":   func(c *sampler.Config) { c.NumHops = 0; c.WalkLen = 3; c.NumWalks = 0 },
		"zero hops, no walks":  func(c *sampler.Config) { c.NumHops = 0 },
		"conflicting modes":    func(c *sampler.Config) { c.WalkLen = 3; c.NumWalks = 5 },
		"dropedge = 1":         func(c *sampler.Config) { c.DropedgeRate = 1.0 },
		"dropedge negative":    func(c *sampler.Config) { c.DropedgeRate = -0.1 },
		"neg ratio zero":       func(c *sampler.Config) { c.NegRatio = 0 },
		"splits sum to 1":      func(c *sampler.Config) { c.ValRatio = 0.5; c.TestRatio = 0.5 },
		"percent zero":         func(c *sampler.Config) { c.Percent = 0 },
		"bad label scheme":     func(c *sampler.Config) { c.LabelScheme = "degree" },
		"bad ratio per hop":    func(c *sampler.Config) { c.RatioPerHop = 2 },
		"negative max per hop": func(c *sampler.Config) { c.MaxNodesPerHop = -1 },
		"negative workers":     func(c *sampler.Config) { c.Workers = -2 },
	}
	for name, mutate := range cases {
		cfg := sampler.Default()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), sampler.ErrInvalidConfig, name)
	}
	assert.NoError(t, sampler.Default().Validate())
}

func TestConfig_ModeSelection(t *testing.T) {
	cfg := sampler.Default()
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, extract.FullHop{H: 1, RatioPerHop: 1}, mode)

	mode, err = walkConfig().Mode()
	require.NoError(t, err)
	assert.Equal(t, extract.RandomWalk{WalkLen: 3, NumWalks: 5}, mode)
}

func TestConfig_LoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("walk_len: 4\nnum_walks: 7\nseed: 99\ndropedge: 0.2\n"), 0o644))

	cfg, err := sampler.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.WalkLen)
	assert.Equal(t, 7, cfg.NumWalks)
	assert.EqualValues(t, 99, cfg.Seed)
	assert.Equal(t, 0.2, cfg.DropedgeRate)
	// Walk mode selected by the file: the num_hops default must yield.
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.IsType(t, extract.RandomWalk{}, mode)

	// Unknown keys are typos, not defaults.
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("wlak_len: 4\n"), 0o644))
	_, err = sampler.Load(bad)
	assert.ErrorIs(t, err, sampler.ErrInvalidConfig)
}

func TestExtractAll_DeterministicAcrossRuns(t *testing.T) {
	g := ringGraph(t, 40, 5)
	pairs := somePairs(40)

	run := func(workers int) []*subgraph.Record {
		cfg := walkConfig()
		cfg.Workers = workers
		s, err := sampler.New(g, cfg)
		require.NoError(t, err)
		recs, err := s.ExtractAll(context.Background(), pairs)
		require.NoError(t, err)

		return recs
	}

	serial := run(1)
	parallel := run(8)
	again := run(8)
	require.Len(t, serial, len(pairs))
	for i := range serial {
		assert.Equal(t, serial[i], parallel[i], "pair %d: parallel differs from serial", i)
		assert.Equal(t, parallel[i], again[i], "pair %d: repeat run differs", i)
	}
}

func TestExtractAll_EndpointInvariants(t *testing.T) {
	g := ringGraph(t, 30, 3)
	pairs := somePairs(30)
	s, err := sampler.New(g, walkConfig())
	require.NoError(t, err)
	recs, err := s.ExtractAll(context.Background(), pairs)
	require.NoError(t, err)

	for i, rec := range recs {
		require.NoError(t, rec.VerifyNoLeakage())
		assert.Equal(t, pairs[i].Src, rec.NodeIDs[subgraph.SrcLocal], "pair %d", i)
		assert.Equal(t, pairs[i].Dst, rec.NodeIDs[subgraph.DstLocal], "pair %d", i)
		assert.EqualValues(t, 0, rec.Labels[subgraph.SrcLocal], "pair %d", i)
		assert.EqualValues(t, 1, rec.Labels[subgraph.DstLocal], "pair %d", i)
		if pairs[i].Positive {
			assert.Equal(t, 1, rec.Y, "pair %d", i)
		} else {
			assert.Equal(t, 0, rec.Y, "pair %d", i)
		}
	}
}

func TestExtractAll_FailsBatchOnBadPair(t *testing.T) {
	g := ringGraph(t, 10, 0)
	pairs := somePairs(10)
	pairs[5] = sampler.CandidatePair{Src: 3, Dst: 999} // nonexistent node
	s, err := sampler.New(g, walkConfig())
	require.NoError(t, err)

	_, err = s.ExtractAll(context.Background(), pairs)
	require.Error(t, err)
	var pe *sampler.PairError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 5, pe.Index)
	assert.EqualValues(t, 3, pe.Src)
	assert.EqualValues(t, 999, pe.Dst)
	assert.ErrorIs(t, err, sampler.ErrBadPair)
}

func TestExtractAll_ContextCancellation(t *testing.T) {
	g := ringGraph(t, 10, 0)
	s, err := sampler.New(g, walkConfig())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.ExtractAll(ctx, somePairs(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampler_CacheHitsReturnSameRecord(t *testing.T) {
	g := ringGraph(t, 20, 4)
	cfg := walkConfig()
	cfg.CacheSize = 64
	s, err := sampler.New(g, cfg)
	require.NoError(t, err)

	p := sampler.CandidatePair{Src: 0, Dst: 7, Positive: true}
	first, err := s.Extract(3, p)
	require.NoError(t, err)
	second, err := s.Extract(3, p)
	require.NoError(t, err)
	assert.Same(t, first, second, "cache must return the assembled record")
}

func TestNew_Errors(t *testing.T) {
	g := ringGraph(t, 5, 0)
	_, err := sampler.New(nil, sampler.Default())
	assert.ErrorIs(t, err, sampler.ErrNilGraph)
	bad := sampler.Default()
	bad.NegRatio = 0
	_, err = sampler.New(g, bad)
	assert.ErrorIs(t, err, sampler.ErrInvalidConfig)
}

func TestExtract_DropedgeConfig(t *testing.T) {
	g := ringGraph(t, 16, 2)
	cfg := walkConfig()
	cfg.DropedgeRate = 0.5
	s, err := sampler.New(g, cfg)
	require.NoError(t, err)

	a, err := s.Extract(0, sampler.CandidatePair{Src: 0, Dst: 8, Positive: true})
	require.NoError(t, err)
	b, err := s.Extract(0, sampler.CandidatePair{Src: 0, Dst: 8, Positive: true})
	require.NoError(t, err)
	assert.Equal(t, a.EdgeIndex, b.EdgeIndex, "dropedge must be a function of (seed, pair index)")
	require.NoError(t, a.VerifyNoLeakage())
}
