package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/label"
	"github.com/oleksiik/enclose/rng"
	"github.com/oleksiik/enclose/subgraph"
)

// CandidatePair is one link to score: two endpoints and the binary
// ground-truth label.
type CandidatePair struct {
	// Src and Dst are global node ids.
	Src, Dst int64

	// Positive marks an observed (true) link.
	Positive bool
}

// MakePairs builds the candidate list from positive and negative edge
// lists, positives first — a deterministic order the pair index (and
// therefore every derived random stream) hangs off.
func MakePairs(pos, neg [][2]int64) []CandidatePair {
	pairs := make([]CandidatePair, 0, len(pos)+len(neg))
	for _, e := range pos {
		pairs = append(pairs, CandidatePair{Src: e[0], Dst: e[1], Positive: true})
	}
	for _, e := range neg {
		pairs = append(pairs, CandidatePair{Src: e[0], Dst: e[1]})
	}

	return pairs
}

// PairError attaches pair identity to an extraction failure, so a failed
// batch names exactly which candidate broke it.
type PairError struct {
	Index    int
	Src, Dst int64
	Err      error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("sampler: pair %d (%d,%d): %v", e.Index, e.Src, e.Dst, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger routes progress logging; defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// cacheKey identifies a record by pair position and identity; streams are
// derived from the index, so equal keys imply byte-identical records.
type cacheKey struct {
	idx      int
	src, dst int64
	positive bool
}

// Sampler runs the full per-pair pipeline — extraction, labeling, assembly,
// leakage verification — over a shared observed graph.
//
// Extraction is embarrassingly parallel: workers read only the immutable
// graph and derive their random streams from (seed, pair index, endpoint),
// so scheduling order cannot change results.
type Sampler struct {
	g       *graph.Graph
	cfg     Config
	mode    extract.Mode
	labeler label.Labeler
	cache   *lru.Cache[cacheKey, *subgraph.Record]
	log     *slog.Logger
}

// New validates the configuration and builds a Sampler. All configuration
// failures surface here, before any sampling begins.
func New(g *graph.Graph, cfg Config, opts ...Option) (*Sampler, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	labeler, err := cfg.labeler()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s := &Sampler{
		g:       g,
		cfg:     cfg,
		mode:    mode,
		labeler: labeler,
		log:     slog.Default(),
	}
	if cfg.CacheSize > 0 {
		s.cache, err = lru.New[cacheKey, *subgraph.Record](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: cache: %v", ErrInvalidConfig, err)
		}
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Mode returns the extraction variant in effect.
func (s *Sampler) Mode() extract.Mode { return s.mode }

// NumLabelClasses returns the labeler's class-space size, for sizing
// downstream embedding tables.
func (s *Sampler) NumLabelClasses() int { return s.labeler.NumClasses() }

// Extract runs the pipeline for a single candidate pair. The pair index
// addresses the pair's random streams and must be its position in the
// batch for reproducibility.
func (s *Sampler) Extract(pairIdx int, p CandidatePair) (*subgraph.Record, error) {
	key := cacheKey{idx: pairIdx, src: p.Src, dst: p.Dst, positive: p.Positive}
	if s.cache != nil {
		if rec, ok := s.cache.Get(key); ok {
			return rec, nil
		}
	}
	rec, err := s.extract(pairIdx, p)
	if err != nil {
		return nil, &PairError{Index: pairIdx, Src: p.Src, Dst: p.Dst, Err: err}
	}
	if s.cache != nil {
		s.cache.Add(key, rec)
	}

	return rec, nil
}

func (s *Sampler) extract(pairIdx int, p CandidatePair) (*subgraph.Record, error) {
	if p.Src < 0 || p.Src >= s.g.NumNodes() || p.Dst < 0 || p.Dst >= s.g.NumNodes() || p.Src == p.Dst {
		return nil, fmt.Errorf("%w: (%d,%d) on %d nodes", ErrBadPair, p.Src, p.Dst, s.g.NumNodes())
	}
	seed, idx := uint64(s.cfg.Seed), uint64(pairIdx)

	var (
		set *extract.NodeSet
		err error
	)
	switch m := s.mode.(type) {
	case extract.RandomWalk:
		set, err = extract.RandomWalks(s.g, p.Src, p.Dst, m.WalkLen, m.NumWalks,
			rng.Stream(seed, rng.PurposeWalk, idx, 0),
			rng.Stream(seed, rng.PurposeWalk, idx, 1))
	case extract.FullHop:
		opts := []extract.Option{
			extract.WithRatioPerHop(m.RatioPerHop),
			extract.WithMaxNodesPerHop(m.MaxNodesPerHop),
		}
		if m.RatioPerHop < 1 || m.MaxNodesPerHop > 0 {
			opts = append(opts, extract.WithFringeRNG(rng.Stream(seed, rng.PurposeFringe, idx)))
		}
		set, err = extract.FullKHop(s.g, p.Src, p.Dst, m.H, opts...)
	default:
		err = fmt.Errorf("%w: unknown mode %v", ErrInvalidConfig, s.mode)
	}
	if err != nil {
		return nil, err
	}

	labels, err := s.labeler.Label(set)
	if err != nil {
		return nil, err
	}

	asmOpts := []subgraph.Option{subgraph.WithLinkLabel(p.Positive)}
	if s.cfg.DropedgeRate > 0 {
		asmOpts = append(asmOpts,
			subgraph.WithDropedge(s.cfg.DropedgeRate, rng.Stream(seed, rng.PurposeDropedge, idx)))
	}
	rec, err := subgraph.Assemble(s.g, set, labels, asmOpts...)
	if err != nil {
		return nil, err
	}
	if err := rec.VerifyNoLeakage(); err != nil {
		return nil, err
	}

	return rec, nil
}

// ExtractAll runs the pipeline over every candidate pair, preserving input
// order in the result. Pairs are processed by a bounded worker pool; the
// first failure cancels the batch and is returned as a *PairError —
// silently skipping a pair would change dataset composition.
func (s *Sampler) ExtractAll(ctx context.Context, pairs []CandidatePair) ([]*subgraph.Record, error) {
	workers := s.cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	records := make([]*subgraph.Record, len(pairs))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)
	for i, p := range pairs {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := s.Extract(i, p)
			if err != nil {
				return err
			}
			records[i] = rec

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug("extracted enclosing subgraphs",
		"pairs", len(pairs),
		"mode", s.mode.String(),
		"workers", workers,
		"elapsed", time.Since(start))

	return records, nil
}
