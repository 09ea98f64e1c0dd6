package batch

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/oleksiik/enclose/extract"
	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/sampler"
)

// Summary is a mean ± standard deviation pair.
type Summary struct {
	Mean float64
	Std  float64
}

func (s Summary) String() string { return fmt.Sprintf("%.2f ± %.2f", s.Mean, s.Std) }

// SparsityReport quantifies how much sparser random-walk extraction is
// than exhaustive k-hop extraction over a sample of candidate pairs.
// Ratios are full-over-walk, so values above 1 mean the walks saved work.
type SparsityReport struct {
	Pairs int

	FullNodes Summary
	WalkNodes Summary
	FullEdges Summary
	WalkEdges Summary

	NodeRatio Summary
	EdgeRatio Summary
}

func (r *SparsityReport) String() string {
	return fmt.Sprintf(
		"pairs=%d full-nodes=%s walk-nodes=%s full-edges=%s walk-edges=%s node-ratio=%s edge-ratio=%s",
		r.Pairs, r.FullNodes, r.WalkNodes, r.FullEdges, r.WalkEdges, r.NodeRatio, r.EdgeRatio)
}

// CompareSparsity runs both extraction strategies with matched parameters
// over the same pairs and reports node/edge count statistics. Both
// samplers share one seed, so each pair's walk streams and any fringe
// subsampling derive from identical indices — the comparison is fair by
// construction. Diagnostic only: nothing here feeds the training path.
func CompareSparsity(ctx context.Context, g *graph.Graph, pairs []sampler.CandidatePair,
	full extract.FullHop, walk extract.RandomWalk, seed int64) (*SparsityReport, error) {
	if len(pairs) == 0 {
		return nil, ErrNoRecords
	}
	fullCfg := sampler.Default()
	fullCfg.Seed = seed
	fullCfg.NumHops = full.H
	fullCfg.RatioPerHop = full.RatioPerHop
	fullCfg.MaxNodesPerHop = full.MaxNodesPerHop

	walkCfg := sampler.Default()
	walkCfg.Seed = seed
	walkCfg.NumHops = 0
	walkCfg.WalkLen = walk.WalkLen
	walkCfg.NumWalks = walk.NumWalks

	fullS, err := sampler.New(g, fullCfg)
	if err != nil {
		return nil, err
	}
	walkS, err := sampler.New(g, walkCfg)
	if err != nil {
		return nil, err
	}

	fullRecs, err := fullS.ExtractAll(ctx, pairs)
	if err != nil {
		return nil, err
	}
	walkRecs, err := walkS.ExtractAll(ctx, pairs)
	if err != nil {
		return nil, err
	}

	n := len(pairs)
	fullNodes := make([]float64, n)
	walkNodes := make([]float64, n)
	fullEdges := make([]float64, n)
	walkEdges := make([]float64, n)
	nodeRatio := make([]float64, n)
	edgeRatio := make([]float64, n)
	for i := range pairs {
		fullNodes[i] = float64(fullRecs[i].NumNodes())
		walkNodes[i] = float64(walkRecs[i].NumNodes())
		fullEdges[i] = float64(fullRecs[i].NumEdges())
		walkEdges[i] = float64(walkRecs[i].NumEdges())
		nodeRatio[i] = fullNodes[i] / walkNodes[i] // records are never empty
		if walkEdges[i] > 0 {
			edgeRatio[i] = fullEdges[i] / walkEdges[i]
		}
	}

	return &SparsityReport{
		Pairs:     n,
		FullNodes: summarize(fullNodes),
		WalkNodes: summarize(walkNodes),
		FullEdges: summarize(fullEdges),
		WalkEdges: summarize(walkEdges),
		NodeRatio: summarize(nodeRatio),
		EdgeRatio: summarize(edgeRatio),
	}, nil
}

func summarize(xs []float64) Summary {
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		std = 0 // StdDev is NaN for a single sample
	}

	return Summary{Mean: mean, Std: std}
}
