package main

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oleksiik/enclose/graph"
	"github.com/oleksiik/enclose/sampler"
)

var (
	flagSamplePairs string
	flagSampleOut   string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Extract labeled enclosing subgraphs for candidate pairs",
	Long: `sample builds the observed graph from the edge list, extracts one
enclosing subgraph per candidate pair (full k-hop or random-walk,
depending on the config), and writes the records as JSON lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		edges, inferred, err := readEdgesTSV(flagEdges)
		if err != nil {
			return err
		}
		numNodes := flagNumNodes
		if numNodes == 0 {
			numNodes = inferred
		}
		g, err := graph.New(numNodes, edges)
		if err != nil {
			return err
		}
		pairs, err := readPairsTSV(flagSamplePairs)
		if err != nil {
			return err
		}

		s, err := sampler.New(g, cfg)
		if err != nil {
			return err
		}
		records, err := s.ExtractAll(cmd.Context(), pairs)
		if err != nil {
			return err
		}

		out := os.Stdout
		if flagSampleOut != "-" {
			f, err := os.Create(flagSampleOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		w := bufio.NewWriter(out)
		enc := json.NewEncoder(w)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		slog.Info("subgraphs sampled",
			"pairs", len(pairs),
			"mode", s.Mode().String(),
			"label_classes", s.NumLabelClasses(),
			"out", flagSampleOut)

		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&flagSamplePairs, "pairs", "", "path to TSV candidate pairs: u\\tv[\\ty] (required)")
	sampleCmd.Flags().StringVar(&flagSampleOut, "out", "-", "output JSONL path, or - for stdout")
	_ = sampleCmd.MarkFlagRequired("pairs")
}
