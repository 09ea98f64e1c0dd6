package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oleksiik/enclose/split"
)

var flagSplitOut string

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split edges into train/val/test with sampled negatives",
	Long: `split shuffles the edge list deterministically, holds out validation
and test positives, samples matching negatives, and writes six TSV files
(train/val/test × pos/neg) into the output directory.`,
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

		s, err := split.Edges(numNodes, edges, split.Options{
			ValRatio:  cfg.ValRatio,
			TestRatio: cfg.TestRatio,
			NegRatio:  cfg.NegRatio,
			Percent:   cfg.Percent,
			Seed:      cfg.Seed,
		})
		if err != nil {
			return err
		}

		if err := os.MkdirAll(flagSplitOut, 0o755); err != nil {
			return err
		}
		for name, pairs := range map[string][][2]int64{
			"train_pos.tsv": s.TrainPos, "train_neg.tsv": s.TrainNeg,
			"val_pos.tsv": s.ValPos, "val_neg.tsv": s.ValNeg,
			"test_pos.tsv": s.TestPos, "test_neg.tsv": s.TestNeg,
		} {
			if err := writePairsTSV(filepath.Join(flagSplitOut, name), pairs); err != nil {
				return err
			}
		}

		slog.Info("edge split written",
			"out", flagSplitOut,
			"nodes", numNodes,
			"train_pos", len(s.TrainPos),
			"val_pos", len(s.ValPos),
			"test_pos", len(s.TestPos),
			"neg_ratio", cfg.NegRatio,
			"seed", cfg.Seed)

		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&flagSplitOut, "out", "splits", "output directory for split TSV files")
}
