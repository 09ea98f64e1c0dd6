// Command enclose extracts enclosing subgraphs for link prediction from
// plain TSV edge lists: split edges into train/val/test, sample labeled
// subgraph records per candidate pair, and compare sampling sparsity.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagEdges    string
	flagNumNodes int64
	flagConfig   string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "enclose",
	Short: "Enclosing-subgraph extraction for link prediction",
	Long: `enclose reads an undirected graph as a TSV edge list (one "u<TAB>v"
pair per line) and produces the per-link enclosing subgraphs used by
SEAL-style link prediction models.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEdges, "edges", "", "path to TSV edge list (required)")
	rootCmd.PersistentFlags().Int64Var(&flagNumNodes, "num-nodes", 0, "node count; 0 infers max id + 1")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML sampler config")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	_ = rootCmd.MarkPersistentFlagRequired("edges")

	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(ratioCmd)
}
