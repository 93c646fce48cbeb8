package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hurou927/spam-graph/internal/graph"
	"github.com/hurou927/spam-graph/internal/source"
	"github.com/hurou927/spam-graph/internal/vocab"
)

var (
	analyzeFormat    string
	analyzeInput     string
	analyzeSource    string
	analyzeThreshold float64
	analyzeSpamOnly  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build one similarity graph and output its structure",
	Long:  `Loads the comment dataset, builds the user similarity graph at one threshold, and outputs it in the specified format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := applySourceFlags(analyzeSource, analyzeInput); err != nil {
			return err
		}
		threshold := cfg.Analysis.Threshold
		if cmd.Flags().Changed("threshold") {
			threshold = analyzeThreshold
		}

		t, err := loadComments(ctx)
		if err != nil {
			return err
		}
		if analyzeSpamOnly {
			t, err = source.SpamOnly(t)
			if err != nil {
				return fmt.Errorf("selecting spam rows: %w", err)
			}
		}

		users, words, err := vocab.Extract(t)
		if err != nil {
			return fmt.Errorf("extracting vocabulary: %w", err)
		}
		g, err := graph.Build(users, words, threshold)
		if err != nil {
			return err
		}
		logger.Debug("graph built", zap.Int("users", len(g.Users)), zap.Int("edges", g.Edges))

		w := cmd.OutOrStdout()
		switch analyzeFormat {
		case "mermaid":
			return graph.WriteMermaid(w, g)
		case "text":
			return graph.WriteText(w, g)
		default:
			return fmt.Errorf("unknown format: %s (supported: mermaid, text)", analyzeFormat)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text or mermaid")
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "CSV dataset path (implies --source csv)")
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "", "comment source: csv or postgres (overrides config)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0.7, "similarity threshold (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeSpamOnly, "spam-only", false, "only include spam comments")
	rootCmd.AddCommand(analyzeCmd)
}
