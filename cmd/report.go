package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/spam-graph/internal/analysis"
	"github.com/hurou927/spam-graph/internal/report"
)

var (
	reportInput     string
	reportSource    string
	reportThreshold float64
	reportOutput    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full analysis and print the report",
	Long: `Loads the comment dataset, builds the similarity graph of all users and of
spam users only, sweeps thresholds over the spam-only graph, and reports the
best-connected spammers and the words they used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := applySourceFlags(reportSource, reportInput); err != nil {
			return err
		}
		if cmd.Flags().Changed("threshold") {
			cfg.Analysis.Threshold = reportThreshold
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		t, err := loadComments(ctx)
		if err != nil {
			return err
		}

		analyzer := analysis.New(analysis.Options{
			Threshold:   cfg.Analysis.Threshold,
			Sweep:       cfg.Analysis.Sweep,
			Parallelism: cfg.Analysis.Parallelism,
		}, logger)
		res, err := analyzer.Run(ctx, t)
		if err != nil {
			return fmt.Errorf("analyzing comments: %w", err)
		}

		outPath := reportOutput
		if outPath == "" {
			outPath = cfg.Output
		}
		w, closeOut, err := openOutput(outPath)
		if err != nil {
			return err
		}
		defer closeOut()

		if err := report.NewWriter(w).Write(res); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if outPath != "" && outPath != "-" {
			fmt.Fprintf(os.Stderr, "Report written to: %s\n", outPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "CSV dataset path (implies --source csv)")
	reportCmd.Flags().StringVar(&reportSource, "source", "", "comment source: csv or postgres (overrides config)")
	reportCmd.Flags().Float64Var(&reportThreshold, "threshold", 0.7, "similarity threshold (overrides config)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "output file path (overrides config, - for stdout)")
	rootCmd.AddCommand(reportCmd)
}
