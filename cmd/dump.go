package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/output"
)

var (
	dumpInput  string
	dumpOutput string
	dumpTable  string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Convert a CSV dataset into SQL for the PostgreSQL source",
	Long:  `Reads a CSV comment dataset and writes a CREATE TABLE statement and a COPY block that load it into PostgreSQL for use with --source postgres.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applySourceFlags(config.SourceCSV, dumpInput); err != nil {
			return err
		}

		t, err := loadComments(cmd.Context())
		if err != nil {
			return err
		}

		w, closeOut, err := openOutput(dumpOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		if err := output.NewWriter(w).Dump(dumpTable, config.DefaultColumns(config.SourcePostgres), t); err != nil {
			return err
		}
		if dumpOutput != "" && dumpOutput != "-" {
			fmt.Fprintf(os.Stderr, "%d rows written to: %s\n", t.Len(), dumpOutput)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpInput, "input", "", "CSV dataset path (overrides config)")
	dumpCmd.Flags().StringVar(&dumpOutput, "output", "", "output file path (- for stdout)")
	dumpCmd.Flags().StringVar(&dumpTable, "table", "comments", "target table, optionally schema-qualified")
	rootCmd.AddCommand(dumpCmd)
}
