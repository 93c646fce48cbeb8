package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/logging"
)

var (
	cfgPath  string
	logLevel string
	cfg      *config.Config
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spam-graph",
	Short: "Analyze a labeled comment dataset as a user similarity graph",
	Long: `spam-graph reads a labeled YouTube comment dataset, links users whose
vocabularies are similar (Jaccard index over the words they used), and reports
connected components and the best-connected spammers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; it only supplies PG* fallbacks.
		_ = godotenv.Load()

		var err error
		if cfgPath == "" {
			cfg = config.Default()
		} else {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
