package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/logging"
)

var (
	inputRoot   string
	outputRoot  string
	layoutsPath string
	jobs        int
	partial     bool
	logFormat   string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "cwlstats",
	Short: "League match export aggregator",
	Long: `Fold per-match CSV stat exports into per-player and per-team JSON summaries.

Exports are read from <in>/<title>/*.csv (also .csv.gz and .csv.zst) and one
summary per export is written to <out>/<title>/{player,team}/<name>.json.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inputRoot, "in", envOr("CWLSTATS_IN", "data/game"), "directory holding one sub-directory of exports per title")
	rootCmd.PersistentFlags().StringVar(&outputRoot, "out", envOr("CWLSTATS_OUT", "data/out/game"), "directory summaries are written under")
	rootCmd.PersistentFlags().StringVar(&layoutsPath, "layouts", os.Getenv("CWLSTATS_LAYOUTS"), "YAML file overriding or adding title column layouts")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "max exports processed at once (0 = all)")
	rootCmd.PersistentFlags().BoolVar(&partial, "partial", false, "publish succeeded summaries even when other exports fail")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(showCmd)
}

// setupLogging attaches a run-scoped logger to the command context.
func setupLogging(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(cmd.ErrOrStderr(), logFormat, logLevel)
	if err != nil {
		return err
	}
	logger = logger.With(slog.String("runID", uuid.NewString()))
	slog.SetDefault(logger)
	cmd.SetContext(logging.AddToContext(cmd.Context(), logger))
	return nil
}

func loadRegistry() (*layout.Registry, error) {
	if layoutsPath == "" {
		return layout.Builtin(), nil
	}
	return layout.LoadFile(layoutsPath)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
