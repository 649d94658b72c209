package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-cwl-stats/internal/batch"
	"github.com/pable/go-cwl-stats/internal/layout"
	"github.com/pable/go-cwl-stats/internal/model"
	"github.com/pable/go-cwl-stats/internal/report"
)

var playersCmd = &cobra.Command{
	Use:               "players <title>",
	Short:             "Generate per-player summaries for every export of a title",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTitles,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0], model.KindPlayer)
	},
}

var teamsCmd = &cobra.Command{
	Use:               "teams <title>",
	Short:             "Generate per-team summaries for every export of a title",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTitles,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0], model.KindTeam)
	},
}

// generateCmd runs the player batch and then the team batch.
var generateCmd = &cobra.Command{
	Use:   "generate <title>",
	Short: "Generate player and team summaries for a title",
	Long: `Runs the player batch, then the team batch. The team batch is skipped
when the player batch fails.

Example:
  cwlstats generate bo4 --in data/game --out data/out/game`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTitles,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0], model.KindPlayer, model.KindTeam)
	},
}

func runGenerate(cmd *cobra.Command, title string, kinds ...model.Kind) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	for _, kind := range kinds {
		outcome, err := batch.Run(cmd.Context(), batch.Options{
			Title:      layout.Title(title),
			Kind:       kind,
			InputRoot:  inputRoot,
			OutputRoot: outputRoot,
			Registry:   registry,
			Jobs:       jobs,
			Partial:    partial,
		})
		if err == nil || errors.Is(err, batch.ErrBatchFailed) {
			report.PrintOutcome(cmd.OutOrStdout(), outcome)
		}
		if err != nil {
			return fmt.Errorf("generate %s stats for %s: %w", kind, title, err)
		}
	}
	return nil
}

func completeTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	registry, err := loadRegistry()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, t := range registry.Titles() {
		out = append(out, string(t))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
