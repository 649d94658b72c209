package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cwl-stats/internal/model"
	"github.com/pable/go-cwl-stats/internal/output"
	"github.com/pable/go-cwl-stats/internal/report"
)

var showKind string

var showCmd = &cobra.Command{
	Use:   "show <summary.json>",
	Short: "Print a written summary as a table",
	Long: `Print a player or team summary written by 'players', 'teams' or 'generate'.

The kind is taken from the summary's parent directory (player/ or team/)
unless --kind is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showKind, "kind", "", "summary kind: player or team")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]

	raw := showKind
	if raw == "" {
		raw = filepath.Base(filepath.Dir(path))
	}
	kind, err := model.ParseKind(raw)
	if err != nil {
		return fmt.Errorf("cannot tell summary kind of %s, use --kind: %w", path, err)
	}

	switch kind {
	case model.KindPlayer:
		players, err := output.ReadPlayers(path)
		if err != nil {
			return err
		}
		report.PrintPlayers(cmd.OutOrStdout(), players)
	case model.KindTeam:
		teams, err := output.ReadTeams(path)
		if err != nil {
			return err
		}
		report.PrintTeams(cmd.OutOrStdout(), teams)
	}
	return nil
}
