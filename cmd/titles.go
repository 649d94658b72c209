package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/go-cwl-stats/internal/report"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List supported game titles and their column layouts",
	Args:  cobra.NoArgs,
	RunE:  runTitles,
}

func runTitles(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("load layouts: %w", err)
	}
	report.PrintTitles(cmd.OutOrStdout(), registry)
	return nil
}
