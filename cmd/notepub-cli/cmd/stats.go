package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"notepub/internal/application/commands"
)

var statsCmd = &cobra.Command{
	Use:   "stats <note-path>",
	Short: "Show what a publish would do, without writing anything",
	Long: `Stats walks the note's link graph the same way publish does and reports
the reachable files and their estimated size. Nothing is written.

Examples:
  notepub-cli stats "Projects/Plan.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		statsCmd := commands.NewStatsCommand(storage, resolver, drawings,
			args[0], cfg.Options, cfg.Settings)
		result, err := statsCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, ref := range result.Stats.LinkedFiles {
			fmt.Printf("  %s\n", ref.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
