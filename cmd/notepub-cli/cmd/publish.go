package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"notepub/internal/application/commands"
)

var (
	publishTarget   string
	publishDepth    int
	publishRootOnly bool
	publishFlat     bool
	publishOpen     bool
	publishCopyURL  bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <note-path>",
	Short: "Publish a note and its linked neighborhood",
	Long: `Publish copies a note into the target folder together with every note
reachable through wikilinks, up to the configured depth. Links to
Excalidraw drawings are replaced with rendered PNG images.

Examples:
  notepub-cli publish "Projects/Plan.md"
  notepub-cli publish "Projects/Plan.md" --depth 1
  notepub-cli publish "Projects/Plan.md" --root-only --copy-url`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options := cfg.Options
		settings := cfg.Settings
		if publishTarget != "" {
			settings.TargetFolder = publishTarget
		}
		if publishDepth > 0 {
			options.MaxDepth = publishDepth
		}
		if publishRootOnly {
			options.IncludeLinked = false
		}
		if publishFlat {
			settings.PreserveStructure = false
		}

		pub := commands.NewPublishCommand(storage, resolver, drawings,
			args[0], options, settings)
		report, err := pub.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(report.Message)
		for _, f := range report.Files.SkippedFiles {
			fmt.Printf("  skipped (depth limit): %s\n", f)
		}
		for _, e := range report.Files.Errors {
			fmt.Printf("  %s\n", e)
		}
		if report.URL != "" {
			fmt.Println(report.URL)
		}

		if publishCopyURL && report.URL != "" {
			if err := clipboard.WriteAll(report.URL); err != nil {
				fmt.Printf("clipboard unavailable: %v\n", err)
			} else {
				fmt.Println("URL copied to clipboard")
			}
		}
		if publishOpen {
			if err := NewOpener().OpenFile(args[0]); err != nil {
				fmt.Printf("could not open Obsidian: %v\n", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVarP(&publishTarget, "target", "t", "", "target folder (overrides config)")
	publishCmd.Flags().IntVarP(&publishDepth, "depth", "d", 0, "maximum link depth (overrides config)")
	publishCmd.Flags().BoolVar(&publishRootOnly, "root-only", false, "publish only the note itself")
	publishCmd.Flags().BoolVar(&publishFlat, "flat", false, "ignore the source folder structure in the target")
	publishCmd.Flags().BoolVarP(&publishOpen, "open", "o", false, "open the note in Obsidian afterwards")
	publishCmd.Flags().BoolVarP(&publishCopyURL, "copy-url", "c", false, "copy the public URL to the clipboard")
}
