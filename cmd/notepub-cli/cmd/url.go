package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"notepub/internal/domain"
)

var urlCopy bool

var urlCmd = &cobra.Command{
	Use:   "url <note-path>",
	Short: "Print the public URL a note would have once published",
	Long: `Url derives the public URL for a note from its vault path and the
configured base_url. The note does not have to be published yet.

Examples:
  notepub-cli url "A & B/note name.md"
  notepub-cli url "Projects/Plan.md" --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, ok := domain.PublicURL(args[0], cfg.Settings)
		if !ok {
			return fmt.Errorf("no base_url configured, set it in .notepub.yaml")
		}

		fmt.Println(url)
		if urlCopy {
			if err := clipboard.WriteAll(url); err != nil {
				return fmt.Errorf("clipboard unavailable: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.Flags().BoolVarP(&urlCopy, "copy", "c", false, "copy the URL to the clipboard")
}
