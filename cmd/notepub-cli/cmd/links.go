package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"notepub/internal/adapters/sqlite"
)

var linksCmd = &cobra.Command{
	Use:   "links <note-path>",
	Short: "List a note's outgoing wikilinks from the index",
	Long: `Links queries the SQLite index for the wikilink targets recorded in a
note, resolving each one to its vault path. Targets that no longer
resolve are marked unresolved.

Requires an index; build one with notepub-cli sync.

Examples:
  notepub-cli links "Projects/Plan.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sqlite.DatabaseExists(cfg.VaultPath) {
			return fmt.Errorf("no index for this vault, run notepub-cli sync first")
		}

		idx := sqlite.NewIndex()
		if err := idx.Open(cfg.VaultPath); err != nil {
			return err
		}
		defer idx.Close()

		edges, err := idx.FindLinksFromFile(args[0])
		if err != nil {
			return err
		}
		if len(edges) == 0 {
			fmt.Println("no outgoing links")
			return nil
		}

		r := sqlite.NewIndexResolver(idx)
		for _, edge := range edges {
			if ref, ok := r.Resolve(edge.TargetText, args[0]); ok {
				fmt.Printf("%s  %s\n", edge.TargetText, ref.Path)
			} else {
				fmt.Printf("%s  (unresolved)\n", edge.TargetText)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
