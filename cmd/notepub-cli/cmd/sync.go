package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"notepub/internal/adapters/sqlite"
	"notepub/internal/domain"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Build or refresh the vault's link index",
	Long: `Sync maintains a SQLite index of vault files and their wikilinks. With
the index in place, publish and stats resolve links from the database
instead of rescanning the whole vault.

The first run builds the index from scratch, later runs only pick up
changed files. Use --full to force a rebuild.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx := sqlite.NewIndex()
		if err := idx.Open(cfg.VaultPath); err != nil {
			return err
		}
		defer idx.Close()

		var stats *domain.SyncStats
		var err error
		if syncFull || idx.NeedsFullRebuild() {
			stats, err = idx.SyncFull()
		} else {
			stats, err = idx.SyncIncremental()
		}
		if err != nil {
			return err
		}

		fmt.Printf("scanned %d files: +%d ~%d -%d nodes, %d links (%s)\n",
			stats.FilesScanned, stats.NodesAdded, stats.NodesUpdated,
			stats.NodesDeleted, stats.EdgesAdded, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "force a full rebuild")
}
