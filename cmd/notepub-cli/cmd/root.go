package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notepub/internal/adapters/excalidraw"
	"notepub/internal/adapters/filesystem"
	"notepub/internal/adapters/obsidian"
	"notepub/internal/adapters/sqlite"
	"notepub/internal/config"
	"notepub/internal/logging"
	"notepub/internal/ports"
)

var (
	vaultPath string
	cfg       *config.Config

	storage  ports.Storage
	resolver ports.LinkResolver
	drawings ports.DrawingProcessor
	index    *sqlite.Index
)

var rootCmd = &cobra.Command{
	Use:   "notepub-cli",
	Short: "CLI for publishing Obsidian notes and their linked neighborhood",
	Long: `notepub-cli copies a note together with everything it links to into a
target folder inside the vault, rewriting Excalidraw drawing links into
rendered PNG images along the way.

Publishing is driven by the vault's .notepub.yaml config, overridable
per invocation with flags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(vaultPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logging.Init(logging.ParseFormat(cfg.LogFormat), logging.ParseLevel(cfg.LogLevel))

		storage = filesystem.NewStorage(cfg.VaultPath)
		resolver = buildResolver(cfg.VaultPath)
		drawings = excalidraw.NewProcessor(storage, resolver, nil)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if index != nil {
			index.Close()
		}
	},
}

// buildResolver prefers the SQLite index when one is already built and still
// matches the vault, otherwise it falls back to a full filesystem scan.
func buildResolver(vault string) ports.LinkResolver {
	if !sqlite.DatabaseExists(vault) {
		return filesystem.NewResolver(vault)
	}

	idx := sqlite.NewIndex()
	if err := idx.Open(vault); err != nil {
		slog.Warn("index unavailable, scanning vault", "error", err)
		return filesystem.NewResolver(vault)
	}
	if idx.NeedsFullRebuild() {
		idx.Close()
		slog.Warn("index is stale, scanning vault", "hint", "run notepub-cli sync --full")
		return filesystem.NewResolver(vault)
	}

	index = idx
	return sqlite.NewIndexResolver(idx)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", config.VaultPath(), "path to the vault")
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// NewOpener returns an Obsidian opener for the configured vault
func NewOpener() *obsidian.Opener {
	return obsidian.NewOpener(cfg.VaultPath)
}
