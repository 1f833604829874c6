package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"notepub/internal/adapters/excalidraw"
	"notepub/internal/adapters/filesystem"
	"notepub/internal/adapters/obsidian"
	"notepub/internal/adapters/tui"
	"notepub/internal/config"
	"notepub/internal/logging"
)

func main() {
	vaultFlag := flag.String("vault", config.VaultPath(), "path to the vault")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: notepub [--vault path] <note-path>")
		os.Exit(1)
	}
	rootPath := flag.Arg(0)

	cfg, err := config.Load(*vaultFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.ParseFormat(cfg.LogFormat), logging.ParseLevel(cfg.LogLevel))

	storage := filesystem.NewStorage(cfg.VaultPath)
	resolver := filesystem.NewResolver(cfg.VaultPath)
	drawings := excalidraw.NewProcessor(storage, resolver, nil)
	opener := obsidian.NewOpener(cfg.VaultPath)

	app := tui.NewApp(storage, resolver, drawings, opener, rootPath, cfg.Options, cfg.Settings)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
