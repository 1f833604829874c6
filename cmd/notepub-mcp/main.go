package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"notepub/internal/adapters/excalidraw"
	"notepub/internal/adapters/filesystem"
	mcpadapter "notepub/internal/adapters/mcp"
	"notepub/internal/adapters/sqlite"
	"notepub/internal/config"
	"notepub/internal/logging"
	"notepub/internal/ports"
)

func main() {
	vaultFlag := flag.String("vault", config.VaultPath(), "path to the vault")
	flag.Parse()

	cfg, err := config.Load(*vaultFlag)
	if err != nil {
		log.Fatalf("notepub-mcp: %v", err)
	}
	logging.Init(logging.ParseFormat(cfg.LogFormat), logging.ParseLevel(cfg.LogLevel))

	storage := filesystem.NewStorage(cfg.VaultPath)

	// Keep the index around for the sync_index tool; the server process is
	// long-lived so resolving through it pays off.
	var resolver ports.LinkResolver
	var index ports.VaultIndex
	idx := sqlite.NewIndex()
	if err := idx.Open(cfg.VaultPath); err == nil {
		if idx.NeedsFullRebuild() {
			idx.SyncFull()
		}
		index = idx
		resolver = sqlite.NewIndexResolver(idx)
		defer idx.Close()
	} else {
		resolver = filesystem.NewResolver(cfg.VaultPath)
	}

	drawings := excalidraw.NewProcessor(storage, resolver, nil)

	mcpServer := server.NewMCPServer(
		"notepub-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterPublishTools(mcpServer, mcpadapter.Deps{
		Storage:  storage,
		Resolver: resolver,
		Drawings: drawings,
		Index:    index,
		Settings: cfg.Settings,
		Options:  cfg.Options,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("notepub-mcp: %v", err)
	}
}
