package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"notepub/internal/application/commands"
	"notepub/internal/domain"
	"notepub/internal/ports"
)

// Deps bundles the collaborators the publish tools need. Index may be nil
// when no SQLite index has been built for the vault.
type Deps struct {
	Storage  ports.Storage
	Resolver ports.LinkResolver
	Drawings ports.DrawingProcessor
	Index    ports.VaultIndex
	Settings domain.Settings
	Options  domain.PublishOptions
}

// RegisterPublishTools adds all publishing tools to the MCP server.
func RegisterPublishTools(s *server.MCPServer, deps Deps) {
	s.AddTool(publishTool(), publishHandler(deps))
	s.AddTool(statsTool(), statsHandler(deps))
	s.AddTool(publicURLTool(), publicURLHandler(deps))
	s.AddTool(listNotesTool(), listNotesHandler(deps))
	if deps.Index != nil {
		s.AddTool(syncIndexTool(), syncIndexHandler(deps))
	}
}

// --- publish ---

func publishTool() mcp.Tool {
	return mcp.NewTool("publish",
		mcp.WithDescription("Publish a note and its wikilinked neighborhood into the vault's target folder, rewriting drawing links to rendered images."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the note to publish (e.g. Projects/Plan.md)"),
			mcp.Required(),
		),
		mcp.WithBoolean("include_linked",
			mcp.Description("Follow wikilinks to publish the whole neighborhood. Defaults to the vault config."),
		),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum link depth to follow from the root (1-20). Defaults to the vault config."),
		),
	)
}

func publishHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		options := deps.Options
		options.IncludeLinked = req.GetBool("include_linked", options.IncludeLinked)
		if depth := req.GetInt("max_depth", 0); depth > 0 {
			options.MaxDepth = depth
		}

		cmd := commands.NewPublishCommand(deps.Storage, deps.Resolver, deps.Drawings,
			path, options, deps.Settings)
		report, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(report.Message)
		sb.WriteByte('\n')
		if report.URL != "" {
			fmt.Fprintf(&sb, "URL: %s\n", report.URL)
		}
		for _, f := range report.Files.PublishedFiles {
			fmt.Fprintf(&sb, "published: %s\n", f)
		}
		for _, f := range report.Files.SkippedFiles {
			fmt.Fprintf(&sb, "skipped: %s\n", f)
		}
		for _, e := range report.Files.Errors {
			fmt.Fprintf(&sb, "error: %s\n", e)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- publish_stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("publish_stats",
		mcp.WithDescription("Dry run of publish: report how many files would be published, which linked notes are reachable, and the estimated size. Writes nothing."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the note (e.g. Projects/Plan.md)"),
			mcp.Required(),
		),
	)
}

func statsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		cmd := commands.NewStatsCommand(deps.Storage, deps.Resolver, deps.Drawings,
			path, deps.Options, deps.Settings)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, ref := range result.Stats.LinkedFiles {
			fmt.Fprintf(&sb, "linked: %s\n", ref.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- public_url ---

func publicURLTool() mcp.Tool {
	return mcp.NewTool("public_url",
		mcp.WithDescription("Derive the public URL a note would have once published. Requires base_url in the vault config."),
		mcp.WithString("path",
			mcp.Description("Vault-relative path of the note"),
			mcp.Required(),
		),
	)
}

func publicURLHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		url, ok := domain.PublicURL(path, deps.Settings)
		if !ok {
			return toolError(fmt.Errorf("no base_url configured for this vault"))
		}
		return mcp.NewToolResultText(url), nil
	}
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List files in a vault folder."),
		mcp.WithString("folder",
			mcp.Description("Vault-relative folder to list. Omit for the vault root."),
		),
	)
}

func listNotesHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		folder := req.GetString("folder", "")

		entries, err := deps.Storage.List(folder)
		if err != nil {
			return toolError(err)
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No files found."), nil
		}

		var sb strings.Builder
		for _, entry := range entries {
			sb.WriteString(entry)
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- sync_index ---

func syncIndexTool() mcp.Tool {
	return mcp.NewTool("sync_index",
		mcp.WithDescription("Refresh the vault's link index. Incremental by default, full rebuild on request."),
		mcp.WithBoolean("full",
			mcp.Description("Force a full rebuild instead of an incremental sync."),
		),
	)
}

func syncIndexHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		full := req.GetBool("full", false) || deps.Index.NeedsFullRebuild()

		var stats *domain.SyncStats
		var err error
		if full {
			stats, err = deps.Index.SyncFull()
		} else {
			stats, err = deps.Index.SyncIncremental()
		}
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"scanned %d files: +%d ~%d -%d nodes, %d links (%s)",
			stats.FilesScanned, stats.NodesAdded, stats.NodesUpdated,
			stats.NodesDeleted, stats.EdgesAdded, stats.Duration.Round(time.Millisecond))), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
