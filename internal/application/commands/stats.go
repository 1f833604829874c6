package commands

import (
	"context"
	"fmt"

	"notepub/internal/application"
	"notepub/internal/domain"
	"notepub/internal/ports"
)

// StatsResult contains the result of a stats command.
type StatsResult struct {
	Stats   *domain.PublishStats
	Message string
}

// StatsCommand estimates what a publish call would do, without writing
// anything: total file count, the linked set, and the summed text size.
type StatsCommand struct {
	storage  ports.Storage
	resolver ports.LinkResolver
	drawings ports.DrawingProcessor

	RootPath string
	Options  domain.PublishOptions
	Settings domain.Settings
}

// NewStatsCommand creates a new StatsCommand.
func NewStatsCommand(storage ports.Storage, resolver ports.LinkResolver, drawings ports.DrawingProcessor,
	rootPath string, options domain.PublishOptions, settings domain.Settings) *StatsCommand {
	return &StatsCommand{
		storage:  storage,
		resolver: resolver,
		drawings: drawings,
		RootPath: rootPath,
		Options:  options,
		Settings: settings,
	}
}

// Validate checks the command inputs. The target folder is not required for a
// dry run, only the root and the options are.
func (c *StatsCommand) Validate() error {
	if c.RootPath == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root note path is required",
		}
	}
	if err := application.ValidateOptions(c.Options); err != nil {
		return err
	}

	root := domain.NoteRefFromPath(c.RootPath)
	if err := application.ValidateRoot(root); err != nil {
		return err
	}
	if !c.storage.Exists(root.Path) {
		return &application.ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("note does not exist: %s", root.Path),
			Err:     application.ErrNotFound,
		}
	}
	return nil
}

// Execute runs the stats command. Read failures during size estimation are
// swallowed; they are not errors of the dry run.
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := domain.NoteRefFromPath(c.RootPath)
	walker := application.NewWalker(c.storage, c.resolver, c.drawings, c.Settings)
	reachable := walker.Collect(root, c.Options)

	stats := &domain.PublishStats{TotalFiles: len(reachable)}
	if len(reachable) > 1 {
		stats.LinkedFiles = reachable[1:]
	}
	for _, ref := range reachable {
		content, err := c.storage.Read(ref.Path)
		if err != nil {
			continue
		}
		stats.EstimatedSize += int64(len(content))
	}

	return &StatsResult{
		Stats: stats,
		Message: fmt.Sprintf("%d files, %d linked, ~%d bytes",
			stats.TotalFiles, len(stats.LinkedFiles), stats.EstimatedSize),
	}, nil
}
