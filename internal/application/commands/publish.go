package commands

import (
	"context"
	"fmt"

	"notepub/internal/application"
	"notepub/internal/domain"
	"notepub/internal/ports"
)

// PublishReport contains the result of a publish command.
type PublishReport struct {
	Files   *domain.PublishResult
	URL     string // public URL of the root note, "" when no base URL is set
	Message string
}

// PublishCommand copies a note and its linked neighborhood into the target
// folder and derives the root's public URL.
type PublishCommand struct {
	storage  ports.Storage
	resolver ports.LinkResolver
	drawings ports.DrawingProcessor

	RootPath string
	Options  domain.PublishOptions
	Settings domain.Settings
}

// NewPublishCommand creates a new PublishCommand.
func NewPublishCommand(storage ports.Storage, resolver ports.LinkResolver, drawings ports.DrawingProcessor,
	rootPath string, options domain.PublishOptions, settings domain.Settings) *PublishCommand {
	return &PublishCommand{
		storage:  storage,
		resolver: resolver,
		drawings: drawings,
		RootPath: rootPath,
		Options:  options,
		Settings: settings,
	}
}

// Validate runs every pre-flight check. A validation failure means nothing
// has been written yet.
func (c *PublishCommand) Validate() error {
	if c.RootPath == "" {
		return &application.ValidationError{
			Field:   "root",
			Message: "root note path is required",
		}
	}
	if err := application.ValidateSettings(c.Settings); err != nil {
		return err
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

// Execute runs the publish command.
func (c *PublishCommand) Execute(ctx context.Context) (*PublishReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := domain.NoteRefFromPath(c.RootPath)
	walker := application.NewWalker(c.storage, c.resolver, c.drawings, c.Settings)
	result := walker.Walk(root, c.Options)

	report := &PublishReport{Files: result}
	if url, ok := domain.PublicURL(root.Path, c.Settings); ok {
		report.URL = url
	}

	report.Message = fmt.Sprintf("Published %d files to %s (%d skipped, %d errors)",
		len(result.PublishedFiles), c.Settings.TargetFolder,
		len(result.SkippedFiles), len(result.Errors))
	return report, nil
}
