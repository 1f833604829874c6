package application

import (
	"fmt"
	"strings"

	"notepub/internal/domain"
)

// Sane bounds for the recursion depth setting.
const (
	MinDepth = 1
	MaxDepth = 20
)

// ValidateSettings checks the publish settings before any I/O happens.
func ValidateSettings(s domain.Settings) error {
	if strings.TrimSpace(s.TargetFolder) == "" {
		return &ValidationError{
			Field:   "targetFolder",
			Message: "target folder is required",
			Err:     ErrNoTargetFolder,
		}
	}
	return nil
}

// ValidateOptions checks the per-call publish options. The depth bound only
// matters when linked notes are included.
func ValidateOptions(o domain.PublishOptions) error {
	if o.IncludeLinked && (o.MaxDepth < MinDepth || o.MaxDepth > MaxDepth) {
		return &ValidationError{
			Field:   "maxDepth",
			Message: fmt.Sprintf("max depth must be between %d and %d, got %d", MinDepth, MaxDepth, o.MaxDepth),
			Err:     ErrDepthOutOfRange,
		}
	}
	return nil
}

// ValidateRoot checks that the publish root is a markdown note.
func ValidateRoot(ref domain.NoteRef) error {
	if !ref.IsNote() {
		return &ValidationError{
			Field:   "root",
			Message: fmt.Sprintf("expected a markdown note, got: %s", ref.Path),
			Err:     ErrNotANote,
		}
	}
	return nil
}
