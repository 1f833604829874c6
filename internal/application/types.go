package application

import "notepub/internal/domain"

// Re-export domain types for use by adapters
type (
	NoteRef        = domain.NoteRef
	PublishOptions = domain.PublishOptions
	PublishResult  = domain.PublishResult
	PublishStats   = domain.PublishStats
	Settings       = domain.Settings
)

// NoteRefFromPath builds a NoteRef from a vault-relative path.
func NoteRefFromPath(p string) NoteRef {
	return domain.NoteRefFromPath(p)
}
