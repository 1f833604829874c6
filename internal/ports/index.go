package ports

import "notepub/internal/domain"

// VaultIndex provides cached access to vault files and their outgoing links.
// Lookup operations should be O(log n) via database indexes.
type VaultIndex interface {
	// Lifecycle
	Open(vaultPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Queries
	GetNode(path string) (*domain.IndexNode, error)
	LookupBasename(basename string) ([]domain.IndexNode, error)
	FindLinksFromFile(sourcePath string) ([]domain.Edge, error)
}
