package domain

import "time"

// IndexNode represents a cached vault file entry used for link resolution.
type IndexNode struct {
	Path     string // vault-relative path (primary key)
	Name     string // filename including extension
	Basename string // lowercased filename without extension, the lookup key
	Mtime    int64  // unix timestamp for incremental sync
}

// Edge represents an outgoing wikilink recorded during index sync.
type Edge struct {
	SourcePath string // file containing the link
	TargetText string // raw [[link]] target text
}

// SyncStats holds statistics from an index sync operation.
type SyncStats struct {
	NodesAdded   int
	NodesUpdated int
	NodesDeleted int
	EdgesAdded   int
	FilesScanned int
	Duration     time.Duration
}
