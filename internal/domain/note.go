package domain

import (
	"path"
	"strings"
)

// NoteRef identifies a file in the vault. Paths are vault-relative and
// slash-separated; identity is by Path.
type NoteRef struct {
	Path      string // e.g. "Projects/Roadmap.md"
	Name      string // filename including extension, e.g. "Roadmap.md"
	Extension string // lowercased, without the dot, e.g. "md"
}

// NoteRefFromPath builds a NoteRef from a vault-relative path.
func NoteRefFromPath(p string) NoteRef {
	p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
	name := path.Base(p)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return NoteRef{
		Path:      p,
		Name:      name,
		Extension: strings.ToLower(ext),
	}
}

// IsNote reports whether the file is a markdown note.
func (n NoteRef) IsNote() bool {
	return n.Extension == "md"
}

// Folder returns the vault-relative parent folder, or "" for vault root.
func (n NoteRef) Folder() string {
	dir := path.Dir(n.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// Basename returns the filename without its final extension.
func (n NoteRef) Basename() string {
	return strings.TrimSuffix(n.Name, path.Ext(n.Name))
}

// PublishOptions controls the graph walk for one publish call.
type PublishOptions struct {
	IncludeLinked   bool
	MaxDepth        int
	ExcludePatterns []string
}

// PublishResult aggregates the outcome of one publish call.
// PublishedFiles and SkippedFiles hold vault-relative source paths in
// traversal order; Errors holds formatted per-node failure messages.
type PublishResult struct {
	PublishedFiles []string
	SkippedFiles   []string
	Errors         []string
}

// PublishStats is the dry-run variant: what would be published, and how big.
type PublishStats struct {
	TotalFiles    int
	LinkedFiles   []NoteRef
	EstimatedSize int64
}
