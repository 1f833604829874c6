package sqlite

import (
	"path/filepath"
	"strings"

	"notepub/internal/domain"
)

// IndexResolver implements ports.LinkResolver backed by the SQLite index
// instead of a full vault scan. Resolution semantics mirror the filesystem
// resolver: exact path, then full filename, then shortest-path basename.
type IndexResolver struct {
	index *Index
}

// NewIndexResolver wraps an opened index.
func NewIndexResolver(index *Index) *IndexResolver {
	return &IndexResolver{index: index}
}

// Resolve maps a raw wikilink target to a vault file, or returns false.
func (r *IndexResolver) Resolve(raw, sourcePath string) (domain.NoteRef, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.NoteRef{}, false
	}

	if strings.Contains(raw, "/") {
		for _, candidate := range []string{raw, raw + ".md"} {
			node, err := r.index.GetNode(candidate)
			if err == nil && node != nil {
				return domain.NoteRefFromPath(node.Path), true
			}
		}
	}

	// The basename column stores the lowercased filename without extension,
	// so a full filename lookup strips the extension first and then filters
	// candidates by exact name.
	key := strings.ToLower(raw)
	if ext := filepath.Ext(raw); ext != "" {
		base := strings.TrimSuffix(key, strings.ToLower(ext))
		if nodes, err := r.index.LookupBasename(base); err == nil {
			for _, node := range nodes {
				if strings.EqualFold(node.Name, raw) {
					return domain.NoteRefFromPath(node.Path), true
				}
			}
		}
	}

	if nodes, err := r.index.LookupBasename(key); err == nil && len(nodes) > 0 {
		return domain.NoteRefFromPath(nodes[0].Path), true
	}

	return domain.NoteRef{}, false
}
