package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"notepub/internal/domain"
)

// Indexable file extensions. Non-markdown files still get a notes row so
// [[image.png]] style links resolve, but only markdown is parsed for links.
func indexable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".excalidraw", ".pdf":
		return true
	}
	return false
}

func isMarkdown(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// SyncFull performs a complete rebuild of the index
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Clear existing data
	if _, err := idx.db.Exec(`DELETE FROM notes`); err != nil {
		return nil, err
	}
	if _, err := idx.db.Exec(`DELETE FROM links`); err != nil {
		return nil, err
	}

	err := filepath.Walk(idx.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		// Skip hidden directories
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != idx.vaultPath {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(idx.vaultPath, path)
		relPath = filepath.ToSlash(relPath)
		stats.FilesScanned++

		if !indexable(info.Name()) || strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		node := nodeForFile(relPath, info)
		if err := idx.insertNode(node); err != nil {
			return nil // Continue on error
		}
		stats.NodesAdded++

		if isMarkdown(info.Name()) {
			for _, edge := range parseLinksInFile(path, relPath) {
				if err := idx.insertEdge(&edge); err == nil {
					stats.EdgesAdded++
				}
			}
		}

		return nil
	})

	if err != nil {
		return stats, err
	}

	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files that changed since last sync
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	var lastSyncUnix int64
	idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&lastSyncUnix)

	// Track existing paths to detect deletions
	existingPaths := make(map[string]bool)
	rows, err := idx.db.Query(`SELECT path FROM notes`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		rows.Scan(&path)
		existingPaths[path] = true
	}
	rows.Close()

	seenPaths := make(map[string]bool)

	err = filepath.Walk(idx.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != idx.vaultPath {
			return filepath.SkipDir
		}
		if info.IsDir() {
			return nil
		}

		relPath, _ := filepath.Rel(idx.vaultPath, path)
		relPath = filepath.ToSlash(relPath)
		stats.FilesScanned++

		if !indexable(info.Name()) || strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		seenPaths[relPath] = true

		mtime := info.ModTime().Unix()
		if mtime <= lastSyncUnix && existingPaths[relPath] {
			return nil
		}

		node := nodeForFile(relPath, info)
		if existingPaths[relPath] {
			idx.updateNode(node)
			stats.NodesUpdated++
			idx.db.Exec(`DELETE FROM links WHERE source_path = ?`, relPath)
		} else {
			idx.insertNode(node)
			stats.NodesAdded++
		}

		if isMarkdown(info.Name()) {
			for _, edge := range parseLinksInFile(path, relPath) {
				if err := idx.insertEdge(&edge); err == nil {
					stats.EdgesAdded++
				}
			}
		}

		return nil
	})

	if err != nil {
		return stats, err
	}

	// Delete entries for files that no longer exist
	for path := range existingPaths {
		if !seenPaths[path] {
			idx.db.Exec(`DELETE FROM notes WHERE path = ?`, path)
			idx.db.Exec(`DELETE FROM links WHERE source_path = ?`, path)
			stats.NodesDeleted++
		}
	}

	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	return stats, nil
}

func nodeForFile(relPath string, info os.FileInfo) *domain.IndexNode {
	name := info.Name()
	basename := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return &domain.IndexNode{
		Path:     relPath,
		Name:     name,
		Basename: basename,
		Mtime:    info.ModTime().Unix(),
	}
}

// insertNode inserts a node into the database
func (idx *Index) insertNode(node *domain.IndexNode) error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO notes (path, name, basename, mtime)
		VALUES (?, ?, ?, ?)
	`, node.Path, node.Name, node.Basename, node.Mtime)
	return err
}

// updateNode updates an existing node
func (idx *Index) updateNode(node *domain.IndexNode) error {
	_, err := idx.db.Exec(`
		UPDATE notes SET name = ?, basename = ?, mtime = ?
		WHERE path = ?
	`, node.Name, node.Basename, node.Mtime, node.Path)
	return err
}

// insertEdge inserts an edge into the database
func (idx *Index) insertEdge(edge *domain.Edge) error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO links (source_path, target_text)
		VALUES (?, ?)
	`, edge.SourcePath, edge.TargetText)
	return err
}

// parseLinksInFile extracts all wikilink targets from a markdown file
func parseLinksInFile(fullPath, relPath string) []domain.Edge {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil
	}

	var edges []domain.Edge
	for _, link := range domain.ExtractLinks(string(content)) {
		edges = append(edges, domain.Edge{
			SourcePath: relPath,
			TargetText: link.TargetID(),
		})
	}
	return edges
}
