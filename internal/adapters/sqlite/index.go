package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"notepub/internal/domain"
	"notepub/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.VaultIndex using SQLite. It caches every vault file
// and its outgoing wikilinks so link resolution stays O(log n) on big vaults.
type Index struct {
	db        *sql.DB
	vaultPath string
	dbPath    string
}

// Ensure Index implements VaultIndex
var _ ports.VaultIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given vault path
func (idx *Index) Open(vaultPath string) error {
	// Expand ~ in path
	if len(vaultPath) > 0 && vaultPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	idx.vaultPath = vaultPath
	idx.dbPath = databasePath(vaultPath)

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL mode for better concurrency between CLI and MCP server instances
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS notes (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			basename TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS links (
			source_path TEXT NOT NULL,
			target_text TEXT NOT NULL,
			PRIMARY KEY (source_path, target_text)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_basename ON notes(basename);
		CREATE INDEX IF NOT EXISTS idx_links_source ON links(source_path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt
func (idx *Index) NeedsFullRebuild() bool {
	var version, vaultHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'vault_path_hash'").Scan(&vaultHash)

	return version != schemaVersion || vaultHash != hashVaultPath(idx.vaultPath)
}

// GetNode returns the cached entry for a vault-relative path.
func (idx *Index) GetNode(path string) (*domain.IndexNode, error) {
	var node domain.IndexNode
	err := idx.db.QueryRow(`
		SELECT path, name, basename, mtime FROM notes WHERE path = ?
	`, path).Scan(&node.Path, &node.Name, &node.Basename, &node.Mtime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query node: %w", err)
	}
	return &node, nil
}

// LookupBasename returns every file whose basename matches, shortest path
// first so callers can apply Obsidian's shortest-path preference directly.
func (idx *Index) LookupBasename(basename string) ([]domain.IndexNode, error) {
	rows, err := idx.db.Query(`
		SELECT path, name, basename, mtime FROM notes
		WHERE basename = ?
		ORDER BY length(path), path
	`, basename)
	if err != nil {
		return nil, fmt.Errorf("failed to query basename: %w", err)
	}
	defer rows.Close()

	var nodes []domain.IndexNode
	for rows.Next() {
		var node domain.IndexNode
		if err := rows.Scan(&node.Path, &node.Name, &node.Basename, &node.Mtime); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

// FindLinksFromFile returns the outgoing wikilinks recorded for a source file.
func (idx *Index) FindLinksFromFile(sourcePath string) ([]domain.Edge, error) {
	rows, err := idx.db.Query(`
		SELECT source_path, target_text FROM links WHERE source_path = ?
	`, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var edges []domain.Edge
	for rows.Next() {
		var edge domain.Edge
		if err := rows.Scan(&edge.SourcePath, &edge.TargetText); err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func (idx *Index) updateMeta() error {
	entries := map[string]string{
		"schema_version":  schemaVersion,
		"vault_path_hash": hashVaultPath(idx.vaultPath),
	}
	for key, value := range entries {
		if _, err := idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return err
		}
	}
	return nil
}

// databasePath puts the index under the vault's hidden config folder so it
// syncs (or gets ignored) with the rest of the vault's dotfiles.
func databasePath(vaultPath string) string {
	return filepath.Join(vaultPath, ".notepub", "index.db")
}

// DatabaseExists reports whether an index has been built for the vault.
func DatabaseExists(vaultPath string) bool {
	_, err := os.Stat(databasePath(vaultPath))
	return err == nil
}

func hashVaultPath(vaultPath string) string {
	sum := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(sum[:])
}
