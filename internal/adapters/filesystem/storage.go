package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage implements ports.Storage on top of an Obsidian vault directory.
// All exported methods take vault-relative, slash-separated paths.
type Storage struct {
	vaultPath string
}

// NewStorage creates a new filesystem storage rooted at vaultPath.
func NewStorage(vaultPath string) *Storage {
	// Expand ~ to home directory
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	return &Storage{vaultPath: vaultPath}
}

// VaultPath returns the absolute vault root.
func (s *Storage) VaultPath() string {
	return s.vaultPath
}

// safePath resolves a vault-relative path and validates it stays within the
// vault boundary.
func (s *Storage) safePath(relPath string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(s.vaultPath, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	vaultAbs, err := filepath.Abs(s.vaultPath)
	if err != nil {
		return "", fmt.Errorf("resolve vault path: %w", err)
	}
	if abs != vaultAbs && !strings.HasPrefix(abs, vaultAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes vault boundary: %s", relPath)
	}
	return abs, nil
}

// Read returns the text content of a vault file.
func (s *Storage) Read(path string) (string, error) {
	abs, err := s.safePath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadBinary returns the raw bytes of a vault file.
func (s *Storage) ReadBinary(path string) ([]byte, error) {
	abs, err := s.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Write creates or overwrites a vault file with text content.
func (s *Storage) Write(path, content string) error {
	return s.WriteBinary(path, []byte(content))
}

// WriteBinary creates or overwrites a vault file with raw bytes.
func (s *Storage) WriteBinary(path string, data []byte) error {
	abs, err := s.safePath(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or folder exists at the vault-relative path.
func (s *Storage) Exists(path string) bool {
	abs, err := s.safePath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// CreateFolder creates a folder. Re-creating an existing folder is a no-op.
func (s *Storage) CreateFolder(path string) error {
	abs, err := s.safePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", path, err)
	}
	return nil
}

// List returns the vault-relative paths of the entries directly inside a
// folder. Hidden entries are skipped.
func (s *Storage) List(folder string) ([]string, error) {
	abs, err := s.safePath(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	var out []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if folder == "" || folder == "." {
			out = append(out, entry.Name())
		} else {
			out = append(out, folder+"/"+entry.Name())
		}
	}
	return out, nil
}
