package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener implements ports.ObsidianOpener
type Opener struct {
	vaultName string
}

// NewOpener creates a new Obsidian opener for the given vault path. Obsidian
// identifies vaults by their folder name, not their full path.
func NewOpener(vaultPath string) *Opener {
	return &Opener{vaultName: filepath.Base(vaultPath)}
}

// OpenFile opens a vault-relative file in Obsidian via the obsidian:// URI
// scheme.
func (o *Opener) OpenFile(relPath string) error {
	uri, err := o.BuildURI(relPath)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// BuildURI constructs the obsidian:// URI for a vault-relative path
func (o *Opener) BuildURI(relPath string) (string, error) {
	relPath = path.Clean(filepath.ToSlash(relPath))
	if relPath == "." || strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("invalid vault path: %s", relPath)
	}

	uri := fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		url.QueryEscape(o.vaultName),
		url.QueryEscape(relPath),
	)

	return uri, nil
}

func (o *Opener) openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
