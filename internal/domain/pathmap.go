package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// Settings is the user-configured publish surface consumed by the path mapper
// and the walker. It is owned by the config layer; nothing here mutates it.
type Settings struct {
	TargetFolder      string // vault-relative destination root, e.g. "Published"
	PreserveStructure bool   // keep source folder chain under the target root
	AddPrefix         bool
	Prefix            string // prepended to the filename when AddPrefix is set
	BaseURL           string // "" disables public URL generation
}

// TargetPath computes the deterministic destination path for a source note.
// Pure function: same inputs, same output.
func TargetPath(doc NoteRef, s Settings) string {
	name := doc.Name
	if s.AddPrefix {
		name = s.Prefix + name
	}

	if s.PreserveStructure {
		if folder := doc.Folder(); folder != "" {
			return s.TargetFolder + "/" + folder + "/" + name
		}
	}
	return s.TargetFolder + "/" + name
}

// FolderChain returns every ancestor folder of a destination file path,
// outermost first, so callers can create them component by component.
func FolderChain(dest string) []string {
	parts := strings.Split(dest, "/")
	if len(parts) < 2 {
		return nil
	}

	chain := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		chain = append(chain, strings.Join(parts[:i], "/"))
	}
	return chain
}

var (
	ampersandRun  = regexp.MustCompile(`\s*&\s*`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// PublicURL derives the shareable URL for the published root note from its
// original source path. The target folder never appears in the URL. Returns
// false when no base URL is configured.
func PublicURL(sourcePath string, s Settings) (string, bool) {
	if s.BaseURL == "" {
		return "", false
	}

	trimmed := strings.TrimSuffix(sourcePath, ".md")
	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		seg = ampersandRun.ReplaceAllString(seg, "--and--")
		seg = whitespaceRun.ReplaceAllString(seg, "-")
		segments[i] = url.PathEscape(seg)
	}

	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.Join(segments, "/"), true
}
