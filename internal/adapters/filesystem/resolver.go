package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"notepub/internal/domain"
)

// Resolver implements ports.LinkResolver by scanning the vault once at
// construction and answering lookups from in-memory maps. Resolution follows
// Obsidian semantics: an exact vault-relative path wins, otherwise the target
// is matched by basename and the shortest path is preferred.
type Resolver struct {
	vaultPath  string
	byPath     map[string]domain.NoteRef
	byBasename map[string][]domain.NoteRef // lowercased basename → candidates
	byFullName map[string][]domain.NoteRef // lowercased filename → candidates
}

// NewResolver scans vaultPath and builds the lookup tables. Hidden folders
// are skipped; scan errors on individual entries are ignored.
func NewResolver(vaultPath string) *Resolver {
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	r := &Resolver{
		vaultPath:  vaultPath,
		byPath:     make(map[string]domain.NoteRef),
		byBasename: make(map[string][]domain.NoteRef),
		byFullName: make(map[string][]domain.NoteRef),
	}
	r.scan()
	return r
}

func (r *Resolver) scan() {
	filepath.Walk(r.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(r.vaultPath, path)
		if err != nil {
			return nil
		}
		ref := domain.NoteRefFromPath(filepath.ToSlash(rel))
		r.byPath[ref.Path] = ref
		r.byBasename[strings.ToLower(ref.Basename())] = append(r.byBasename[strings.ToLower(ref.Basename())], ref)
		r.byFullName[strings.ToLower(ref.Name)] = append(r.byFullName[strings.ToLower(ref.Name)], ref)
		return nil
	})

	// Shortest path wins ties; lexicographic order breaks equal lengths so
	// resolution stays deterministic.
	for _, index := range []map[string][]domain.NoteRef{r.byBasename, r.byFullName} {
		for _, refs := range index {
			sort.Slice(refs, func(i, j int) bool {
				if len(refs[i].Path) != len(refs[j].Path) {
					return len(refs[i].Path) < len(refs[j].Path)
				}
				return refs[i].Path < refs[j].Path
			})
		}
	}
}

// Resolve maps a raw wikilink target to a vault file, or returns false.
func (r *Resolver) Resolve(raw, sourcePath string) (domain.NoteRef, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.NoteRef{}, false
	}

	// Exact vault-relative path, with and without an implied .md extension.
	if strings.Contains(raw, "/") {
		for _, candidate := range []string{raw, raw + ".md"} {
			if ref, ok := r.byPath[candidate]; ok {
				return ref, true
			}
		}
	}

	// Full filename given anywhere in the vault, e.g. "shot.png" or "note.md".
	if refs := r.byFullName[strings.ToLower(raw)]; len(refs) > 0 {
		return refs[0], true
	}

	// Bare basename, the common [[Note]] form.
	if refs := r.byBasename[strings.ToLower(raw)]; len(refs) > 0 {
		return refs[0], true
	}

	return domain.NoteRef{}, false
}
