package ports

// ObsidianOpener opens a vault file in Obsidian via the obsidian:// URI scheme.
// The path is vault-relative.
type ObsidianOpener interface {
	OpenFile(path string) error
}
