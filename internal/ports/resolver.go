package ports

import "notepub/internal/domain"

// LinkResolver resolves a raw wikilink target to a concrete vault file, given
// the path of the note containing the link. Returns false when the link does
// not resolve to anything.
type LinkResolver interface {
	Resolve(raw, sourcePath string) (domain.NoteRef, bool)
}
