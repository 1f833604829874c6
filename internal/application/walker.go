package application

import (
	"fmt"

	"notepub/internal/domain"
	"notepub/internal/ports"
)

// Walker performs the bounded-depth, cycle-safe traversal over the wikilink
// graph rooted at a starting note, materializing every visited note into the
// target folder. The walk is strictly sequential depth-first; materialization
// order matches traversal order.
type Walker struct {
	storage  ports.Storage
	resolver ports.LinkResolver
	drawings ports.DrawingProcessor
	rewriter *Rewriter
	settings domain.Settings
}

// NewWalker wires a walker and its content rewrite pass.
func NewWalker(storage ports.Storage, resolver ports.LinkResolver, drawings ports.DrawingProcessor, settings domain.Settings) *Walker {
	return &Walker{
		storage:  storage,
		resolver: resolver,
		drawings: drawings,
		rewriter: NewRewriter(storage, resolver, drawings, settings.TargetFolder),
		settings: settings,
	}
}

// traversal is the shared mutable state of one top-level publish call.
// visited holds paths whose subtree is done; processing holds paths currently
// on the recursion stack, so cycles short-circuit before visited is updated.
type traversal struct {
	opts       domain.PublishOptions
	visited    map[string]struct{}
	processing map[string]struct{}
	skipped    map[string]struct{}
	result     *domain.PublishResult
}

// Walk publishes root and, when IncludeLinked is set, every note reachable
// within MaxDepth. It never returns an error: per-node failures are folded
// into the result and the walk continues.
func (w *Walker) Walk(root domain.NoteRef, opts domain.PublishOptions) *domain.PublishResult {
	t := &traversal{
		opts:       opts,
		visited:    make(map[string]struct{}),
		processing: make(map[string]struct{}),
		skipped:    make(map[string]struct{}),
		result:     &domain.PublishResult{},
	}

	if !opts.IncludeLinked {
		w.publishOne(t, root)
		return t.result
	}

	w.walk(t, root, 0)
	return t.result
}

// walk visits one node. Root is depth 0; a node at depth == MaxDepth is still
// materialized, only depth > MaxDepth is skipped.
func (w *Walker) walk(t *traversal, ref domain.NoteRef, depth int) {
	if _, ok := t.visited[ref.Path]; ok {
		return
	}
	if _, ok := t.processing[ref.Path]; ok {
		return
	}
	if depth > t.opts.MaxDepth {
		// A too-deep node is reachable through every parent at the depth
		// boundary; record it once.
		if _, ok := t.skipped[ref.Path]; !ok {
			t.skipped[ref.Path] = struct{}{}
			t.result.SkippedFiles = append(t.result.SkippedFiles, ref.Path)
		}
		return
	}

	t.processing[ref.Path] = struct{}{}

	content := w.publishOne(t, ref)
	for _, linked := range w.outgoing(ref, content, t.opts.ExcludePatterns) {
		w.walk(t, linked, depth+1)
	}

	delete(t.processing, ref.Path)
	t.visited[ref.Path] = struct{}{}
}

// publishOne materializes a single note and records the outcome. It returns
// the note's original content for link enumeration; "" when the read failed.
func (w *Walker) publishOne(t *traversal, ref domain.NoteRef) string {
	content, err := w.materialize(ref)
	if err != nil {
		t.result.Errors = append(t.result.Errors, (&NodeError{Path: ref.Path, Err: err}).Error())
		return ""
	}
	t.result.PublishedFiles = append(t.result.PublishedFiles, ref.Path)
	return content
}

// materialize copies one note into the target folder: read, rewrite drawing
// links, create missing ancestor folders component by component, then write.
// An existing destination file is overwritten in place.
func (w *Walker) materialize(ref domain.NoteRef) (string, error) {
	content, err := w.storage.Read(ref.Path)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}

	rewritten := w.rewriter.Rewrite(content, ref)

	dest := domain.TargetPath(ref, w.settings)
	for _, folder := range domain.FolderChain(dest) {
		if w.storage.Exists(folder) {
			continue
		}
		if err := w.storage.CreateFolder(folder); err != nil {
			return "", fmt.Errorf("create folder %s: %w", folder, err)
		}
	}

	if err := w.storage.Write(dest, rewritten); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	return content, nil
}

// outgoing enumerates the followable links of a note: resolvable markdown
// targets that are neither excluded by pattern nor drawing-format documents.
// Binary attachments and resolution misses are silently dropped.
func (w *Walker) outgoing(ref domain.NoteRef, content string, patterns []string) []domain.NoteRef {
	var out []domain.NoteRef
	for _, link := range domain.ExtractLinks(content) {
		if domain.IsExcluded(link.Raw, patterns) {
			continue
		}
		target, ok := w.resolver.Resolve(link.TargetID(), ref.Path)
		if !ok {
			continue
		}
		if !target.IsNote() {
			continue
		}
		if w.isDrawing(target) {
			continue
		}
		out = append(out, target)
	}
	return out
}

func (w *Walker) isDrawing(ref domain.NoteRef) bool {
	content, _ := w.storage.Read(ref.Path)
	return w.drawings.IsDrawing(ref, content)
}

// Collect performs the same traversal without materializing anything. It
// returns root plus every reachable note within depth, in traversal order.
func (w *Walker) Collect(root domain.NoteRef, opts domain.PublishOptions) []domain.NoteRef {
	visited := make(map[string]struct{})
	var order []domain.NoteRef

	var visit func(ref domain.NoteRef, depth int)
	visit = func(ref domain.NoteRef, depth int) {
		if _, ok := visited[ref.Path]; ok {
			return
		}
		if depth > opts.MaxDepth {
			return
		}
		visited[ref.Path] = struct{}{}
		order = append(order, ref)

		if !opts.IncludeLinked {
			return
		}
		content, err := w.storage.Read(ref.Path)
		if err != nil {
			return
		}
		for _, linked := range w.outgoing(ref, content, opts.ExcludePatterns) {
			visit(linked, depth+1)
		}
	}

	visit(root, 0)
	return order
}
