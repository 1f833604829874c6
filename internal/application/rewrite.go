package application

import (
	"fmt"
	"log/slog"
	"strings"

	"notepub/internal/domain"
	"notepub/internal/ports"
)

// ImageFolder is the flat subfolder of the target root where rasterized
// drawings are written. It is never nested further.
const ImageFolder = "_Image"

// Rewriter is the content rewrite pass: it replaces wikilinks to
// drawing-format documents with image-embed links to rasterized copies.
// Failures are per-link and best-effort; a link that cannot be processed is
// left exactly as it was.
type Rewriter struct {
	storage      ports.Storage
	resolver     ports.LinkResolver
	drawings     ports.DrawingProcessor
	targetFolder string
}

// NewRewriter creates a rewrite pass writing images under targetFolder.
func NewRewriter(storage ports.Storage, resolver ports.LinkResolver, drawings ports.DrawingProcessor, targetFolder string) *Rewriter {
	return &Rewriter{
		storage:      storage,
		resolver:     resolver,
		drawings:     drawings,
		targetFolder: targetFolder,
	}
}

// Rewrite returns content with every drawing link replaced by an image embed.
// Non-drawing links, unresolvable links, and links whose rendering fails are
// left untouched.
func (r *Rewriter) Rewrite(content string, source domain.NoteRef) string {
	for _, link := range domain.ExtractLinks(content) {
		target, ok := r.resolver.Resolve(link.TargetID(), source.Path)
		if !ok {
			continue
		}

		targetContent, err := r.storage.Read(target.Path)
		if err != nil {
			slog.Warn("skipping link, cannot read target", "source", source.Path, "target", target.Path, "error", err)
			continue
		}

		if !r.drawings.IsDrawing(target, targetContent) {
			continue
		}

		image, err := r.drawings.Render(targetContent, target.Path)
		if err != nil {
			slog.Warn("drawing render failed, leaving link unmodified", "target", target.Path, "error", err)
			continue
		}

		imagePath, err := r.persistImage(target, image)
		if err != nil {
			slog.Warn("could not persist drawing image", "target", target.Path, "error", err)
			continue
		}

		content = strings.Replace(content, link.Token, domain.EmbedToken(imagePath, link.Display), 1)
	}
	return content
}

// persistImage writes image bytes under <targetFolder>/_Image, probing
// successive _1, _2, ... suffixes until an unused path is found.
func (r *Rewriter) persistImage(target domain.NoteRef, image []byte) (string, error) {
	folder := r.targetFolder + "/" + ImageFolder
	for _, f := range []string{r.targetFolder, folder} {
		if r.storage.Exists(f) {
			continue
		}
		if err := r.storage.CreateFolder(f); err != nil {
			return "", fmt.Errorf("create folder %s: %w", f, err)
		}
	}

	base := drawingBasename(target.Name)
	path := folder + "/" + base + ".png"
	for i := 1; r.storage.Exists(path); i++ {
		path = fmt.Sprintf("%s/%s_%d.png", folder, base, i)
	}

	if err := r.storage.WriteBinary(path, image); err != nil {
		return "", fmt.Errorf("write image %s: %w", path, err)
	}
	return path, nil
}

// drawingBasename strips the drawing-format extensions from a filename, so
// "flow.excalidraw.md" and "flow.excalidraw" both yield "flow".
func drawingBasename(name string) string {
	name = strings.TrimSuffix(name, ".md")
	name = strings.TrimSuffix(name, ".excalidraw")
	return name
}
