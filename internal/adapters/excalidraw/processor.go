package excalidraw

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"notepub/internal/domain"
	"notepub/internal/ports"
)

// RasterFunc renders parsed scene elements, with embedded files available, to
// encoded image bytes. The default is the gg-based Rasterize; tests and
// callers with their own export pipeline can inject a different one.
type RasterFunc func(elements []Element, files map[string]EmbeddedFile) ([]byte, error)

// Processor implements ports.DrawingProcessor for the Excalidraw markdown
// format.
type Processor struct {
	storage   ports.Storage
	resolver  ports.LinkResolver
	rasterize RasterFunc
}

// NewProcessor creates a drawing processor. A nil rasterize falls back to the
// built-in renderer.
func NewProcessor(storage ports.Storage, resolver ports.LinkResolver, rasterize RasterFunc) *Processor {
	if rasterize == nil {
		rasterize = Rasterize
	}
	return &Processor{
		storage:   storage,
		resolver:  resolver,
		rasterize: rasterize,
	}
}

// IsDrawing reports whether the file is a drawing-format document.
func (p *Processor) IsDrawing(ref domain.NoteRef, content string) bool {
	return IsDrawingContent(ref.Name, content)
}

// Render runs the full drawing pipeline: payload extraction, decompression,
// scene parsing, embedded-file resolution and rasterization.
func (p *Processor) Render(content, sourcePath string) ([]byte, error) {
	payload, err := ExtractSceneJSON(content)
	if err != nil {
		return nil, err
	}

	scene, err := ParseScene(payload)
	if err != nil {
		return nil, err
	}

	files := p.resolveEmbeddedFiles(content, sourcePath)
	return p.rasterize(scene.Visible(), files)
}

// resolveEmbeddedFiles reads each attachment referenced in the Embedded Files
// section and inlines it as a base64 data URL keyed by its declared id.
// Attachments that cannot be resolved or read are dropped with a log entry.
func (p *Processor) resolveEmbeddedFiles(content, sourcePath string) map[string]EmbeddedFile {
	targets := ParseEmbeddedFiles(content)
	if len(targets) == 0 {
		return nil
	}

	out := make(map[string]EmbeddedFile, len(targets))
	for id, target := range targets {
		ref, ok := p.resolver.Resolve(target, sourcePath)
		if !ok {
			slog.Warn("embedded file does not resolve", "drawing", sourcePath, "target", target)
			continue
		}
		data, err := p.storage.ReadBinary(ref.Path)
		if err != nil {
			slog.Warn("embedded file unreadable", "drawing", sourcePath, "path", ref.Path, "error", err)
			continue
		}

		mimeType := detectMime(ref.Name, data)
		out[id] = EmbeddedFile{
			ID:       id,
			Path:     ref.Path,
			MimeType: mimeType,
			DataURL:  fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		}
	}
	return out
}

// detectMime prefers the filename extension and falls back to content
// sniffing for extensionless attachments.
func detectMime(name string, data []byte) string {
	if ext := path.Ext(name); ext != "" {
		if byExt := mime.TypeByExtension(strings.ToLower(ext)); byExt != "" {
			return byExt
		}
	}
	return http.DetectContentType(data)
}
