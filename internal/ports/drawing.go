package ports

import "notepub/internal/domain"

// DrawingProcessor classifies drawing-format documents and rasterizes them.
// Render runs the full pipeline on a drawing document's content: payload
// extraction, decompression, element parsing, embedded-file resolution and
// rasterization. It returns the encoded image bytes.
type DrawingProcessor interface {
	IsDrawing(ref domain.NoteRef, content string) bool
	Render(content, sourcePath string) ([]byte, error)
}
