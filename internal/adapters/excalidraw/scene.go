package excalidraw

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	lzstring "github.com/daku10/go-lz-string"
)

// Element is one graphical element of an Excalidraw scene. Only the fields
// the rasterizer needs are decoded.
type Element struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`
	X               float64     `json:"x"`
	Y               float64     `json:"y"`
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Angle           float64     `json:"angle"`
	StrokeColor     string      `json:"strokeColor"`
	BackgroundColor string      `json:"backgroundColor"`
	StrokeWidth     float64     `json:"strokeWidth"`
	Points          [][]float64 `json:"points"`
	Text            string      `json:"text"`
	FontSize        float64     `json:"fontSize"`
	FileID          string      `json:"fileId"`
	IsDeleted       bool        `json:"isDeleted"`
}

// Scene is the decoded drawing payload.
type Scene struct {
	Elements []Element `json:"elements"`
}

// Visible returns the scene's elements with deleted ones filtered out.
func (s *Scene) Visible() []Element {
	out := make([]Element, 0, len(s.Elements))
	for _, el := range s.Elements {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// EmbeddedFile is a binary attachment of a drawing, inlined as a data URL and
// keyed by the id declared in the Embedded Files section.
type EmbeddedFile struct {
	ID       string
	Path     string
	MimeType string
	DataURL  string
}

var (
	// Primary extraction pattern: the compressed payload block.
	compressedBlockPattern = regexp.MustCompile("(?s)```compressed-json\\s*\\n(.*?)\\n```")
	// Secondary, looser pattern: an uncompressed json block.
	jsonBlockPattern = regexp.MustCompile("(?s)```json\\s*\\n(.*?)\\n```")
	// Embedded Files entries: "id: [[target]]".
	embeddedFilePattern = regexp.MustCompile(`(?m)^([0-9a-zA-Z]+)\s*:\s*\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)
)

// ExtractSceneJSON locates the drawing payload in a document body and returns
// it decompressed. When neither fenced block matches, the remainder after the
// Drawing heading is treated as already-decompressed JSON.
func ExtractSceneJSON(content string) (string, error) {
	if m := compressedBlockPattern.FindStringSubmatch(content); m != nil {
		compact := strings.Join(strings.Fields(m[1]), "")
		decompressed, err := lzstring.DecompressFromBase64(compact)
		if err != nil {
			return "", fmt.Errorf("decompress payload: %w", err)
		}
		return decompressed, nil
	}

	if m := jsonBlockPattern.FindStringSubmatch(content); m != nil {
		return m[1], nil
	}

	if loc := drawingHeadingPattern.FindStringIndex(content); loc != nil {
		rest := strings.TrimSpace(content[loc[1]:])
		if rest != "" {
			return rest, nil
		}
	}

	return "", fmt.Errorf("no drawing payload found")
}

// ParseScene decodes the scene JSON.
func ParseScene(payload string) (*Scene, error) {
	var scene Scene
	if err := json.Unmarshal([]byte(payload), &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &scene, nil
}

// ParseEmbeddedFiles extracts the id → link-target entries of the document's
// Embedded Files section. Later duplicates of an id are ignored.
func ParseEmbeddedFiles(content string) map[string]string {
	matches := embeddedFilePattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make(map[string]string, len(matches))
	for _, m := range matches {
		id := m[1]
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = strings.TrimSpace(m[2])
	}
	return out
}
