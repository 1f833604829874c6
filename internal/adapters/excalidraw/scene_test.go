package excalidraw

import (
	"strings"
	"testing"

	lzstring "github.com/daku10/go-lz-string"
)

const sceneJSON = `{"elements":[{"id":"a","type":"rectangle","x":0,"y":0,"width":100,"height":50},{"id":"b","type":"text","x":10,"y":10,"text":"hi","isDeleted":true}]}`

func TestExtractSceneJSON_CompressedBlock(t *testing.T) {
	compressed, err := lzstring.CompressToBase64(sceneJSON)
	if err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	content := "---\nexcalidraw-plugin: parsed\n---\n# Drawing\n```compressed-json\n" + compressed + "\n```\n"

	got, err := ExtractSceneJSON(content)
	if err != nil {
		t.Fatalf("ExtractSceneJSON failed: %v", err)
	}
	if got != sceneJSON {
		t.Errorf("decompressed payload mismatch:\n got %q\nwant %q", got, sceneJSON)
	}
}

func TestExtractSceneJSON_JSONBlockFallback(t *testing.T) {
	content := "# Drawing\n```json\n" + sceneJSON + "\n```\n"

	got, err := ExtractSceneJSON(content)
	if err != nil {
		t.Fatalf("ExtractSceneJSON failed: %v", err)
	}
	if got != sceneJSON {
		t.Errorf("payload mismatch: %q", got)
	}
}

func TestExtractSceneJSON_RawRemainderFallback(t *testing.T) {
	content := "## Drawing\n" + sceneJSON

	got, err := ExtractSceneJSON(content)
	if err != nil {
		t.Fatalf("ExtractSceneJSON failed: %v", err)
	}
	if got != sceneJSON {
		t.Errorf("payload mismatch: %q", got)
	}
}

func TestExtractSceneJSON_NoPayload(t *testing.T) {
	if _, err := ExtractSceneJSON("just a note"); err == nil {
		t.Error("expected error for content without payload")
	}
}

func TestParseScene(t *testing.T) {
	scene, err := ParseScene(sceneJSON)
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	if len(scene.Elements) != 2 {
		t.Fatalf("Elements = %d, want 2", len(scene.Elements))
	}

	visible := scene.Visible()
	if len(visible) != 1 || visible[0].ID != "a" {
		t.Errorf("Visible() = %+v, want only element a", visible)
	}
	if visible[0].Width != 100 || visible[0].Height != 50 {
		t.Errorf("element dims = %v x %v", visible[0].Width, visible[0].Height)
	}

	if _, err := ParseScene("{broken"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseEmbeddedFiles(t *testing.T) {
	content := strings.Join([]string{
		"# Excalidraw Data",
		"## Embedded Files",
		"a1b2c3: [[attachments/shot.png]]",
		"d4e5f6: [[logo.svg|Logo]]",
		"a1b2c3: [[attachments/duplicate.png]]",
		"",
		"not an entry: [[skipped because of space in id]]",
	}, "\n")

	got := ParseEmbeddedFiles(content)
	if len(got) != 2 {
		t.Fatalf("ParseEmbeddedFiles = %v, want 2 entries", got)
	}
	if got["a1b2c3"] != "attachments/shot.png" {
		t.Errorf("first id wins on duplicates, got %q", got["a1b2c3"])
	}
	if got["d4e5f6"] != "logo.svg" {
		t.Errorf("display text must be stripped, got %q", got["d4e5f6"])
	}
}

func TestParseEmbeddedFiles_Empty(t *testing.T) {
	if got := ParseEmbeddedFiles("no section here"); got != nil {
		t.Errorf("ParseEmbeddedFiles = %v, want nil", got)
	}
}
