package excalidraw

import "testing"

func TestIsDrawingContent(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     bool
	}{
		{
			name:     "excalidraw extension",
			fileName: "flow.excalidraw",
			content:  "",
			want:     true,
		},
		{
			name:     "excalidraw markdown extension",
			fileName: "flow.excalidraw.md",
			content:  "",
			want:     true,
		},
		{
			name:     "plugin frontmatter key",
			fileName: "flow.md",
			content:  "---\nexcalidraw-plugin: parsed\n---\nbody",
			want:     true,
		},
		{
			name:     "tag plus drawing heading",
			fileName: "flow.md",
			content:  "---\ntags: [excalidraw]\n---\n\n# Drawing\npayload",
			want:     true,
		},
		{
			name:     "scalar tag form",
			fileName: "flow.md",
			content:  "---\ntags: excalidraw, diagram\n---\n\n## Drawing\npayload",
			want:     true,
		},
		{
			name:     "tag without drawing heading",
			fileName: "flow.md",
			content:  "---\ntags: [excalidraw]\n---\nno heading here",
			want:     false,
		},
		{
			name:     "plain note",
			fileName: "note.md",
			content:  "---\ntags: [journal]\n---\n# Drawing\nfalse positive guard",
			want:     false,
		},
		{
			name:     "no frontmatter",
			fileName: "note.md",
			content:  "just text",
			want:     false,
		},
		{
			name:     "broken frontmatter yaml",
			fileName: "note.md",
			content:  "---\n: : :\n---\nbody",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDrawingContent(tt.fileName, tt.content); got != tt.want {
				t.Errorf("IsDrawingContent(%q) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}
