package excalidraw

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterPattern matches a YAML frontmatter block at the start of a note.
var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---`)

// drawingHeadingPattern matches the Drawing section heading of the Excalidraw
// markdown format.
var drawingHeadingPattern = regexp.MustCompile(`(?m)^#+\s+Drawing\s*$`)

// frontMatter holds the metadata keys relevant for drawing classification.
type frontMatter struct {
	ExcalidrawPlugin string  `yaml:"excalidraw-plugin"`
	Tags             tagList `yaml:"tags"`
}

// tagList accepts both the scalar ("a, b") and sequence YAML forms of tags.
type tagList []string

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		for _, tag := range strings.Split(value.Value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				*t = append(*t, tag)
			}
		}
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*t = items
	}
	return nil
}

// IsDrawingContent classifies a file as a drawing-format document. Any one of
// the markers suffices: a recognized extension, the excalidraw-plugin
// frontmatter key, or an excalidraw tag combined with a Drawing heading.
func IsDrawingContent(name, content string) bool {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".excalidraw") || strings.HasSuffix(lower, ".excalidraw.md") {
		return true
	}

	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		return false
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		return false
	}

	if fm.ExcalidrawPlugin != "" {
		return true
	}

	for _, tag := range fm.Tags {
		if strings.EqualFold(strings.TrimPrefix(tag, "#"), "excalidraw") {
			return drawingHeadingPattern.MatchString(content)
		}
	}
	return false
}
