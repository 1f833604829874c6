package domain

import (
	"regexp"
	"strings"
)

// Wikilink tokens: [[target]], [[target|display]] and the embed forms
// ![[target]], ![[target|display]]. The target may carry a #heading or
// #^block fragment.
var wikilinkPattern = regexp.MustCompile(`(!?)\[\[([^\[\]|]+)(?:\|([^\[\]]*))?\]\]`)

// WikiLink is one bracket-style cross-reference token found in note text.
type WikiLink struct {
	Raw     string // target text inside the brackets, trimmed, fragment included
	Display string // optional pipe-delimited display text, "" if absent
	Embed   bool   // true for the ![[...]] form
	Token   string // the full token as it appears in the source
}

// ExtractLinks scans note text and returns all wikilink tokens in order of
// appearance. Tokens with an empty target are dropped.
func ExtractLinks(content string) []WikiLink {
	matches := wikilinkPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]WikiLink, 0, len(matches))
	for _, m := range matches {
		raw := strings.TrimSpace(m[2])
		if raw == "" {
			continue
		}
		links = append(links, WikiLink{
			Raw:     raw,
			Display: strings.TrimSpace(m[3]),
			Embed:   m[1] == "!",
			Token:   m[0],
		})
	}
	return links
}

// TargetID returns the link target with any #heading or #^block fragment
// stripped, suitable for resolution.
func (l WikiLink) TargetID() string {
	if i := strings.Index(l.Raw, "#"); i >= 0 {
		return strings.TrimSpace(l.Raw[:i])
	}
	return l.Raw
}

// EmbedToken renders an image-embed wikilink to target, preserving display
// text when present.
func EmbedToken(target, display string) string {
	if display != "" {
		return "![[" + target + "|" + display + "]]"
	}
	return "![[" + target + "]]"
}
