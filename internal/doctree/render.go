package doctree

import (
	"path/filepath"
	"strings"
)

// Render writes t in SUMMARY.md form. Each section lists its chapters
// before its subsections, each group in discovery order.
func Render(t *RelativeTree) string {
	if t == nil || t.Root == nil {
		return ""
	}
	var b strings.Builder
	renderSection(&b, t.Root)
	return b.String()
}

func renderSection(b *strings.Builder, s *Section) {
	index := filepath.ToSlash(filepath.Join(s.Path, s.IndexName))
	if s.Depth == 0 {
		writeLink(b, s.Title, index)
	} else {
		writeItem(b, s.Depth, s.Title, index)
	}

	for _, child := range s.Children {
		if c, ok := child.(*Chapter); ok {
			renderChapter(b, c)
		}
	}
	for _, child := range s.Children {
		if sub, ok := child.(*Section); ok {
			renderSection(b, sub)
		}
	}
}

func renderChapter(b *strings.Builder, c *Chapter) {
	path := filepath.ToSlash(c.Path)
	// Chapters in the source root sit beside the root index, unnested.
	if c.Depth <= 1 {
		writeLink(b, c.Title, path)
		return
	}
	writeItem(b, c.Depth, c.Title, path)
}

func writeLink(b *strings.Builder, title, target string) {
	b.WriteString("[")
	b.WriteString(title)
	b.WriteString("](")
	b.WriteString(target)
	b.WriteString(")\n")
}

func writeItem(b *strings.Builder, depth int, title, target string) {
	b.WriteString(strings.Repeat(" ", (depth-1)*2))
	b.WriteString("- ")
	writeLink(b, title, target)
}
