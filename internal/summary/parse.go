package summary

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Entry is one link found in a summary file.
type Entry struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	// Level is the number of enclosing lists; unnested links are level 0.
	Level int `json:"level"`
}

// ParseEntries returns the links of a SUMMARY.md in document order.
func ParseEntries(content []byte) []Entry {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var entries []Entry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		entries = append(entries, Entry{
			Title: linkText(link, content),
			Path:  string(link.Destination),
			Level: listDepth(link),
		})
		return ast.WalkSkipChildren, nil
	})
	return entries
}

func linkText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.WriteString(linkText(c, src))
	}
	return buf.String()
}

func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindList {
			depth++
		}
	}
	return depth
}

// Diff compares two entry lists by link path.
func Diff(before, after []Entry) (added, removed []Entry) {
	seen := make(map[string]bool, len(before))
	for _, e := range before {
		seen[e.Path] = true
	}
	current := make(map[string]bool, len(after))
	for _, e := range after {
		current[e.Path] = true
		if !seen[e.Path] {
			added = append(added, e)
		}
	}
	for _, e := range before {
		if !current[e.Path] {
			removed = append(removed, e)
		}
	}
	return added, removed
}
