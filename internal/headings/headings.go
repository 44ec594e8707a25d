// Package headings finds first-level Markdown headings with a real
// Markdown grammar. The doctor command compares the result against the
// line-scan title to flag chapters whose title comes from a line Markdown
// does not treat as a heading, such as "# " inside a fenced code block.
package headings

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
)

// Parser wraps a tree-sitter parser configured for Markdown blocks.
type Parser struct {
	parser *sitter.Parser
}

func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(markdown.GetLanguage())
	return &Parser{parser: p}
}

// Heading is a level-1 ATX heading.
type Heading struct {
	Text string
	Line int // 1-based
}

// FirstH1 returns the first level-1 ATX heading outside code and HTML
// blocks. HTML comments are cut from the text the same way chapter titles
// are.
func (p *Parser) FirstH1(content []byte) (Heading, bool, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return Heading{}, false, err
	}
	defer tree.Close()

	h, ok := findH1(tree.RootNode(), content)
	return h, ok, nil
}

func findH1(node *sitter.Node, content []byte) (Heading, bool) {
	switch node.Type() {
	case "fenced_code_block", "indented_code_block", "html_block":
		return Heading{}, false
	case "atx_heading":
		if node.ChildCount() > 0 && node.Child(0).Type() == "atx_h1_marker" {
			return Heading{
				Text: headingText(node, content),
				Line: int(node.StartPoint().Row) + 1,
			}, true
		}
		return Heading{}, false
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		if h, ok := findH1(node.NamedChild(i), content); ok {
			return h, true
		}
	}
	return Heading{}, false
}

func headingText(node *sitter.Node, content []byte) string {
	var text string
	if inline := node.ChildByFieldName("heading_content"); inline != nil {
		text = inline.Content(content)
	} else {
		text = strings.TrimLeft(node.Content(content), "#")
	}
	if before, _, found := strings.Cut(text, "<!--"); found {
		text = before
	}
	return strings.TrimSpace(text)
}
