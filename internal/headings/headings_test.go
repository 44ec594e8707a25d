package headings

import "testing"

func TestFirstH1(t *testing.T) {
	p := NewParser()

	cases := []struct {
		name    string
		content string
		text    string
		line    int
		found   bool
	}{
		{name: "simple", content: "# Title\n\nBody\n", text: "Title", line: 1, found: true},
		{name: "after paragraph", content: "Intro text\n\n# Later\n", text: "Later", line: 3, found: true},
		{name: "comment stripped", content: "# Title <!-- note -->\n", text: "Title", line: 1, found: true},
		{name: "second level only", content: "## Sub\n", found: false},
		{name: "inside fence", content: "```sh\n# not a heading\n```\n\n# Real\n", text: "Real", line: 5, found: true},
		{name: "no heading", content: "plain text\n", found: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, ok, err := p.FirstH1([]byte(tc.content))
			if err != nil {
				t.Fatalf("FirstH1 failed: %v", err)
			}
			if ok != tc.found {
				t.Fatalf("expected found=%v, got %v (%+v)", tc.found, ok, h)
			}
			if !ok {
				return
			}
			if h.Text != tc.text || h.Line != tc.line {
				t.Fatalf("expected %q on line %d, got %q on line %d", tc.text, tc.line, h.Text, h.Line)
			}
		})
	}
}
