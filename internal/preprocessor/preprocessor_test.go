package preprocessor

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
)

func TestCheckVersion(t *testing.T) {
	cases := []struct {
		host, req  string
		compatible bool
	}{
		{host: "0.4.40", req: "0.4.40", compatible: true},
		{host: "0.4.52", req: "0.4.40", compatible: true},
		{host: "0.4.39", req: "0.4.40", compatible: false},
		{host: "0.5.0", req: "0.4.40", compatible: false},
		{host: "1.4.0", req: "1.2.0", compatible: true},
		{host: "2.0.0", req: "1.2.0", compatible: false},
		{host: "0.0.3", req: "0.0.3", compatible: true},
		{host: "0.0.4", req: "0.0.3", compatible: false},
		{host: "v0.4.41", req: "0.4.40", compatible: true},
	}
	for _, tc := range cases {
		got, err := CheckVersion(tc.host, tc.req)
		if err != nil {
			t.Fatalf("CheckVersion(%q, %q) failed: %v", tc.host, tc.req, err)
		}
		if got != tc.compatible {
			t.Fatalf("CheckVersion(%q, %q): expected %v, got %v", tc.host, tc.req, tc.compatible, got)
		}
	}
}

func TestCheckVersionRejectsMalformed(t *testing.T) {
	for _, host := range []string{"", "latest", "0.4", "0.4.x"} {
		if _, err := CheckVersion(host, BuiltAgainst); err == nil {
			t.Fatalf("expected %q to be rejected", host)
		}
	}
}

func TestParseInput(t *testing.T) {
	input := `[{"root":"/book","config":{"book":{"src":"src"}},"renderer":"html","mdbook_version":"0.4.40"},{"sections":[],"__non_exhaustive":null}]`

	ctx, book, err := ParseInput(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if ctx.Root != "/book" || ctx.Renderer != "html" || ctx.MdbookVersion != "0.4.40" {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if !strings.Contains(string(book), `"sections":[]`) {
		t.Fatalf("expected book to be passed through, got %s", book)
	}
}

func TestParseInputErrors(t *testing.T) {
	for _, input := range []string{
		`not json`,
		`[{"root":"/book"}]`,
		`[{"renderer":"html"}, {}]`,
		`[[], {}]`,
	} {
		_, _, err := ParseInput(strings.NewReader(input))
		if !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("input %s: expected ErrMalformedInput, got %v", input, err)
		}
	}
}

func TestRunReloadsBookAfterWritingSummary(t *testing.T) {
	bookRoot := t.TempDir()
	src := filepath.Join(bookRoot, "docs")
	mustWriteFile(t, filepath.Join(src, "README.md"), "# Book\n")
	mustWriteFile(t, filepath.Join(src, "intro.md"), "# Intro\n")

	input := mustPayload(t, bookRoot, map[string]any{
		"book": map[string]any{"src": "docs"},
		"preprocessor": map[string]any{
			"autosummary": map[string]any{"index-name": "README.md"},
		},
	})

	var out bytes.Buffer
	if err := Run(strings.NewReader(input), &out, "9.9.9"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(src, summary.FileName))
	if err != nil {
		t.Fatalf("expected summary to be written: %v", err)
	}
	want := summary.Header("9.9.9") + "[Book](README.md)\n[Intro](intro.md)\n"
	if string(data) != want {
		t.Fatalf("unexpected summary:\n%s\nwant:\n%s", data, want)
	}

	var book Book
	if err := json.Unmarshal(out.Bytes(), &book); err != nil {
		t.Fatalf("failed to decode returned book: %v\n%s", err, out.String())
	}
	if len(book.Sections) != 2 {
		t.Fatalf("expected two chapters in returned book, got %s", out.String())
	}
	intro := book.Sections[1].Chapter
	if intro == nil || intro.Name != "Intro" || intro.Content != "# Intro\n" || *intro.Path != "intro.md" {
		t.Fatalf("expected reloaded Intro chapter, got %s", out.String())
	}
}

func TestRunEchoesBookWhenSummaryUnchanged(t *testing.T) {
	bookRoot := t.TempDir()
	mustWriteFile(t, filepath.Join(bookRoot, "src", "index.md"), "# Book\n")
	input := mustPayload(t, bookRoot, map[string]any{})

	if err := Run(strings.NewReader(input), &bytes.Buffer{}, "1.0.0"); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	var out bytes.Buffer
	if err := Run(strings.NewReader(input), &out, "1.0.0"); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if out.String() != `{"__non_exhaustive":null,"sections":[{"Separator":null}]}` {
		t.Fatalf("expected book to be echoed compactly, got %s", out.String())
	}
}

func TestRunFailsForMissingIndex(t *testing.T) {
	bookRoot := t.TempDir()
	mustWriteFile(t, filepath.Join(bookRoot, "src", "chapter.md"), "# Chapter\n")

	var out bytes.Buffer
	err := Run(strings.NewReader(mustPayload(t, bookRoot, map[string]any{})), &out, "1.0.0")
	if err == nil || !strings.Contains(err.Error(), "index.md") {
		t.Fatalf("expected missing index error naming index.md, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no book output on failure, got %s", out.String())
	}
}

func TestRunRejectsMalformedHostVersion(t *testing.T) {
	bookRoot := t.TempDir()
	mustWriteFile(t, filepath.Join(bookRoot, "src", "index.md"), "# Book\n")

	input := `[{"root":` + quote(bookRoot) + `,"config":{},"renderer":"html","mdbook_version":"not-a-version"},{}]`
	if err := Run(strings.NewReader(input), &bytes.Buffer{}, "1.0.0"); err == nil {
		t.Fatalf("expected malformed mdbook version to be fatal")
	}
}

func TestSupports(t *testing.T) {
	for _, renderer := range []string{"html", "markdown", "epub"} {
		if !Supports(renderer) {
			t.Fatalf("expected renderer %q to be supported", renderer)
		}
	}
}

func mustPayload(t *testing.T, root string, cfg map[string]any) string {
	t.Helper()
	payload := []any{
		map[string]any{
			"root":           root,
			"config":         cfg,
			"renderer":       "html",
			"mdbook_version": BuiltAgainst,
		},
		map[string]any{
			"sections":         []any{map[string]any{"Separator": nil}},
			"__non_exhaustive": nil,
		},
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	return string(data)
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
