package preprocessor

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
)

func TestLoadBookNestsAndNumbersChapters(t *testing.T) {
	src := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "index.md"), "# Book\n")
	mustWriteFile(t, filepath.Join(src, "intro.md"), "\xef\xbb\xbf# Intro\n")
	mustWriteFile(t, filepath.Join(src, "guide", "index.md"), "# Guide\n")
	mustWriteFile(t, filepath.Join(src, "guide", "setup.md"), "# Setup\n")
	mustWriteFile(t, filepath.Join(src, "guide", "deep", "index.md"), "# Deep\n")
	mustWriteFile(t, filepath.Join(src, "ref", "index.md"), "# Reference\n")

	summaryMD := summary.Header("1.0.0") +
		"[Book](index.md)\n" +
		"[Intro](intro.md)\n" +
		"- [Guide](guide/index.md)\n" +
		"  - [Setup](guide/setup.md)\n" +
		"  - [Deep](guide/deep/index.md)\n" +
		"- [Reference](ref/index.md)\n"

	book, err := LoadBook(src, []byte(summaryMD))
	if err != nil {
		t.Fatalf("LoadBook failed: %v", err)
	}
	if len(book.Sections) != 4 {
		t.Fatalf("expected 4 top-level items, got %d", len(book.Sections))
	}

	intro := book.Sections[1].Chapter
	if intro.Number != nil || intro.Content != "# Intro\n" {
		t.Fatalf("expected unnumbered intro without BOM, got %+v", intro)
	}

	guide := book.Sections[2].Chapter
	if !reflect.DeepEqual(guide.Number, []int{1}) || len(guide.SubItems) != 2 {
		t.Fatalf("unexpected guide chapter: %+v", guide)
	}
	deep := guide.SubItems[1].Chapter
	if !reflect.DeepEqual(deep.Number, []int{1, 2}) || !reflect.DeepEqual(deep.ParentNames, []string{"Guide"}) {
		t.Fatalf("unexpected nested chapter: %+v", deep)
	}
	if *deep.Path != "guide/deep/index.md" || *deep.SourcePath != "guide/deep/index.md" {
		t.Fatalf("unexpected nested chapter path: %+v", deep)
	}

	ref := book.Sections[3].Chapter
	if !reflect.DeepEqual(ref.Number, []int{2}) {
		t.Fatalf("expected second numbered chapter, got %+v", ref)
	}
}

func TestLoadBookEncodesMdbookShape(t *testing.T) {
	src := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "index.md"), "# Book\n")

	book, err := LoadBook(src, []byte("[Book](index.md)\n"))
	if err != nil {
		t.Fatalf("LoadBook failed: %v", err)
	}
	data, err := json.Marshal(book)
	if err != nil {
		t.Fatalf("failed to encode book: %v", err)
	}
	want := `{"sections":[{"Chapter":{"name":"Book","content":"# Book\n","number":null,"sub_items":[],` +
		`"path":"index.md","source_path":"index.md","parent_names":[]}}],"__non_exhaustive":null}`
	if string(data) != want {
		t.Fatalf("unexpected encoding:\n%s\nwant:\n%s", data, want)
	}
}

func TestLoadBookFailsForMissingChapter(t *testing.T) {
	src := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "index.md"), "# Book\n")

	_, err := LoadBook(src, []byte("[Book](index.md)\n- [Gone](gone.md)\n"))
	if err == nil || !strings.Contains(err.Error(), "gone.md") {
		t.Fatalf("expected missing chapter error naming gone.md, got %v", err)
	}
}
