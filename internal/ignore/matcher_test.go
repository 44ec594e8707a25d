package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"drafts/**",
		"!drafts/keep/ready.md",
		"*.tmp.md",
		"# comment",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: ".git", isDir: true, ignored: true},
		{path: ".git/config", isDir: false, ignored: true},
		{path: "node_modules/pkg/readme.md", isDir: false, ignored: true},
		{path: "drafts/wip.md", isDir: false, ignored: true},
		{path: "drafts/keep/ready.md", isDir: false, ignored: false},
		{path: "guide/notes.tmp.md", isDir: false, ignored: true},
		{path: "guide/setup.md", isDir: false, ignored: false},
		{path: ".", isDir: true, ignored: false},
	}

	for _, tc := range cases {
		got := m.Match(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_NegatedDirectoryRule(t *testing.T) {
	m := NewMatcher([]string{
		"archive/",
		"!archive/current/",
	})

	if !m.Match("archive/old/chapter.md", false) {
		t.Fatalf("expected archive/old/chapter.md to be ignored")
	}
	if m.Match("archive/current/chapter.md", false) {
		t.Fatalf("expected archive/current/chapter.md to be included")
	}
	if m.Match("archive.md", false) {
		t.Fatalf("expected directory-only rule not to match a file")
	}
}

func TestMatcher_AnchoredRule(t *testing.T) {
	m := NewMatcher([]string{"/private.md"})

	if !m.Match("private.md", false) {
		t.Fatalf("expected anchored rule to match at the root")
	}
	if m.Match("guide/private.md", false) {
		t.Fatalf("expected anchored rule not to match below the root")
	}
}

func TestNilMatcherIgnoresNothing(t *testing.T) {
	var m *Matcher
	if m.Match("anything.md", false) {
		t.Fatalf("expected nil matcher to ignore nothing")
	}
}

func TestLoadReadsRulesFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("scratch/\n\n!keep.md\n"), 0644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !m.Match("scratch", true) {
		t.Fatalf("expected scratch/ to be ignored")
	}

	empty, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load without rules file failed: %v", err)
	}
	if !empty.Match(".git", true) || empty.Match("scratch", true) {
		t.Fatalf("expected only default rules without a rules file")
	}
}
