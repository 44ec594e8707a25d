// Package doctree discovers the chapters of an mdbook source directory and
// renders them as a SUMMARY.md.
//
// A tree goes through two stages. Build returns a *Tree whose node paths are
// absolute. Tree.Relative returns a *RelativeTree with root-relative paths,
// which is the only form Render accepts.
package doctree

import (
	"errors"
	"fmt"

	"github.com/autosummary-dev/mdbook-autosummary/internal/ignore"
)

const (
	// DefaultIndexName is the chapter that makes a directory a section.
	DefaultIndexName = "index.md"
	// SummaryFileName is never treated as a chapter.
	SummaryFileName = "SUMMARY.md"
	// ChapterExt identifies chapter files.
	ChapterExt = ".md"
)

var (
	ErrRootNotFound = errors.New("source root not found")
	ErrMissingIndex = errors.New("source root has no index chapter")
	ErrNotUnderRoot = errors.New("path is not under root")
)

// Options controls discovery.
type Options struct {
	IndexName    string
	IgnoreHidden bool
	// Ignore prunes matching entries. Nil excludes nothing.
	Ignore *ignore.Matcher
}

// DefaultOptions matches the preprocessor defaults.
func DefaultOptions() Options {
	return Options{
		IndexName:    DefaultIndexName,
		IgnoreHidden: true,
	}
}

func (o Options) indexName() string {
	if o.IndexName == "" {
		return DefaultIndexName
	}
	return o.IndexName
}

// Node is either a *Section or a *Chapter.
type Node interface {
	NodeTitle() string
	NodePath() string
	NodeDepth() int
}

// Section is a directory holding an index chapter.
type Section struct {
	Title     string
	Path      string
	Children  []Node
	Depth     int
	IndexName string
}

// Chapter is a single .md file.
type Chapter struct {
	Title string
	Path  string
	Depth int
}

func (s *Section) NodeTitle() string { return s.Title }
func (s *Section) NodePath() string  { return s.Path }
func (s *Section) NodeDepth() int    { return s.Depth }

func (c *Chapter) NodeTitle() string { return c.Title }
func (c *Chapter) NodePath() string  { return c.Path }
func (c *Chapter) NodeDepth() int    { return c.Depth }

// Tree is a freshly built tree with absolute paths.
type Tree struct {
	Root    *Section
	RootDir string
}

// RelativeTree holds paths relative to the directory it was built from.
type RelativeTree struct {
	Root *Section
}

// Counts returns the number of chapters and sections below and including root.
// Section index chapters are not counted as chapters.
func Counts(root *Section) (chapters, sections int) {
	if root == nil {
		return 0, 0
	}
	sections = 1
	for _, child := range root.Children {
		switch n := child.(type) {
		case *Chapter:
			chapters++
		case *Section:
			c, s := Counts(n)
			chapters += c
			sections += s
		}
	}
	return chapters, sections
}

// RootError reports a source root that cannot produce a summary.
type RootError struct {
	Path      string
	IndexName string
	Err       error
}

func (e *RootError) Error() string {
	return fmt.Sprintf(
		"could not find an '%[2]s' file at '%[1]s': an '%[2]s' file must exist at '%[1]s' when using the autosummary preprocessor",
		e.Path, e.IndexName,
	)
}

func (e *RootError) Unwrap() error { return e.Err }

// PathError reports a node path that does not live under the expected root.
type PathError struct {
	Path string
	Root string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q is not under root %q", e.Path, e.Root)
}

func (e *PathError) Unwrap() error { return ErrNotUnderRoot }
