package doctree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
)

type builder struct {
	root string
	opts Options
}

// Build discovers the tree rooted at root. The root must be a directory
// holding the configured index chapter; anything else is a *RootError.
func Build(root string, opts Options) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, &RootError{Path: absRoot, IndexName: opts.indexName(), Err: ErrRootNotFound}
	}

	b := &builder{root: absRoot, opts: opts}
	section, ok := b.section(absRoot, 0)
	if !ok {
		return nil, &RootError{Path: absRoot, IndexName: opts.indexName(), Err: ErrMissingIndex}
	}
	return &Tree{Root: section, RootDir: absRoot}, nil
}

// node classifies an incidentally discovered path.
func (b *builder) node(path string, depth int) (Node, bool) {
	info, err := os.Stat(path)
	if err != nil {
		logging.Debug("skipping unreadable entry", "path", path, "error", err)
		return nil, false
	}
	if info.IsDir() {
		if s, ok := b.section(path, depth); ok {
			return s, true
		}
		return nil, false
	}
	if c, ok := b.chapter(path, depth); ok {
		return c, true
	}
	return nil, false
}

func (b *builder) section(dir string, depth int) (*Section, bool) {
	indexName := b.opts.indexName()

	index, ok := b.chapter(filepath.Join(dir, indexName), depth+1)
	if !ok {
		return nil, false
	}

	title := index.Title
	if title == indexName {
		title = filepath.Base(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Warn("failed to list directory", "path", dir, "error", err)
		entries = nil
	}
	// os.ReadDir already sorts by name; keep the ordering explicit.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	section := &Section{
		Title:     title,
		Path:      dir,
		Depth:     depth,
		IndexName: indexName,
	}
	for _, entry := range entries {
		if !b.wanted(dir, entry, indexName) {
			continue
		}
		child, ok := b.node(filepath.Join(dir, entry.Name()), depth+1)
		if !ok {
			continue
		}
		section.Children = append(section.Children, child)
	}
	return section, true
}

func (b *builder) wanted(dir string, entry fs.DirEntry, indexName string) bool {
	name := entry.Name()
	if name == indexName || name == SummaryFileName {
		return false
	}
	if !entry.IsDir() && !strings.HasSuffix(name, ChapterExt) {
		return false
	}
	if b.opts.Ignore != nil {
		rel, err := filepath.Rel(b.root, filepath.Join(dir, name))
		if err == nil && b.opts.Ignore.Match(rel, entry.IsDir()) {
			logging.Debug("ignoring entry", "path", rel)
			return false
		}
	}
	return true
}

func (b *builder) chapter(path string, depth int) (*Chapter, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("failed to inspect file", "path", path, "error", err)
		}
		return nil, false
	}
	if !info.Mode().IsRegular() {
		return nil, false
	}

	name := filepath.Base(path)
	if !strings.HasSuffix(name, ChapterExt) {
		return nil, false
	}
	if b.opts.IgnoreHidden && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
		return nil, false
	}

	title, err := ReadTitle(path)
	if err != nil {
		logging.Warn("failed to open file", "path", path, "error", err)
		return nil, false
	}
	return &Chapter{Title: title, Path: path, Depth: depth}, true
}
