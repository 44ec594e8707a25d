package doctree

import (
	"path/filepath"
	"strings"
)

// Relative returns a copy of t with every path relative to t.RootDir. The
// receiver is left untouched.
func (t *Tree) Relative() (*RelativeTree, error) {
	root, err := relativeSection(t.Root, t.RootDir)
	if err != nil {
		return nil, err
	}
	return &RelativeTree{Root: root}, nil
}

func relativeSection(s *Section, root string) (*Section, error) {
	path, err := relativePath(s.Path, root)
	if err != nil {
		return nil, err
	}

	out := &Section{
		Title:     s.Title,
		Path:      path,
		Depth:     s.Depth,
		IndexName: s.IndexName,
		Children:  make([]Node, 0, len(s.Children)),
	}
	for _, child := range s.Children {
		switch n := child.(type) {
		case *Section:
			rel, err := relativeSection(n, root)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, rel)
		case *Chapter:
			rel, err := relativePath(n.Path, root)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, &Chapter{Title: n.Title, Path: rel, Depth: n.Depth})
		}
	}
	return out, nil
}

// relativePath strips root from path. The root itself maps to "".
func relativePath(path, root string) (string, error) {
	clean := filepath.Clean(path)
	cleanRoot := filepath.Clean(root)
	if clean == cleanRoot {
		return "", nil
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(clean, prefix) {
		return "", &PathError{Path: path, Root: root}
	}
	return strings.TrimPrefix(clean, prefix), nil
}
