package preprocessor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Book mirrors mdbook's serialized book.
type Book struct {
	Sections      []BookItem `json:"sections"`
	NonExhaustive *struct{}  `json:"__non_exhaustive"`
}

// BookItem is mdbook's externally tagged item enum. Only chapters are
// produced here.
type BookItem struct {
	Chapter *Chapter `json:"Chapter"`
}

type Chapter struct {
	Name        string     `json:"name"`
	Content     string     `json:"content"`
	Number      []int      `json:"number"`
	SubItems    []BookItem `json:"sub_items"`
	Path        *string    `json:"path"`
	SourcePath  *string    `json:"source_path"`
	ParentNames []string   `json:"parent_names"`
}

// LoadBook builds the book mdbook would load from summaryMD, reading each
// linked chapter from srcDir. Links outside any list are unnumbered; list
// items are numbered by position and nest by list depth. A linked file that
// does not exist is an error.
func LoadBook(srcDir string, summaryMD []byte) (*Book, error) {
	book := &Book{Sections: []BookItem{}}

	var open []*Chapter
	numbered := 0
	for _, entry := range summary.ParseEntries(summaryMD) {
		ch, err := loadChapter(srcDir, entry)
		if err != nil {
			return nil, err
		}

		if entry.Level <= 0 {
			open = open[:0]
			book.Sections = append(book.Sections, BookItem{Chapter: ch})
			continue
		}

		if keep := entry.Level - 1; len(open) > keep {
			open = open[:keep]
		}
		if len(open) == 0 {
			numbered++
			ch.Number = []int{numbered}
			book.Sections = append(book.Sections, BookItem{Chapter: ch})
		} else {
			parent := open[len(open)-1]
			parent.SubItems = append(parent.SubItems, BookItem{Chapter: ch})
			ch.Number = append(append([]int{}, parent.Number...), len(parent.SubItems))
			ch.ParentNames = append(append([]string{}, parent.ParentNames...), parent.Name)
		}
		open = append(open, ch)
	}
	return book, nil
}

func loadChapter(srcDir string, entry summary.Entry) (*Chapter, error) {
	location := filepath.Join(srcDir, filepath.FromSlash(entry.Path))
	content, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("chapter file not found, %s: %w", entry.Path, err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	path := entry.Path
	return &Chapter{
		Name:        entry.Title,
		Content:     string(content),
		SubItems:    []BookItem{},
		Path:        &path,
		SourcePath:  &path,
		ParentNames: []string{},
	}, nil
}
