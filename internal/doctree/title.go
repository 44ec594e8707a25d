package doctree

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	headingMarker = "# "
	commentOpen   = "<!--"
)

// ExtractTitle returns the text of the first line starting with "# ",
// trimmed and cut at any "<!--". Without such a line, or when the heading
// text is empty, the title is filename.
func ExtractTitle(r io.Reader, filename string) string {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if strings.HasPrefix(line, headingMarker) {
			if title := headingText(line); title != "" {
				return title
			}
			return filename
		}
		if err != nil {
			return filename
		}
	}
}

func headingText(line string) string {
	title := strings.TrimPrefix(line, headingMarker)
	if before, _, found := strings.Cut(title, commentOpen); found {
		title = before
	}
	return strings.TrimSpace(title)
}

// ReadTitle opens path and extracts its title, falling back to the file's
// base name.
func ReadTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ExtractTitle(f, filepath.Base(path)), nil
}
