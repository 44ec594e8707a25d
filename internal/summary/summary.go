// Package summary produces SUMMARY.md for a book source directory and
// rewrites it only when its content changes.
package summary

import (
	"fmt"
	"path/filepath"

	"github.com/autosummary-dev/mdbook-autosummary/internal/doctree"
	"github.com/autosummary-dev/mdbook-autosummary/internal/fileutil"
	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
)

// FileName is the output written into the source directory.
const FileName = doctree.SummaryFileName

// Header returns the first line of every generated summary.
func Header(version string) string {
	return fmt.Sprintf("<!-- Generated by mdbook-autosummary v%s - do not edit manually! -->\n\n", version)
}

// Result describes one generate-and-compare pass.
type Result struct {
	Path                string `json:"path"`
	Written             bool   `json:"written"`
	UpToDate            bool   `json:"up_to_date"`
	Fingerprint         string `json:"fingerprint"`
	PreviousFingerprint string `json:"previous_fingerprint,omitempty"`
	Chapters            int    `json:"chapters"`
	Sections            int    `json:"sections"`
	Content             string `json:"-"`
}

// Generate renders the summary for srcDir, header included.
func Generate(srcDir string, opts doctree.Options, version string) (string, error) {
	text, _, _, err := generate(srcDir, opts, version)
	return text, err
}

func generate(srcDir string, opts doctree.Options, version string) (string, int, int, error) {
	tree, err := doctree.Build(srcDir, opts)
	if err != nil {
		return "", 0, 0, err
	}
	rel, err := tree.Relative()
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to turn absolute paths into relative: %w", err)
	}
	chapters, sections := doctree.Counts(rel.Root)
	body := fileutil.EnsureTrailingNewline(doctree.Render(rel))
	return Header(version) + body, chapters, sections, nil
}

// Sync regenerates srcDir/SUMMARY.md and writes it only when the
// fingerprint of the new content differs from the existing file.
func Sync(srcDir string, opts doctree.Options, version string) (*Result, error) {
	text, chapters, sections, err := generate(srcDir, opts, version)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(srcDir, FileName)
	wr, err := fileutil.WriteIfChanged(path, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	res := &Result{
		Path:                path,
		Written:             wr.Written,
		UpToDate:            !wr.Written,
		Fingerprint:         wr.Fingerprint,
		PreviousFingerprint: wr.PreviousFingerprint,
		Chapters:            chapters,
		Sections:            sections,
		Content:             text,
	}
	if wr.Written {
		logging.Info("wrote summary", "path", path, "chapters", chapters, "sections", sections)
	} else {
		logging.Debug("generated SUMMARY.md matches existing SUMMARY.md, skipping generation", "path", path)
	}
	return res, nil
}

// Check compares the generated summary with the file on disk without
// writing anything.
func Check(srcDir string, opts doctree.Options, version string) (*Result, error) {
	text, chapters, sections, err := generate(srcDir, opts, version)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(srcDir, FileName)
	previous, _, err := fileutil.FingerprintFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}
	fingerprint := fileutil.Fingerprint([]byte(text))
	return &Result{
		Path:                path,
		UpToDate:            previous == fingerprint,
		Fingerprint:         fingerprint,
		PreviousFingerprint: previous,
		Chapters:            chapters,
		Sections:            sections,
		Content:             text,
	}, nil
}
