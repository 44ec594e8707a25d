package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/autosummary-dev/mdbook-autosummary/internal/config"
	"github.com/autosummary-dev/mdbook-autosummary/internal/doctree"
	"github.com/autosummary-dev/mdbook-autosummary/internal/headings"
	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
	"github.com/spf13/cobra"
)

func RunDoctor(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	b, err := loadBook(args)
	if err != nil {
		return err
	}

	report := DoctorSummary{
		Mode:      "doctor",
		BookRoot:  b.Root,
		SourceDir: b.SourceDir,
		IndexName: b.Options.IndexName,
	}

	if _, err := os.Stat(filepath.Join(b.Root, config.BookFile)); err != nil {
		report.Missing = append(report.Missing, config.BookFile)
		report.Suggestions = append(report.Suggestions, "run doctor from the directory holding book.toml")
	}

	if info, err := os.Stat(b.SourceDir); err != nil || !info.IsDir() {
		report.Missing = append(report.Missing, "source directory "+b.SourceDir)
		return finishDoctor(cmd, report, asJSON)
	}

	tree, err := doctree.Build(b.SourceDir, b.Options)
	if err != nil {
		var rootErr *doctree.RootError
		if !errors.As(err, &rootErr) {
			return err
		}
		report.Missing = append(report.Missing, filepath.Join(b.SourceDir, rootErr.IndexName))
		report.Suggestions = append(report.Suggestions, fmt.Sprintf("add a %s with a \"# \" heading to the source directory", rootErr.IndexName))
		return finishDoctor(cmd, report, asJSON)
	}

	res, err := summary.Check(b.SourceDir, b.Options, commandVersion(cmd))
	if err != nil {
		return err
	}
	report.UpToDate = res.UpToDate
	if !res.UpToDate {
		report.Suggestions = append(report.Suggestions, "run mdbook-autosummary generate")
	}

	issues, err := checkHeadings(tree)
	if err != nil {
		return err
	}
	report.Headings = issues
	if len(issues) > 0 {
		report.Suggestions = append(report.Suggestions, "move the chapter title to the first Markdown heading")
	}

	return finishDoctor(cmd, report, asJSON)
}

func finishDoctor(cmd *cobra.Command, report DoctorSummary, asJSON bool) error {
	sort.Strings(report.Missing)
	sort.Strings(report.Suggestions)
	report.Healthy = len(report.Missing) == 0 && report.UpToDate
	return PrintDoctorSummary(cmd.OutOrStdout(), report, asJSON)
}

// checkHeadings compares each chapter title with the first h1 a Markdown
// parser finds in the same file.
func checkHeadings(tree *doctree.Tree) ([]HeadingIssue, error) {
	parser := headings.NewParser()
	var issues []HeadingIssue

	check := func(path, title string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			logging.Warn("failed to read chapter", "path", path, "error", err)
			return nil
		}
		name := filepath.Base(path)
		scanned := doctree.ExtractTitle(bytes.NewReader(content), name)

		h, ok, err := parser.FirstH1(content)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		rel, relErr := filepath.Rel(tree.RootDir, path)
		if relErr != nil {
			rel = path
		}
		switch {
		case ok && h.Text == "" && scanned == name:
			// Empty heading; both sides fall back to the file name.
		case !ok && scanned != name:
			issues = append(issues, HeadingIssue{Path: filepath.ToSlash(rel), Title: title})
		case ok && h.Text != scanned:
			issues = append(issues, HeadingIssue{Path: filepath.ToSlash(rel), Title: title, Markdown: h.Text, Line: h.Line})
		}
		return nil
	}

	var walk func(s *doctree.Section) error
	walk = func(s *doctree.Section) error {
		if err := check(filepath.Join(s.Path, s.IndexName), s.Title); err != nil {
			return err
		}
		for _, child := range s.Children {
			switch n := child.(type) {
			case *doctree.Chapter:
				if err := check(n.Path, n.Title); err != nil {
					return err
				}
			case *doctree.Section:
				if err := walk(n); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(tree.Root); err != nil {
		return nil, err
	}
	return issues, nil
}
