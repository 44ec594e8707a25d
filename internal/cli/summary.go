package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/autosummary-dev/mdbook-autosummary/internal/fileutil"
	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
)

type RunSummary struct {
	Mode        string          `json:"mode"`
	BookRoot    string          `json:"book_root"`
	SourceDir   string          `json:"source_dir"`
	Output      string          `json:"output"`
	Written     bool            `json:"written"`
	UpToDate    bool            `json:"up_to_date"`
	Chapters    int             `json:"chapters"`
	Sections    int             `json:"sections"`
	Fingerprint string          `json:"fingerprint"`
	DurationMS  int64           `json:"duration_ms"`
	Added       []summary.Entry `json:"added,omitempty"`
	Removed     []summary.Entry `json:"removed,omitempty"`
}

type DoctorSummary struct {
	Mode        string         `json:"mode"`
	BookRoot    string         `json:"book_root"`
	SourceDir   string         `json:"source_dir"`
	IndexName   string         `json:"index_name"`
	Healthy     bool           `json:"healthy"`
	UpToDate    bool           `json:"up_to_date"`
	Missing     []string       `json:"missing,omitempty"`
	Headings    []HeadingIssue `json:"headings,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// HeadingIssue is a chapter whose line-scan title disagrees with its
// Markdown heading.
type HeadingIssue struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Markdown string `json:"markdown,omitempty"`
	Line     int    `json:"line,omitempty"`
}

func PrintRunSummary(w io.Writer, s RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, s)
	}

	state := dimStyle.Render("up to date")
	switch {
	case s.Written:
		state = successStyle.Render("written")
	case !s.UpToDate:
		state = warnStyle.Render("stale")
	}

	fmt.Fprintf(w, "%s: %s %s in %dms\n", titleStyle.Render(s.Mode), s.Output, state, s.DurationMS)
	fmt.Fprintf(w, "%s chapters=%d sections=%d\n", dimStyle.Render("tree:"), s.Chapters, s.Sections)
	if len(s.Added) > 0 {
		fmt.Fprintf(w, "added (%d): %s\n", len(s.Added), successStyle.Render(SummarizeEntries(s.Added, 8)))
	}
	if len(s.Removed) > 0 {
		fmt.Fprintf(w, "removed (%d): %s\n", len(s.Removed), errorStyle.Render(SummarizeEntries(s.Removed, 8)))
	}
	return nil
}

func PrintDoctorSummary(w io.Writer, s DoctorSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, s)
	}

	health := successStyle.Render("healthy")
	if !s.Healthy {
		health = errorStyle.Render("unhealthy")
	}
	fmt.Fprintf(w, "%s: %s (%s)\n", titleStyle.Render("doctor"), s.SourceDir, health)
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("index:"), s.IndexName)
	for _, missing := range s.Missing {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("missing:"), missing)
	}
	for _, issue := range s.Headings {
		if issue.Markdown == "" {
			fmt.Fprintf(w, "%s %s: title %q does not come from a Markdown heading\n", warnStyle.Render("heading:"), issue.Path, issue.Title)
			continue
		}
		fmt.Fprintf(w, "%s %s: title %q but line %d heading is %q\n", warnStyle.Render("heading:"), issue.Path, issue.Title, issue.Line, issue.Markdown)
	}
	for _, suggestion := range s.Suggestions {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("suggestion:"), suggestion)
	}
	return nil
}

func SummarizeEntries(entries []summary.Entry, max int) string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return SummarizePaths(paths, max)
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
