package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
	"github.com/spf13/cobra"
)

func RunStatus(cmd *cobra.Command, args []string) error {
	start := time.Now()
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	b, err := loadBook(args)
	if err != nil {
		return err
	}

	res, err := summary.Check(b.SourceDir, b.Options, commandVersion(cmd))
	if err != nil {
		return err
	}

	var existing []byte
	if res.PreviousFingerprint != "" {
		existing, err = os.ReadFile(res.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", res.Path, err)
		}
	}
	added, removed := summary.Diff(summary.ParseEntries(existing), summary.ParseEntries([]byte(res.Content)))

	return PrintRunSummary(cmd.OutOrStdout(), RunSummary{
		Mode:        "status",
		BookRoot:    b.Root,
		SourceDir:   b.SourceDir,
		Output:      res.Path,
		UpToDate:    res.UpToDate,
		Chapters:    res.Chapters,
		Sections:    res.Sections,
		Fingerprint: res.Fingerprint,
		DurationMS:  time.Since(start).Milliseconds(),
		Added:       added,
		Removed:     removed,
	}, asJSON)
}
