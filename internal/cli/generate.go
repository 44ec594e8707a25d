package cli

import (
	"time"

	"github.com/autosummary-dev/mdbook-autosummary/internal/preprocessor"
	"github.com/autosummary-dev/mdbook-autosummary/internal/summary"
	"github.com/spf13/cobra"
)

// RunPreprocess is the default action: mdbook pipes [context, book] in and
// reads the book back.
func RunPreprocess(cmd *cobra.Command, args []string) error {
	return preprocessor.Run(cmd.InOrStdin(), cmd.OutOrStdout(), commandVersion(cmd))
}

// RunSupports answers mdbook's renderer probe through the exit status only.
func RunSupports(cmd *cobra.Command, args []string) error {
	if preprocessor.Supports(args[0]) {
		return nil
	}
	return &ExitError{Code: 1}
}

func RunGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}

	b, err := loadBook(args)
	if err != nil {
		return err
	}

	res, err := summary.Sync(b.SourceDir, b.Options, commandVersion(cmd))
	if err != nil {
		return err
	}

	return PrintRunSummary(cmd.OutOrStdout(), RunSummary{
		Mode:        "generate",
		BookRoot:    b.Root,
		SourceDir:   b.SourceDir,
		Output:      res.Path,
		Written:     res.Written,
		UpToDate:    res.UpToDate,
		Chapters:    res.Chapters,
		Sections:    res.Sections,
		Fingerprint: res.Fingerprint,
		DurationMS:  time.Since(start).Milliseconds(),
	}, asJSON)
}
