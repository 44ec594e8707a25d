package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdbook-autosummary",
		Short: "Generate SUMMARY.md for an mdbook from its folder structure",
		Long: `mdbook-autosummary is an mdbook preprocessor that builds SUMMARY.md from
the layout of the book's source directory.

Every folder that contains an index.md becomes a section titled after the
first "# " heading of that index, and every other .md file becomes a chapter.
SUMMARY.md is only rewritten when its content changes.

Without a subcommand it runs as a preprocessor: mdbook sends the book on
stdin and reads it back from stdout.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          RunPreprocess,
	}
	rootCmd.SetVersionTemplate("mdbook-autosummary {{.Version}}\n")

	supportsCmd := &cobra.Command{
		Use:   "supports <renderer>",
		Short: "Check whether a renderer is supported by this preprocessor",
		Args:  cobra.ExactArgs(1),
		RunE:  RunSupports,
	}

	generateCmd := &cobra.Command{
		Use:   "generate [book-dir]",
		Short: "Regenerate SUMMARY.md outside of an mdbook build",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunGenerate,
	}
	generateCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	statusCmd := &cobra.Command{
		Use:   "status [book-dir]",
		Short: "Show whether SUMMARY.md is current and which entries would change",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	doctorCmd := &cobra.Command{
		Use:   "doctor [book-dir]",
		Short: "Validate the book layout and chapter headings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Bool("json", false, "Print machine-readable doctor output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mdbook-autosummary %s\n", version)
		},
	}

	rootCmd.AddCommand(
		supportsCmd,
		generateCmd,
		statusCmd,
		doctorCmd,
		versionCmd,
	)

	return rootCmd
}
