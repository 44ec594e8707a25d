package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func OptionalBoolFlag(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// commandVersion is the version the root command was built with.
func commandVersion(cmd *cobra.Command) string {
	if cmd != nil && cmd.Root().Version != "" {
		return cmd.Root().Version
	}
	return "dev"
}
