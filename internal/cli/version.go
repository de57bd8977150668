package cli

import (
	"fmt"

	"github.com/jakoblorz/mcp-init/internal/update"
	"github.com/spf13/cobra"
)

// NewVersionCommand prints the build version and optionally compares it
// against the latest published release.
func NewVersionCommand(source update.ReleaseSource) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mcp-init version %s\n", Version)

			if !check {
				return nil
			}

			result, err := update.Check(cmd.Context(), source, Version)
			if err != nil {
				return fmt.Errorf("release check failed: %w", err)
			}

			if result.Outdated {
				fmt.Fprintf(out, "A newer release is available: %s\n", result.Latest)
			} else {
				fmt.Fprintln(out, "You are on the latest release.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "compare against the latest GitHub release")

	return cmd
}
