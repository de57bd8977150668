package cli

import (
	"fmt"

	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/spf13/cobra"
)

// NewModulesCommand lists the available MCP modules.
func NewModulesCommand(registry *module.Registry) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List available MCP modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			metas := registry.List()
			if len(metas) == 0 {
				return fmt.Errorf("no modules registered")
			}

			fmt.Fprintln(out, "Available MCP modules:")
			fmt.Fprintln(out)
			for _, meta := range metas {
				fmt.Fprintf(out, "  %-12s v%s - %s\n", meta.Name, meta.Version, meta.Description)
				if verbose {
					if d, ok := registry.LoadTime(meta.Name); ok {
						fmt.Fprintf(out, "  %-12s loaded in %s\n", "", d)
					}
				}
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Usage: mcp-init --mcp MODULE1,MODULE2 project-name [language]")

			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "show module load timings")

	return cmd
}
