package cli

import (
	"fmt"

	"github.com/jakoblorz/mcp-init/internal/filesystem"
	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/jakoblorz/mcp-init/internal/tui"
	"github.com/jakoblorz/mcp-init/internal/update"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "0.0.0-dev"

// NewRootCommand creates the root command. The root itself performs the
// project setup; modules and version are subcommands.
func NewRootCommand(fs filesystem.FileSystem, registry *module.Registry, confirm tui.Confirmer) *cobra.Command {
	opts := &initOptions{}

	rootCmd := &cobra.Command{
		Use:   "mcp-init <project-name> [language]",
		Short: "Configure MCP servers for a project",
		Long: `mcp-init creates the configuration for MCP (Model Context Protocol)
servers: Serena (semantic code analysis) and Cipher (persistent memory).

Examples:
  mcp-init my-project typescript
  mcp-init --mcp serena my-project python
  mcp-init --mcp cipher --cipher-openai-key sk-xxx my-project
  mcp-init -n --mcp serena,cipher my-project`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		Version:      Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, fs, registry, confirm, opts)
		},
	}

	opts.register(rootCmd)

	rootCmd.AddCommand(NewModulesCommand(registry))
	rootCmd.AddCommand(NewVersionCommand(update.NewGitHubSource()))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	registry := module.NewRegistry()
	confirm := tui.NewConfirmer()

	rootCmd := NewRootCommand(fs, registry, confirm)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
