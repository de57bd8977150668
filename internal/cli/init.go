package cli

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/mcp-init/internal/filesystem"
	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/jakoblorz/mcp-init/internal/setup"
	"github.com/jakoblorz/mcp-init/internal/tui"
	"github.com/spf13/cobra"
)

// defaultModules are configured when --mcp is absent and no terminal is
// attached to ask.
var defaultModules = []string{"serena", "cipher"}

// initOptions holds every flag of the setup run.
type initOptions struct {
	mcp     string
	inPlace bool

	serenaLanguage      string
	serenaReadOnly      bool
	serenaExcludedTools string
	serenaInitialPrompt string

	cipherOpenAIKey    string
	cipherAnthropicKey string
	cipherEmbedding    string
	cipherEmbeddingKey string
	cipherSystemPrompt string
}

func (o *initOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&o.mcp, "mcp", "", "comma-separated list of MCP modules to enable (serena,cipher)")
	flags.BoolVarP(&o.inPlace, "in-place", "n", false, "create configuration in the current directory")

	flags.StringVar(&o.serenaLanguage, "serena-language", "", "language for the code-analysis server (overrides the positional language)")
	flags.BoolVar(&o.serenaReadOnly, "serena-read-only", false, "configure Serena in read-only mode")
	flags.StringVar(&o.serenaExcludedTools, "serena-excluded-tools", "", "comma-separated Serena tools to disable")
	flags.StringVar(&o.serenaInitialPrompt, "serena-initial-prompt", "", "initial prompt for the Serena session")

	flags.StringVar(&o.cipherOpenAIKey, "cipher-openai-key", "", "OpenAI API key for the memory server")
	flags.StringVar(&o.cipherAnthropicKey, "cipher-anthropic-key", "", "Anthropic API key for the memory server")
	flags.StringVar(&o.cipherEmbedding, "cipher-embedding", "", "embedding provider (openai, voyage, gemini, qwen, aws, azure, lmstudio, ollama, disabled)")
	flags.StringVar(&o.cipherEmbeddingKey, "cipher-embedding-key", "", "API key for the embedding provider")
	flags.StringVar(&o.cipherSystemPrompt, "cipher-system-prompt", "", "system prompt for the memory agent")
}

// buildRequest turns parsed args and flags into the immutable run request.
func (o *initOptions) buildRequest(args []string, modules []string) models.ProjectRequest {
	language := ""
	if len(args) > 1 {
		language = args[1]
	}

	return models.ProjectRequest{
		Name:     args[0],
		Language: language,
		Modules:  modules,
		InPlace:  o.inPlace,
		Serena: models.SerenaOptions{
			Language:      o.serenaLanguage,
			ReadOnly:      o.serenaReadOnly,
			ExcludedTools: splitList(o.serenaExcludedTools),
			InitialPrompt: o.serenaInitialPrompt,
		},
		Cipher: models.CipherOptions{
			OpenAIKey:    o.cipherOpenAIKey,
			AnthropicKey: o.cipherAnthropicKey,
			Embedding:    o.cipherEmbedding,
			EmbeddingKey: o.cipherEmbeddingKey,
			SystemPrompt: o.cipherSystemPrompt,
		},
	}
}

func runInit(cmd *cobra.Command, args []string, fs filesystem.FileSystem, registry *module.Registry, confirm tui.Confirmer, opts *initOptions) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	modules, err := resolveModules(opts.mcp, registry)
	if err != nil {
		return err
	}

	req := opts.buildRequest(args, modules)

	reporter := setup.NewReporter(cmd.OutOrStdout())
	runner := setup.NewRunner(fs, registry, confirm, reporter)

	report, err := runner.Run(req)
	if err != nil {
		return err
	}

	switch report.Outcome() {
	case setup.OutcomeSuccess:
		return nil
	case setup.OutcomePartialFailure:
		return fmt.Errorf("completed with %d error(s)", len(report.Errors))
	default:
		return fmt.Errorf("no module could be configured")
	}
}

// resolveModules picks the module list: the --mcp flag wins; without it, a
// terminal gets the interactive picker, batch runs get the default pair.
func resolveModules(mcpFlag string, registry *module.Registry) ([]string, error) {
	if mcpFlag != "" {
		modules := splitList(mcpFlag)
		if len(modules) == 0 {
			return nil, fmt.Errorf("--mcp was given but names no modules")
		}
		return modules, nil
	}

	if !tui.IsTerminal() {
		return defaultModules, nil
	}

	choices := make([]tui.ModuleChoice, 0)
	for _, meta := range registry.List() {
		choices = append(choices, tui.ModuleChoice{
			Name:        meta.Name,
			Description: meta.Description,
		})
	}

	selected, err := tui.SelectModules(choices)
	if err != nil {
		return nil, err
	}
	return selected, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
