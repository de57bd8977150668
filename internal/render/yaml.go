// Package render builds the textual content of every generated file.
// Renderers are pure: same request in, same bytes out. Missing optional
// parameters get documented defaults, they never fail a render.
package render

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/jakoblorz/mcp-init/internal/models"
)

// serenaProject is the schema of .serena/project.yml.
type serenaProject struct {
	ProjectName string `yaml:"project_name"`
	Language    string `yaml:"language"`
	// The code-analysis server reads the project's own .gitignore instead
	// of a hardcoded pattern list.
	IgnoreAllFilesInGitignore bool     `yaml:"ignore_all_files_in_gitignore"`
	ReadOnly                  bool     `yaml:"read_only"`
	ExcludedTools             []string `yaml:"excluded_tools"`
	InitialPrompt             string   `yaml:"initial_prompt"`
}

// SerenaProjectYAML renders the code-analysis project config. The request
// must already be normalized; the module-specific language override wins
// over the positional one.
func SerenaProjectYAML(req models.ProjectRequest) (string, error) {
	doc := serenaProject{
		ProjectName:               req.Name,
		Language:                  req.EffectiveSerenaLanguage(),
		IgnoreAllFilesInGitignore: true,
		ReadOnly:                  req.Serena.ReadOnly,
		ExcludedTools:             req.Serena.ExcludedTools,
		InitialPrompt:             req.Serena.InitialPrompt,
	}
	if doc.ExcludedTools == nil {
		doc.ExcludedTools = []string{}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render project.yml: %w", err)
	}
	return string(out), nil
}

type cipherLLM struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

type cipherEmbedding struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Type     string `yaml:"type,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"apiKey,omitempty"`
}

type cipherConfig struct {
	LLM          cipherLLM        `yaml:"llm"`
	SystemPrompt string           `yaml:"systemPrompt,omitempty"`
	Embedding    *cipherEmbedding `yaml:"embedding,omitempty"`
}

// CipherYAML renders the memory-agent config. The LLM provider follows key
// priority: anthropic wins over openai. The embedding block appears only
// when an embedding provider was explicitly chosen.
func CipherYAML(req models.ProjectRequest) (string, error) {
	doc := cipherConfig{
		SystemPrompt: req.Cipher.SystemPrompt,
	}

	if req.Cipher.AnthropicKey != "" {
		doc.LLM = cipherLLM{
			Provider: "anthropic",
			Model:    "claude-3-5-sonnet-20241022",
			APIKey:   "$ANTHROPIC_API_KEY",
		}
	} else {
		doc.LLM = cipherLLM{
			Provider: "openai",
			Model:    "gpt-4-turbo",
			APIKey:   "$OPENAI_API_KEY",
		}
	}

	switch req.Cipher.Embedding {
	case "":
		// no explicit choice, no block
	case "disabled":
		doc.Embedding = &cipherEmbedding{Disabled: true}
	default:
		spec, ok := LookupEmbedding(req.Cipher.Embedding)
		if !ok {
			return "", fmt.Errorf("unknown embedding provider: %s", req.Cipher.Embedding)
		}
		doc.Embedding = &cipherEmbedding{
			Type:   spec.Name,
			Model:  spec.Model,
			APIKey: spec.APIKeyRef(),
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render cipher.yml: %w", err)
	}
	return string(out), nil
}
