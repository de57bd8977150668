package module

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/render"
	"github.com/jakoblorz/mcp-init/internal/validate"
)

//go:embed docs/cipher.md
var cipherDoc []byte

const cipherConfigPath = "memAgent/cipher.yml"

// CipherModule configures the persistent-memory server.
type CipherModule struct {
	doc moduleDoc
}

// NewCipherModule parses the embedded module doc and returns the module.
func NewCipherModule() (Module, error) {
	doc, err := parseModuleDoc(cipherDoc)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return &CipherModule{doc: doc}, nil
}

func (m *CipherModule) Metadata() Metadata { return m.doc.meta }

// ValidateRequirements needs at least one LLM API key of valid shape, and a
// known embedding provider when one was chosen.
func (m *CipherModule) ValidateRequirements(req models.ProjectRequest) error {
	opts := req.Cipher

	if opts.OpenAIKey == "" && opts.AnthropicKey == "" {
		return fmt.Errorf("cipher requires an OpenAI or Anthropic API key (--cipher-openai-key / --cipher-anthropic-key)")
	}
	if opts.OpenAIKey != "" && !validate.APIKey(opts.OpenAIKey, "openai") {
		return fmt.Errorf("invalid OpenAI API key format")
	}
	if opts.AnthropicKey != "" && !validate.APIKey(opts.AnthropicKey, "anthropic") {
		return fmt.Errorf("invalid Anthropic API key format")
	}

	if opts.Embedding != "" && opts.Embedding != "disabled" {
		spec, ok := render.LookupEmbedding(opts.Embedding)
		if !ok {
			return fmt.Errorf("unknown embedding provider %q (known: %v)", opts.Embedding, render.EmbeddingProviderNames())
		}
		if opts.EmbeddingKey != "" && !validate.APIKey(opts.EmbeddingKey, spec.Name) {
			return fmt.Errorf("invalid %s embedding API key format", spec.Name)
		}
	}

	return nil
}

func (m *CipherModule) GenerateFiles(projectPath string, req models.ProjectRequest) ([]models.RenderedFile, error) {
	content, err := render.CipherYAML(req)
	if err != nil {
		return nil, err
	}

	return []models.RenderedFile{
		{
			Path:    cipherConfigPath,
			Content: content,
			Format:  models.FormatYAML,
		},
	}, nil
}

func (m *CipherModule) ServerEntry(projectPath string, req models.ProjectRequest) (models.ServerEntry, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return models.ServerEntry{}, fmt.Errorf("failed to resolve project path: %w", err)
	}

	entry := models.ServerEntry{
		Type:    "stdio",
		Command: "cipher",
		Args: []string{
			"--mode", "mcp",
			"--agent", filepath.Join(absPath, cipherConfigPath),
		},
		Env: map[string]string{},
	}

	// Only the keys this run actually has go into the registry env block.
	if req.Cipher.OpenAIKey != "" {
		entry.Env["OPENAI_API_KEY"] = req.Cipher.OpenAIKey
	}
	if req.Cipher.AnthropicKey != "" {
		entry.Env["ANTHROPIC_API_KEY"] = req.Cipher.AnthropicKey
	}
	if spec, ok := m.embeddingSpec(req); ok && req.Cipher.EmbeddingKey != "" {
		entry.Env[spec.EnvVar] = req.Cipher.EmbeddingKey
	}

	return entry, nil
}

// EnvVars returns the module's .env slots: both LLM key slots always, plus
// the embedding key slot when a hosted embedding provider was chosen.
// Unset slots render blank.
func (m *CipherModule) EnvVars(req models.ProjectRequest) []render.EnvVar {
	vars := []render.EnvVar{
		{Key: "OPENAI_API_KEY", Value: req.Cipher.OpenAIKey},
		{Key: "ANTHROPIC_API_KEY", Value: req.Cipher.AnthropicKey},
	}

	if spec, ok := m.embeddingSpec(req); ok {
		vars = append(vars, render.EnvVar{Key: spec.EnvVar, Value: req.Cipher.EmbeddingKey})
	}

	return vars
}

func (m *CipherModule) embeddingSpec(req models.ProjectRequest) (render.EmbeddingSpec, bool) {
	if req.Cipher.Embedding == "" || req.Cipher.Embedding == "disabled" {
		return render.EmbeddingSpec{}, false
	}
	spec, ok := render.LookupEmbedding(req.Cipher.Embedding)
	if !ok || spec.Local {
		return render.EmbeddingSpec{}, false
	}
	return spec, true
}

func (m *CipherModule) SetupInstructions() string { return m.doc.body }

func (m *CipherModule) ConfigPath() string { return cipherConfigPath }
