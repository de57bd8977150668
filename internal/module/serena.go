package module

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/render"
	"github.com/jakoblorz/mcp-init/internal/validate"
)

//go:embed docs/serena.md
var serenaDoc []byte

const serenaConfigPath = ".serena/project.yml"

// SerenaModule configures the semantic code-analysis server.
type SerenaModule struct {
	doc moduleDoc
}

// NewSerenaModule parses the embedded module doc and returns the module.
func NewSerenaModule() (Module, error) {
	doc, err := parseModuleDoc(serenaDoc)
	if err != nil {
		return nil, fmt.Errorf("serena: %w", err)
	}
	return &SerenaModule{doc: doc}, nil
}

func (m *SerenaModule) Metadata() Metadata { return m.doc.meta }

func (m *SerenaModule) ValidateRequirements(req models.ProjectRequest) error {
	if !validate.ProjectName(req.Name) {
		return fmt.Errorf("invalid project name: %s", req.Name)
	}
	return nil
}

func (m *SerenaModule) GenerateFiles(projectPath string, req models.ProjectRequest) ([]models.RenderedFile, error) {
	content, err := render.SerenaProjectYAML(req)
	if err != nil {
		return nil, err
	}

	return []models.RenderedFile{
		{
			Path:    serenaConfigPath,
			Content: content,
			Format:  models.FormatYAML,
		},
	}, nil
}

func (m *SerenaModule) ServerEntry(projectPath string, req models.ProjectRequest) (models.ServerEntry, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return models.ServerEntry{}, fmt.Errorf("failed to resolve project path: %w", err)
	}

	return models.ServerEntry{
		Type:    "stdio",
		Command: "uvx",
		Args: []string{
			"--from", "git+https://github.com/oraios/serena",
			"serena-mcp-server",
			"--context", "ide-assistant",
			"--project", absPath,
		},
		Env: map[string]string{},
	}, nil
}

// EnvVars is empty: the code-analysis server needs no secrets.
func (m *SerenaModule) EnvVars(req models.ProjectRequest) []render.EnvVar {
	return nil
}

func (m *SerenaModule) SetupInstructions() string { return m.doc.body }

func (m *SerenaModule) ConfigPath() string { return serenaConfigPath }
