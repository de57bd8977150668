// Package module holds the pluggable server integrations. Each module wraps
// one external MCP server and exposes the fixed capability set the
// orchestrator drives: validate, generate files, contribute a server-registry
// entry and .env slots.
package module

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/render"
)

// Metadata describes a module. It is parsed from the YAML frontmatter of
// the module's embedded instructions document.
type Metadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
}

// Module is the capability set every server integration implements.
type Module interface {
	// Metadata returns the module's static description.
	Metadata() Metadata

	// ValidateRequirements checks module-specific preconditions against
	// the request. A failure skips this module, it never aborts siblings.
	ValidateRequirements(req models.ProjectRequest) error

	// GenerateFiles renders the module's own config files, with paths
	// relative to the project directory.
	GenerateFiles(projectPath string, req models.ProjectRequest) ([]models.RenderedFile, error)

	// ServerEntry returns the fragment merged into the shared server
	// registry file.
	ServerEntry(projectPath string, req models.ProjectRequest) (models.ServerEntry, error)

	// EnvVars returns the module's .env slots in display order. Slots with
	// empty values are written blank for the user to fill in.
	EnvVars(req models.ProjectRequest) []render.EnvVar

	// SetupInstructions returns the module's section of the setup
	// document, Markdown, without the heading.
	SetupInstructions() string

	// ConfigPath returns the module config file listed in the setup
	// document, empty if the module has none.
	ConfigPath() string
}

// moduleDoc is an embedded instructions document split into metadata and
// Markdown body.
type moduleDoc struct {
	meta Metadata
	body string
}

func parseModuleDoc(raw []byte) (moduleDoc, error) {
	var meta Metadata
	rest, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return moduleDoc{}, fmt.Errorf("failed to parse module doc frontmatter: %w", err)
	}
	if meta.Name == "" {
		return moduleDoc{}, fmt.Errorf("module doc is missing a name")
	}
	return moduleDoc{meta: meta, body: string(rest)}, nil
}
