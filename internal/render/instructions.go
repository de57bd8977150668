package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ModuleSection is one configured module's contribution to the setup
// instructions document.
type ModuleSection struct {
	Name        string
	Version     string
	Description string
	ConfigPath  string
	Body        string
}

// InstructionsData feeds the setup-instructions template.
type InstructionsData struct {
	ProjectName string
	Modules     []ModuleSection
}

const instructionsTemplate = `# MCP Setup Instructions

This project has been configured with MCP (Model Context Protocol) servers.

## Configured Modules

{{- range .Modules }}

### {{ .Name | title }}
- Version: {{ .Version }}
- Description: {{ .Description }}
{{- end }}

## Configuration Files

- ` + "`.mcp.json`" + ` - MCP server configuration
- ` + "`.env`" + ` - Environment variables (keep secure)
{{- range .Modules }}
{{- if .ConfigPath }}
- ` + "`{{ .ConfigPath }}`" + ` - {{ .Name | title }} configuration
{{- end }}
{{- end }}

## Setup Steps

{{- range .Modules }}

### {{ .Name | title }}

{{ .Body | trim }}
{{- end }}

## Next Steps

1. Edit the ` + "`.env`" + ` file and add your actual API keys
2. Point your MCP client at ` + "`.mcp.json`" + ` (Claude Code picks it up automatically; for Cursor copy it to ` + "`.cursor/mcp.json`" + `)
3. Verify that all required dependencies are installed
4. Test each configured server

## Troubleshooting

- Ensure all dependencies are installed
- Verify API keys are correctly set
- Check that file paths in ` + "`.mcp.json`" + ` are absolute
- Review module-specific logs for errors
`

var instructionsTmpl = template.Must(
	template.New("instructions").Funcs(sprig.FuncMap()).Parse(instructionsTemplate),
)

// Instructions renders the MCP_SETUP_INSTRUCTIONS.md document: a fixed
// preamble, one section per selected module, and a fixed footer.
func Instructions(data InstructionsData) (string, error) {
	var buf bytes.Buffer
	if err := instructionsTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render setup instructions: %w", err)
	}
	return buf.String(), nil
}
