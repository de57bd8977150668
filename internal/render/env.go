package render

import "strings"

// EnvVar is one slot in the generated .env file. An empty value renders as
// a blank slot the user fills in later.
type EnvVar struct {
	Key   string
	Value string
}

const envHeader = "# Environment variables for MCP servers\n# Generated by mcp-init\n"

// EnvFile renders the .env content: a header comment and one KEY=value line
// per slot, in the order given.
func EnvFile(vars []EnvVar) string {
	var b strings.Builder
	b.WriteString(envHeader)
	b.WriteString("\n")
	for _, v := range vars {
		b.WriteString(v.Key)
		b.WriteString("=")
		b.WriteString(v.Value)
		b.WriteString("\n")
	}
	return b.String()
}
