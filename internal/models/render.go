package models

// Format identifies how a rendered file is merged when a previous version
// exists on disk.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatEnv      Format = "env"
	FormatMarkdown Format = "markdown"
)

// RenderedFile is one file produced by a module's generate step. Path is
// relative to the project directory; the merge engine consumes it exactly
// once.
type RenderedFile struct {
	Path    string
	Content string
	Format  Format
}

// ServerEntry is the fragment a module contributes to the shared server
// registry file (.mcp.json). Field order matches what MCP clients expect.
type ServerEntry struct {
	Type    string            `json:"type"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// MergeAction describes how the merge engine handled a target file.
type MergeAction string

const (
	ActionCreate          MergeAction = "create"
	ActionOverwrite       MergeAction = "overwrite"
	ActionStructuralMerge MergeAction = "merge"
	ActionSkip            MergeAction = "skip"
)

// MergeDecision records the outcome for a single target path, for the final
// run report.
type MergeDecision struct {
	TargetPath string
	Action     MergeAction
	// BackupPath is set when an existing file was backed up before an
	// accepted overwrite.
	BackupPath string
}
