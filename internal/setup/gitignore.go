package setup

import (
	"bytes"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/mcp-init/internal/filesystem"
)

// ignorePattern pairs a .gitignore pattern with a representative path used
// to probe whether an existing ignore file already covers it.
type ignorePattern struct {
	pattern string
	probe   string
}

// generatedPatterns cover the artifacts this tool writes that must not be
// committed.
var generatedPatterns = []ignorePattern{
	{pattern: ".env", probe: ".env"},
	{pattern: "*.bak.*", probe: "project.yml.bak.V1StGXR8"},
	{pattern: ".DS_Store", probe: ".DS_Store"},
}

// UpdateGitignore appends the generated-artifact patterns to the project's
// .gitignore, creating it when absent. Patterns the existing file already
// covers (literally or via a broader rule) are left out. Returns the
// patterns that were added.
func UpdateGitignore(fs filesystem.FileSystem, projectPath string) ([]string, error) {
	ignorePath := filepath.Join(projectPath, ".gitignore")

	var existing []byte
	var matcher gitignore.GitIgnore
	if fs.Exists(ignorePath) {
		data, err := fs.ReadFile(ignorePath)
		if err != nil {
			return nil, &IOError{Path: ignorePath, Err: err}
		}
		existing = data
		matcher = gitignore.New(bytes.NewReader(data), projectPath, nil)
	}

	existingLines := make(map[string]bool)
	for _, line := range strings.Split(string(existing), "\n") {
		existingLines[strings.TrimSpace(line)] = true
	}

	var added []string
	for _, p := range generatedPatterns {
		if existingLines[p.pattern] {
			continue
		}
		if matcher != nil {
			if match := matcher.Match(filepath.Join(projectPath, p.probe)); match != nil && match.Ignore() {
				continue
			}
		}
		added = append(added, p.pattern)
	}

	if len(added) == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	out.Write(existing)
	if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
		out.WriteByte('\n')
	}
	for _, pattern := range added {
		out.WriteString(pattern)
		out.WriteByte('\n')
	}

	if err := fs.WriteFile(ignorePath, out.Bytes(), 0644); err != nil {
		return nil, &IOError{Path: ignorePath, Err: err}
	}

	return added, nil
}
