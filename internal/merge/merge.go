// Package merge decides, per target file, between create, overwrite and
// structural merge, and performs the write. Structured formats (JSON, env)
// are merged so unrelated pre-existing keys survive a re-run; YAML module
// configs are created-once artifacts gated on explicit confirmation.
package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jakoblorz/mcp-init/internal/filesystem"
	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/tui"
	"github.com/jakoblorz/mcp-init/internal/validate"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Engine writes rendered files into the project directory.
type Engine struct {
	fs      filesystem.FileSystem
	confirm tui.Confirmer
}

// NewEngine creates an Engine writing through fs, asking confirm before
// clobbering hand-edited YAML configs.
func NewEngine(fs filesystem.FileSystem, confirm tui.Confirmer) *Engine {
	return &Engine{fs: fs, confirm: confirm}
}

// MergeOrWrite places one rendered file under projectPath. A write failure
// does not roll back files already written this run.
func (e *Engine) MergeOrWrite(projectPath string, file models.RenderedFile) (models.MergeDecision, error) {
	if !validate.FilePath(file.Path) {
		return models.MergeDecision{}, fmt.Errorf("unsafe target path: %s", file.Path)
	}

	target := filepath.Join(projectPath, file.Path)
	decision := models.MergeDecision{TargetPath: target}

	perm := fs.FileMode(0644)
	if file.Format == models.FormatEnv {
		// .env carries secrets.
		perm = 0600
	}

	if !e.fs.Exists(target) {
		if err := e.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return decision, fmt.Errorf("failed to create directory for %s: %w", target, err)
		}
		if err := e.fs.WriteFile(target, []byte(file.Content), perm); err != nil {
			return decision, fmt.Errorf("failed to write %s: %w", target, err)
		}
		decision.Action = models.ActionCreate
		return decision, nil
	}

	switch file.Format {
	case models.FormatJSON:
		existing, err := e.fs.ReadFile(target)
		if err != nil {
			return decision, fmt.Errorf("failed to read %s: %w", target, err)
		}
		merged, err := MergeJSON(existing, []byte(file.Content))
		if err != nil {
			return decision, fmt.Errorf("failed to merge %s: %w", target, err)
		}
		if err := e.fs.WriteFile(target, merged, 0644); err != nil {
			return decision, fmt.Errorf("failed to write %s: %w", target, err)
		}
		decision.Action = models.ActionStructuralMerge
		return decision, nil

	case models.FormatEnv:
		existing, err := e.fs.ReadFile(target)
		if err != nil {
			return decision, fmt.Errorf("failed to read %s: %w", target, err)
		}
		merged := MergeEnv(existing, []byte(file.Content))
		if err := e.fs.WriteFile(target, merged, perm); err != nil {
			return decision, fmt.Errorf("failed to write %s: %w", target, err)
		}
		decision.Action = models.ActionStructuralMerge
		return decision, nil

	case models.FormatYAML:
		message := fmt.Sprintf("%s already exists. Overwrite it? The current file will be kept as a backup.", target)
		if !e.confirm.Confirm(message, false) {
			decision.Action = models.ActionSkip
			return decision, nil
		}

		suffix, err := gonanoid.New(8)
		if err != nil {
			return decision, fmt.Errorf("failed to generate backup suffix: %w", err)
		}
		backup := target + ".bak." + suffix
		if err := e.fs.Rename(target, backup); err != nil {
			return decision, fmt.Errorf("failed to back up %s: %w", target, err)
		}
		if err := e.fs.WriteFile(target, []byte(file.Content), 0644); err != nil {
			return decision, fmt.Errorf("failed to write %s: %w", target, err)
		}
		decision.Action = models.ActionOverwrite
		decision.BackupPath = backup
		return decision, nil

	default:
		// Markdown and anything else is regenerated wholesale.
		if err := e.fs.WriteFile(target, []byte(file.Content), 0644); err != nil {
			return decision, fmt.Errorf("failed to write %s: %w", target, err)
		}
		decision.Action = models.ActionOverwrite
		return decision, nil
	}
}

// MergeJSON merges the fragment into the existing document two levels deep:
// top-level objects merge key-by-key, everything else is replaced. The
// primary path patches the existing bytes in place, preserving key order;
// when patching fails, an in-memory map merge produces a semantically
// equivalent result. A corrupted existing file is replaced by the fragment.
func MergeJSON(existing, fragment []byte) ([]byte, error) {
	if !gjson.ValidBytes(existing) {
		return prettyJSON(fragment)
	}

	merged, err := patchJSON(existing, fragment)
	if err != nil {
		merged, err = mapMergeJSON(existing, fragment)
		if err != nil {
			return nil, err
		}
	}

	return prettyJSON(merged)
}

func patchJSON(existing, fragment []byte) ([]byte, error) {
	var patchErr error

	gjson.ParseBytes(fragment).ForEach(func(key, value gjson.Result) bool {
		topPath := escapePath(key.String())

		if value.IsObject() && gjson.GetBytes(existing, topPath).IsObject() {
			value.ForEach(func(childKey, childValue gjson.Result) bool {
				childPath := topPath + "." + escapePath(childKey.String())
				existing, patchErr = sjson.SetRawBytes(existing, childPath, []byte(childValue.Raw))
				return patchErr == nil
			})
			return patchErr == nil
		}

		existing, patchErr = sjson.SetRawBytes(existing, topPath, []byte(value.Raw))
		return patchErr == nil
	})

	if patchErr != nil {
		return nil, patchErr
	}
	return existing, nil
}

func mapMergeJSON(existing, fragment []byte) ([]byte, error) {
	var base, update map[string]interface{}
	if err := json.Unmarshal(existing, &base); err != nil {
		return nil, fmt.Errorf("failed to parse existing JSON: %w", err)
	}
	if err := json.Unmarshal(fragment, &update); err != nil {
		return nil, fmt.Errorf("failed to parse fragment JSON: %w", err)
	}

	return json.Marshal(mergeTwoLevels(base, update))
}

// mergeTwoLevels mirrors patchJSON: top-level objects merge key-by-key,
// anything below the second level is replaced wholesale.
func mergeTwoLevels(base, update map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base)+len(update))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range update {
		if baseChild, ok := result[k].(map[string]interface{}); ok {
			if updateChild, ok := v.(map[string]interface{}); ok {
				merged := make(map[string]interface{}, len(baseChild)+len(updateChild))
				for ck, cv := range baseChild {
					merged[ck] = cv
				}
				for ck, cv := range updateChild {
					merged[ck] = cv
				}
				result[k] = merged
				continue
			}
		}
		result[k] = v
	}
	return result
}

func prettyJSON(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	if buf.Len() == 0 || buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// escapePath makes a literal key usable as a gjson/sjson path segment.
func escapePath(key string) string {
	var b bytes.Buffer
	for _, r := range key {
		if r == '.' || r == '*' || r == '?' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
