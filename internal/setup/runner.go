// Package setup orchestrates a full run: input validation, project
// directory resolution, module loading and generation, aggregate file
// merging, and the final report. Execution is one sequential pass; the only
// suspension points are the confirmation gates.
package setup

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/mcp-init/internal/filesystem"
	"github.com/jakoblorz/mcp-init/internal/merge"
	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/module"
	"github.com/jakoblorz/mcp-init/internal/render"
	"github.com/jakoblorz/mcp-init/internal/tui"
	"github.com/jakoblorz/mcp-init/internal/validate"
)

const (
	registryFileName     = ".mcp.json"
	envFileName          = ".env"
	instructionsFileName = "MCP_SETUP_INSTRUCTIONS.md"
)

// projectRootMarkers suggest the current directory is already a project
// root, making an accidental in-place run likely.
var projectRootMarkers = []string{
	"package.json", "requirements.txt", "Cargo.toml", "go.mod",
	"pom.xml", "build.gradle", "composer.json", ".git",
}

// mcpMarkers indicate a directory was configured by a previous run.
var mcpMarkers = []string{registryFileName, ".serena", "memAgent"}

// Runner drives one invocation end to end.
type Runner struct {
	fs       filesystem.FileSystem
	registry *module.Registry
	confirm  tui.Confirmer
	reporter *Reporter
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(fs filesystem.FileSystem, registry *module.Registry, confirm tui.Confirmer, reporter *Reporter) *Runner {
	return &Runner{
		fs:       fs,
		registry: registry,
		confirm:  confirm,
		reporter: reporter,
	}
}

// Run executes the pipeline. The returned error is non-nil only for fatal
// conditions that prevented any output (bad input, unresolvable target
// directory, declined gates); per-module and per-file failures land in the
// report instead.
func (r *Runner) Run(req models.ProjectRequest) (*Report, error) {
	if !validate.ProjectName(req.Name) {
		return nil, &InputError{Reason: fmt.Sprintf("project name %q must start alphanumeric, use only letters, digits, dots, hyphens or underscores, and stay under 101 characters", req.Name)}
	}
	if len(req.Modules) == 0 {
		return nil, &InputError{Reason: "no modules requested"}
	}

	report := &Report{}

	if req.Language != "" && !validate.Language(req.Language) {
		report.addWarning(fmt.Sprintf("unsupported language %q, falling back to %s", req.Language, models.DefaultLanguage))
	}
	req = req.Normalize()

	projectPath, err := r.resolveProjectDir(req, report)
	if err != nil {
		return nil, err
	}
	report.ProjectPath = projectPath

	if !r.fs.Exists(projectPath) {
		if err := r.fs.MkdirAll(projectPath, 0755); err != nil {
			return nil, &IOError{Path: projectPath, Err: err}
		}
		r.reporter.Info("created project directory %s", projectPath)
	}

	r.registry.Reset()
	engine := merge.NewEngine(r.fs, r.confirm)

	serverEntries := make(map[string]models.ServerEntry)
	var envVars []render.EnvVar
	var sections []render.ModuleSection

	for _, name := range req.Modules {
		result := r.runModule(name, projectPath, req, engine, serverEntries, &envVars, &sections)
		report.Results = append(report.Results, result)
		if result.Err != nil {
			report.addError(result.Err)
			r.reporter.Error("%v", result.Err)
		}
	}

	if len(report.Succeeded()) > 0 {
		r.writeAggregates(report, req, projectPath, engine, serverEntries, envVars, sections)
	}

	r.reporter.Summary(report)
	return report, nil
}

// runModule executes one module's validate and generate steps. Failures are
// recorded, not propagated, so sibling modules still run.
func (r *Runner) runModule(
	name, projectPath string,
	req models.ProjectRequest,
	engine *merge.Engine,
	serverEntries map[string]models.ServerEntry,
	envVars *[]render.EnvVar,
	sections *[]render.ModuleSection,
) ModuleResult {
	result := ModuleResult{Name: name}

	if !validate.ModuleName(name) {
		result.Err = &ModuleError{Module: name, Err: fmt.Errorf("malformed module name")}
		return result
	}

	mod, err := r.registry.Load(name)
	if err != nil {
		result.Err = &ModuleError{Module: name, Err: err}
		return result
	}

	if err := mod.ValidateRequirements(req); err != nil {
		result.Err = &ModuleError{Module: name, Err: err}
		return result
	}

	r.reporter.Info("configuring %s", name)

	files, err := mod.GenerateFiles(projectPath, req)
	if err != nil {
		result.Err = &ModuleError{Module: name, Err: err}
		return result
	}

	for _, file := range files {
		decision, err := engine.MergeOrWrite(projectPath, file)
		if err != nil {
			result.Err = &ModuleError{Module: name, Err: &IOError{Path: file.Path, Err: err}}
			return result
		}
		result.Files = append(result.Files, decision)
	}

	entry, err := mod.ServerEntry(projectPath, req)
	if err != nil {
		result.Err = &ModuleError{Module: name, Err: err}
		return result
	}
	serverEntries[name] = entry

	*envVars = appendEnvVars(*envVars, mod.EnvVars(req))

	meta := mod.Metadata()
	*sections = append(*sections, render.ModuleSection{
		Name:        meta.Name,
		Version:     meta.Version,
		Description: meta.Description,
		ConfigPath:  mod.ConfigPath(),
		Body:        mod.SetupInstructions(),
	})

	return result
}

// writeAggregates merges the shared files: the server registry, the .env
// slots, the setup document and the .gitignore patterns. Each failure is an
// IOError in the report; none aborts the others.
func (r *Runner) writeAggregates(
	report *Report,
	req models.ProjectRequest,
	projectPath string,
	engine *merge.Engine,
	serverEntries map[string]models.ServerEntry,
	envVars []render.EnvVar,
	sections []render.ModuleSection,
) {
	writeRendered := func(file models.RenderedFile) {
		decision, err := engine.MergeOrWrite(projectPath, file)
		if err != nil {
			report.addError(&IOError{Path: file.Path, Err: err})
			r.reporter.Error("failed to write %s: %v", file.Path, err)
			return
		}
		report.Aggregate = append(report.Aggregate, decision)
	}

	registryContent, err := render.RegistryJSON(req.Modules, serverEntries)
	if err != nil {
		report.addError(&IOError{Path: registryFileName, Err: err})
	} else {
		writeRendered(models.RenderedFile{Path: registryFileName, Content: registryContent, Format: models.FormatJSON})
	}

	writeRendered(models.RenderedFile{Path: envFileName, Content: render.EnvFile(envVars), Format: models.FormatEnv})

	instructions, err := render.Instructions(render.InstructionsData{
		ProjectName: req.Name,
		Modules:     sections,
	})
	if err != nil {
		report.addError(&IOError{Path: instructionsFileName, Err: err})
	} else {
		writeRendered(models.RenderedFile{Path: instructionsFileName, Content: instructions, Format: models.FormatMarkdown})
	}

	added, err := UpdateGitignore(r.fs, projectPath)
	if err != nil {
		report.addError(err)
		r.reporter.Error("failed to update .gitignore: %v", err)
	} else if len(added) > 0 {
		r.reporter.Info("added %d pattern(s) to .gitignore", len(added))
	}
}

// resolveProjectDir picks <cwd>/<name> or <cwd> for in-place mode and runs
// the confirmation gates: an in-place run over an existing project root and
// a target that already carries MCP configuration both require consent.
// Non-interactive runs proceed with a warning, never silently abort.
func (r *Runner) resolveProjectDir(req models.ProjectRequest, report *Report) (string, error) {
	cwd, err := r.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}

	if req.InPlace {
		if marker := r.findMarker(cwd, projectRootMarkers); marker != "" {
			msg := fmt.Sprintf("Current directory contains %s and looks like an existing project. Configure MCP servers here anyway?", marker)
			if !r.confirm.Confirm(msg, true) {
				return "", &InputError{Reason: "in-place setup declined"}
			}
			report.addWarning(fmt.Sprintf("in-place setup over existing project (%s present)", marker))
		}
		if err := r.confirmExistingConfig(cwd, report); err != nil {
			return "", err
		}
		return cwd, nil
	}

	if !validate.FilePath(req.Name) {
		return "", &InputError{Reason: fmt.Sprintf("project name %q is not a safe path", req.Name)}
	}

	projectPath := filepath.Join(cwd, req.Name)
	if r.fs.Exists(projectPath) {
		if err := r.confirmExistingConfig(projectPath, report); err != nil {
			return "", err
		}
	}

	return projectPath, nil
}

// confirmExistingConfig gates a run whose target already carries MCP
// configuration from a previous run, whatever mode resolved the target.
func (r *Runner) confirmExistingConfig(projectPath string, report *Report) error {
	marker := r.findMarker(projectPath, mcpMarkers)
	if marker == "" {
		return nil
	}

	msg := fmt.Sprintf("%s already contains MCP configuration (%s). Continue and merge?", projectPath, marker)
	if !r.confirm.Confirm(msg, true) {
		return &InputError{Reason: "setup over existing configuration declined"}
	}
	report.addWarning("target directory already contains MCP configuration, merging")
	return nil
}

func (r *Runner) findMarker(dir string, markers []string) string {
	for _, marker := range markers {
		if r.fs.Exists(filepath.Join(dir, marker)) {
			return marker
		}
	}
	return ""
}

// appendEnvVars accumulates slots in first-seen order. A later non-empty
// value fills a slot an earlier module left blank; it never overwrites a
// value already set.
func appendEnvVars(acc []render.EnvVar, vars []render.EnvVar) []render.EnvVar {
	index := make(map[string]int, len(acc))
	for i, v := range acc {
		index[v.Key] = i
	}

	for _, v := range vars {
		if i, ok := index[v.Key]; ok {
			if acc[i].Value == "" && v.Value != "" {
				acc[i].Value = v.Value
			}
			continue
		}
		index[v.Key] = len(acc)
		acc = append(acc, v)
	}
	return acc
}
