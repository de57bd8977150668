package setup

import (
	"fmt"
	"io"

	"github.com/jakoblorz/mcp-init/internal/models"
	"github.com/jakoblorz/mcp-init/internal/redact"
	"github.com/jakoblorz/mcp-init/internal/tui"
)

// Reporter writes styled status lines. Every line passes through the
// redactor so a secret that leaks into a message never reaches the
// terminal unmasked.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) line(prefix, format string, args ...interface{}) {
	msg := redact.Sanitize(fmt.Sprintf(format, args...))
	fmt.Fprintf(r.out, "%s %s\n", prefix, msg)
}

func (r *Reporter) Info(format string, args ...interface{}) {
	r.line(tui.SubtleStyle.Render("•"), format, args...)
}

func (r *Reporter) Success(format string, args ...interface{}) {
	r.line(tui.SuccessStyle.Render("✓"), format, args...)
}

func (r *Reporter) Warn(format string, args ...interface{}) {
	r.line(tui.WarnStyle.Render("⚠"), format, args...)
}

func (r *Reporter) Error(format string, args ...interface{}) {
	r.line(tui.ErrorStyle.Render("✗"), format, args...)
}

// Summary prints the terminal report: per-module status, warnings, and the
// file count.
func (r *Reporter) Summary(report *Report) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, tui.TitleStyle.Render("Setup Summary"))

	for _, result := range report.Results {
		if result.Err != nil {
			r.Error("%s: %v", result.Name, result.Err)
			continue
		}
		r.Success("%s configured", result.Name)
		for _, d := range result.Files {
			r.describeDecision(d)
		}
	}

	for _, d := range report.Aggregate {
		r.describeDecision(d)
	}

	for _, warning := range report.Warnings {
		r.Warn("%s", warning)
	}

	fmt.Fprintln(r.out)
	switch report.Outcome() {
	case OutcomeSuccess:
		r.Success("MCP configuration complete, %d file(s) written to %s", report.FilesWritten(), report.ProjectPath)
	case OutcomePartialFailure:
		r.Warn("completed with errors, %d file(s) written to %s", report.FilesWritten(), report.ProjectPath)
	default:
		r.Error("setup failed, no module was configured")
	}
}

func (r *Reporter) describeDecision(d models.MergeDecision) {
	switch d.Action {
	case models.ActionCreate:
		r.Info("created %s", d.TargetPath)
	case models.ActionOverwrite:
		if d.BackupPath != "" {
			r.Info("overwrote %s (backup at %s)", d.TargetPath, d.BackupPath)
		} else {
			r.Info("updated %s", d.TargetPath)
		}
	case models.ActionStructuralMerge:
		r.Info("merged %s", d.TargetPath)
	case models.ActionSkip:
		r.Warn("skipped %s (existing file kept)", d.TargetPath)
	}
}
