package setup

import (
	"github.com/jakoblorz/mcp-init/internal/models"
)

// Outcome classifies a finished run.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomePartialFailure Outcome = "partial-failure"
	OutcomeFailure        Outcome = "failure"
)

// ModuleResult is the per-module slice of the run report.
type ModuleResult struct {
	Name  string
	Err   error
	Files []models.MergeDecision
}

// Report aggregates everything the run did, for the final summary and the
// exit code decision.
type Report struct {
	ProjectPath string
	Results     []ModuleResult
	Aggregate   []models.MergeDecision
	Errors      []error
	Warnings    []string
}

func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Report) addError(err error) {
	r.Errors = append(r.Errors, err)
}

// FilesWritten counts every decision that touched the disk.
func (r *Report) FilesWritten() int {
	count := 0
	for _, result := range r.Results {
		for _, d := range result.Files {
			if d.Action != models.ActionSkip {
				count++
			}
		}
	}
	for _, d := range r.Aggregate {
		if d.Action != models.ActionSkip {
			count++
		}
	}
	return count
}

// Succeeded returns the names of modules that completed without error.
func (r *Report) Succeeded() []string {
	var names []string
	for _, result := range r.Results {
		if result.Err == nil {
			names = append(names, result.Name)
		}
	}
	return names
}

// Outcome derives the terminal state: success when nothing failed, failure
// when no module made it through, partial failure otherwise.
func (r *Report) Outcome() Outcome {
	failed := 0
	for _, result := range r.Results {
		if result.Err != nil {
			failed++
		}
	}

	switch {
	case failed == 0 && len(r.Errors) == 0:
		return OutcomeSuccess
	case failed == len(r.Results):
		return OutcomeFailure
	default:
		return OutcomePartialFailure
	}
}
