package setup

import "fmt"

// InputError aborts the run before any file I/O happens.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ModuleError marks one module's validation or generation failure. Sibling
// modules keep running.
type ModuleError struct {
	Module string
	Err    error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("module %s: %v", e.Module, e.Err)
}

func (e *ModuleError) Unwrap() error { return e.Err }

// IOError marks a failed file write or merge. Files already written stay
// written; there is no cross-file rollback.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
