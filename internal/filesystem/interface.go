package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldPath, newPath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Exists(path string) bool
	Getwd() (string, error)
}
