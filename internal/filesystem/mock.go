package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
	mfs.AddDir("/workspace")
	return mfs
}

// SetWorkingDir changes the directory reported by Getwd, creating it if needed
func (mfs *MockFileSystem) SetWorkingDir(path string) {
	cleanPath := filepath.Clean(path)
	mfs.AddDir(cleanPath)
	mfs.currentDir = cleanPath
}

// AddFile adds a file to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}

	// Ensure parent directories exist
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}

	// Ensure parent directories exist
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[mfs.abs(path)]
	if !exists {
		return nil, fs.ErrNotExist
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := mfs.abs(path)

	// Ensure parent directory exists
	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; !exists {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
	}
	return nil
}

func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	oldClean := mfs.abs(oldPath)
	file, exists := mfs.files[oldClean]
	if !exists {
		return fs.ErrNotExist
	}
	mfs.files[mfs.abs(newPath)] = file
	delete(mfs.files, oldClean)
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := mfs.abs(path)
	parts := strings.Split(cleanPath, string(filepath.Separator))

	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if current == "" {
			current = string(filepath.Separator) + part
		} else {
			current = filepath.Join(current, part)
		}

		if _, exists := mfs.files[current]; !exists {
			mfs.files[current] = &MockFile{
				Mode:    perm | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
	}
	return nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[mfs.abs(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// abs resolves relative paths against the mock working directory
func (mfs *MockFileSystem) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(mfs.currentDir, path)
	}
	return filepath.Clean(path)
}
