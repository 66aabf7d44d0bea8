package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem provides an in-memory implementation of FileSystem for testing
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Optional errors for simulating failures
	StatError      error
	ReadFileError  error
	WriteFileError error
	RenameError    error
	RemoveError    error
	MkdirError     error

	// Writes counts successful WriteFile calls
	Writes int
}

type mockFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// mockFileInfo implements fs.FileInfo and fs.DirEntry
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi mockFileInfo) Name() string               { return fi.name }
func (fi mockFileInfo) Size() int64                { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode          { return fi.mode }
func (fi mockFileInfo) ModTime() time.Time         { return fi.modTime }
func (fi mockFileInfo) IsDir() bool                { return fi.mode.IsDir() }
func (fi mockFileInfo) Sys() any                   { return nil }
func (fi mockFileInfo) Type() fs.FileMode          { return fi.mode.Type() }
func (fi mockFileInfo) Info() (fs.FileInfo, error) { return fi, nil }

// NewMockFileSystem creates a new mock file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// Stat implements FileSystem.Stat
func (m *MockFileSystem) Stat(name string) (fs.FileInfo, error) {
	if m.StatError != nil {
		return nil, m.StatError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	if m.dirs[name] {
		return mockFileInfo{name: filepath.Base(name), mode: fs.ModeDir | 0755}, nil
	}
	file, exists := m.files[name]
	if !exists {
		return nil, os.ErrNotExist
	}

	return mockFileInfo{
		name:    filepath.Base(name),
		size:    int64(len(file.content)),
		mode:    file.mode,
		modTime: file.modTime,
	}, nil
}

// ReadFile implements FileSystem.ReadFile
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[filepath.Clean(name)]
	if !exists {
		return nil, os.ErrNotExist
	}

	// Return a copy to prevent external modifications
	content := make([]byte, len(file.content))
	copy(content, file.content)
	return content, nil
}

// WriteFile implements FileSystem.WriteFile
func (m *MockFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileError != nil {
		return m.WriteFileError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name = filepath.Clean(name)
	if dir := filepath.Dir(name); dir != "." && !m.dirs[dir] {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)

	m.files[name] = &mockFile{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	m.Writes++

	return nil
}

// Rename implements FileSystem.Rename
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameError != nil {
		return m.RenameError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	file, exists := m.files[oldpath]
	if !exists {
		return os.ErrNotExist
	}

	// Move file to new location (overwrites if exists, like os.Rename)
	m.files[newpath] = file
	delete(m.files, oldpath)

	return nil
}

// Remove implements FileSystem.Remove
func (m *MockFileSystem) Remove(name string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name = filepath.Clean(name)
	if _, exists := m.files[name]; !exists {
		return os.ErrNotExist
	}

	delete(m.files, name)
	return nil
}

// MkdirAll implements FileSystem.MkdirAll
func (m *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirError != nil {
		return m.MkdirError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	return nil
}

// ReadDir implements FileSystem.ReadDir
func (m *MockFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = filepath.Clean(name)
	if !m.dirs[name] {
		return nil, os.ErrNotExist
	}

	var entries []fs.DirEntry
	for path, file := range m.files {
		if filepath.Dir(path) != name {
			continue
		}
		entries = append(entries, mockFileInfo{
			name:    filepath.Base(path),
			size:    int64(len(file.content)),
			mode:    file.mode,
			modTime: file.modTime,
		})
	}
	for dir := range m.dirs {
		if filepath.Dir(dir) == name && dir != name {
			entries = append(entries, mockFileInfo{name: filepath.Base(dir), mode: fs.ModeDir | 0755})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// FileExists is a helper method for testing
func (m *MockFileSystem) FileExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.files[filepath.Clean(name)]
	return exists
}

// GetFileContent is a helper method for testing
func (m *MockFileSystem) GetFileContent(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, exists := m.files[filepath.Clean(name)]
	if !exists {
		return nil, false
	}

	content := make([]byte, len(file.content))
	copy(content, file.content)
	return content, true
}

// SetFileContent writes a file directly, creating parent directories.
func (m *MockFileSystem) SetFileContent(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = filepath.Clean(name)
	for p := filepath.Dir(name); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		m.dirs[p] = true
	}
	m.files[name] = &mockFile{content: append([]byte(nil), content...), mode: 0644, modTime: time.Now()}
}

// Paths returns every file path, sorted. Useful in assertions.
func (m *MockFileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasPrefix reports whether any file path starts with prefix.
func (m *MockFileSystem) HasPrefix(prefix string) bool {
	for _, p := range m.Paths() {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
