package vfs

import (
	"io/fs"
	"strings"
	"sync"
	"testing/fstest"
)

// MemFS is an in-memory, writable FileSystem. It is safe for concurrent use.
// Parent directories of files exist implicitly.
type MemFS struct {
	mu     sync.RWMutex
	files  fstest.MapFS
	scheme string
}

// NewMem returns an empty in-memory filesystem with the "mem" scheme.
func NewMem() *MemFS { return NewMemScheme("mem") }

// NewMemScheme is like NewMem with a caller chosen scheme.
func NewMemScheme(scheme string) *MemFS {
	return &MemFS{files: fstest.MapFS{}, scheme: scheme}
}

func (m *MemFS) Scheme() string { return m.scheme }

func (m *MemFS) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Open(name)
}

func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Stat(name)
}

func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadDir(name)
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadFile(name)
}

func (m *MemFS) MkdirAll(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkParents("mkdir", name, true); err != nil {
		return err
	}
	m.files[name] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
	return nil
}

func (m *MemFS) WriteFile(name string, data []byte) error {
	if !fs.ValidPath(name) || name == "." {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkParents("write", name, false); err != nil {
		return err
	}
	m.files[name] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: 0o644}
	return nil
}

// RemoveAll removes name and everything below it. A missing name is not
// an error.
func (m *MemFS) RemoveAll(name string) error {
	if !fs.ValidPath(name) || name == "." {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := name + "/"
	for k := range m.files {
		if k == name || strings.HasPrefix(k, prefix) {
			delete(m.files, k)
		}
	}
	return nil
}

// checkParents rejects writes that would place an entry beneath a file, or
// (for files) replace an explicit directory. Directories may be re-created.
func (m *MemFS) checkParents(op, name string, dir bool) error {
	for i := 0; i < len(name); i++ {
		if name[i] != '/' {
			continue
		}
		if f, ok := m.files[name[:i]]; ok && !f.Mode.IsDir() {
			return &fs.PathError{Op: op, Path: name, Err: fs.ErrExist}
		}
	}
	if f, ok := m.files[name]; ok {
		if f.Mode.IsDir() != dir {
			return &fs.PathError{Op: op, Path: name, Err: fs.ErrExist}
		}
	}
	if !dir {
		prefix := name + "/"
		for k := range m.files {
			if strings.HasPrefix(k, prefix) {
				return &fs.PathError{Op: op, Path: name, Err: fs.ErrExist}
			}
		}
	}
	return nil
}
