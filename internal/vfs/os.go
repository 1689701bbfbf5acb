package vfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// OSFS exposes a directory of the host filesystem. Paths handed out by it
// never leave that directory.
type OSFS struct {
	root string
	fsys fs.FS
}

// OS returns a disk-backed FileSystem rooted at dir.
func OS(dir string) (*OSFS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("vfs: %s is not a directory", abs)
	}
	return &OSFS{root: abs, fsys: os.DirFS(abs)}, nil
}

func (o *OSFS) Scheme() string { return "file" }

// Dir returns the host directory o is rooted at.
func (o *OSFS) Dir() string { return o.root }

func (o *OSFS) Open(name string) (fs.File, error) { return o.fsys.Open(name) }

func (o *OSFS) Stat(name string) (fs.FileInfo, error) { return fs.Stat(o.fsys, name) }

func (o *OSFS) ReadDir(name string) ([]fs.DirEntry, error) { return fs.ReadDir(o.fsys, name) }

func (o *OSFS) ReadFile(name string) ([]byte, error) { return fs.ReadFile(o.fsys, name) }

// Convert turns a host path into a handle. Relative paths are resolved
// against the working directory.
func (o *OSFS) Convert(native string) (Path, error) {
	abs, err := filepath.Abs(native)
	if err != nil {
		return Path{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	rel, err := filepath.Rel(o.root, abs)
	if err != nil {
		return Path{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return Path{}, fmt.Errorf("%w: %s is outside %s", ErrInvalidPath, native, o.root)
	}
	return NewPath(o.Scheme(), rel)
}

// Native returns the host path for p.
func (o *OSFS) Native(p Path) (string, error) {
	if err := check(o, p); err != nil {
		return "", err
	}
	if p.IsRoot() {
		return o.root, nil
	}
	return filepath.Join(o.root, filepath.FromSlash(p.name)), nil
}

func (o *OSFS) MkdirAll(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
	}
	return os.MkdirAll(filepath.Join(o.root, filepath.FromSlash(name)), 0o755)
}

// WriteFile writes through a temporary sibling and renames it into place so
// readers never observe a partial file.
func (o *OSFS) WriteFile(name string, data []byte) error {
	if !fs.ValidPath(name) || name == "." {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrInvalid}
	}
	full := filepath.Join(o.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(full), ".tmp-"+filepath.Base(full)+"-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, full)
}
