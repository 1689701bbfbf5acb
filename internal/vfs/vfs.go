// Package vfs provides path handles and a narrow filesystem capability used by
// the project service. A Path always belongs to exactly one FileSystem,
// identified by its scheme; callers pick the adapter (disk, memory, txtar,
// zip) explicitly and there is no process-wide default.
//
// Path names follow io/fs conventions: slash separated, unrooted, "." for the
// root. String renders a URI of the form "scheme:///a/b".
package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrInvalidPath reports a path handle that cannot be evaluated: wrong scheme,
// empty, or escaping the filesystem root.
var ErrInvalidPath = errors.New("invalid path")

// ErrReadOnly is returned when a write is attempted on a read-only filesystem.
var ErrReadOnly = errors.New("read-only filesystem")

// FileSystem is the capability the resolver needs from a backing store.
type FileSystem interface {
	fs.FS
	// Scheme names the store; it is part of every Path handed out for it.
	Scheme() string
}

// Writable is implemented by filesystems that can create directories and files.
type Writable interface {
	FileSystem
	MkdirAll(name string) error
	WriteFile(name string, data []byte) error
}

// Path is a location inside a FileSystem. The zero Path is invalid.
type Path struct {
	scheme string
	name   string
}

// NewPath cleans name and returns a handle for it. Leading slashes are
// accepted; ".." segments that would leave the root are rejected.
func NewPath(scheme, name string) (Path, error) {
	if scheme == "" {
		return Path{}, fmt.Errorf("%w: empty scheme", ErrInvalidPath)
	}
	clean, err := Clean(name)
	if err != nil {
		return Path{}, err
	}
	return Path{scheme: scheme, name: clean}, nil
}

// MustPath is like NewPath but panics on error. Intended for tests and literals.
func MustPath(scheme, name string) Path {
	p, err := NewPath(scheme, name)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseURI parses the String form of a Path ("scheme:///a/b").
func ParseURI(s string) (Path, error) {
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok || scheme == "" {
		return Path{}, fmt.Errorf("%w: %q is not a path URI", ErrInvalidPath, s)
	}
	return NewPath(scheme, rest)
}

// Clean normalizes name into io/fs form. Backslashes are treated as
// separators and "." segments are dropped.
func Clean(name string) (string, error) {
	s := strings.ReplaceAll(name, `\`, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: %q escapes the root", ErrInvalidPath, name)
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, part)
		}
	}
	if len(stack) == 0 {
		return ".", nil
	}
	return strings.Join(stack, "/"), nil
}

// Root returns the root path of fsys.
func Root(fsys FileSystem) Path {
	return Path{scheme: fsys.Scheme(), name: "."}
}

func (p Path) Scheme() string { return p.scheme }

// Name returns the io/fs name of p ("." for the root).
func (p Path) Name() string { return p.name }

func (p Path) IsZero() bool { return p.scheme == "" && p.name == "" }

func (p Path) IsRoot() bool { return p.name == "." }

func (p Path) String() string {
	if p.IsZero() {
		return ""
	}
	if p.IsRoot() {
		return p.scheme + ":///"
	}
	return p.scheme + ":///" + p.name
}

// Base returns the last element of p, or "" for the root.
func (p Path) Base() string {
	if p.IsRoot() {
		return ""
	}
	if i := strings.LastIndexByte(p.name, '/'); i >= 0 {
		return p.name[i+1:]
	}
	return p.name
}

// Parent returns the directory containing p. The parent of the root is the root.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return p
	}
	i := strings.LastIndexByte(p.name, '/')
	if i < 0 {
		return Path{scheme: p.scheme, name: "."}
	}
	return Path{scheme: p.scheme, name: p.name[:i]}
}

// Join appends slash separated elements to p. Elements that would climb
// above the root are clamped at the root.
func (p Path) Join(elem ...string) Path {
	name := p.name
	for _, e := range elem {
		if e == "" {
			continue
		}
		name = name + "/" + e
	}
	clean, err := Clean(name)
	if err != nil {
		return Path{scheme: p.scheme, name: "."}
	}
	return Path{scheme: p.scheme, name: clean}
}

// Rel returns the slash separated path of p relative to base, and whether p
// is base or lies beneath it. Rel of base itself is "".
func (p Path) Rel(base Path) (string, bool) {
	if p.scheme != base.scheme {
		return "", false
	}
	if base.IsRoot() {
		if p.IsRoot() {
			return "", true
		}
		return p.name, true
	}
	if p.name == base.name {
		return "", true
	}
	if strings.HasPrefix(p.name, base.name+"/") {
		return p.name[len(base.name)+1:], true
	}
	return "", false
}

// Within reports whether p is base or a descendant of it.
func (p Path) Within(base Path) bool {
	_, ok := p.Rel(base)
	return ok
}

func check(fsys FileSystem, p Path) error {
	if p.IsZero() {
		return fmt.Errorf("%w: zero path", ErrInvalidPath)
	}
	if p.scheme != fsys.Scheme() {
		return fmt.Errorf("%w: %s does not belong to %s://", ErrInvalidPath, p, fsys.Scheme())
	}
	return nil
}

// Stat returns file info for p in fsys.
func Stat(fsys FileSystem, p Path) (fs.FileInfo, error) {
	if err := check(fsys, p); err != nil {
		return nil, err
	}
	return fs.Stat(fsys, p.name)
}

// ReadFile reads the file at p.
func ReadFile(fsys FileSystem, p Path) ([]byte, error) {
	if err := check(fsys, p); err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p.name)
}

// ReadDir lists the directory at p, sorted by name.
func ReadDir(fsys FileSystem, p Path) ([]fs.DirEntry, error) {
	if err := check(fsys, p); err != nil {
		return nil, err
	}
	return fs.ReadDir(fsys, p.name)
}

// IsFile reports whether p names an existing regular file.
func IsFile(fsys FileSystem, p Path) bool {
	fi, err := Stat(fsys, p)
	return err == nil && fi.Mode().IsRegular()
}

// IsDir reports whether p names an existing directory.
func IsDir(fsys FileSystem, p Path) bool {
	fi, err := Stat(fsys, p)
	return err == nil && fi.IsDir()
}

// MkdirAll creates p and any missing parents when fsys is Writable.
func MkdirAll(fsys FileSystem, p Path) error {
	if err := check(fsys, p); err != nil {
		return err
	}
	w, ok := fsys.(Writable)
	if !ok {
		return fmt.Errorf("mkdir %s: %w", p, ErrReadOnly)
	}
	return w.MkdirAll(p.name)
}

// WriteFile writes data to p when fsys is Writable.
func WriteFile(fsys FileSystem, p Path, data []byte) error {
	if err := check(fsys, p); err != nil {
		return err
	}
	w, ok := fsys.(Writable)
	if !ok {
		return fmt.Errorf("write %s: %w", p, ErrReadOnly)
	}
	return w.WriteFile(p.name, data)
}

// MarshalText encodes p in its URI form.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes the URI form produced by MarshalText.
func (p *Path) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = Path{}
		return nil
	}
	q, err := ParseURI(string(b))
	if err != nil {
		return err
	}
	*p = q
	return nil
}
