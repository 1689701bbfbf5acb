// Package walkwalk provides a deterministic, filterable walker over a
// vfs.FileSystem. The project service uses it to enumerate package
// directories and source files beneath source roots.
package walkwalk

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"project-resolver/internal/vfs"
)

// Entry is a visited file or directory.
type Entry struct {
	Path    vfs.Path
	RelPath string // relative to the walk root, "" for the root itself
	IsDir   bool
	Ext     string // lowercase extension including dot, files only
	Size    int64
}

// Options filters a walk.
type Options struct {
	// Exclude holds base names to skip. A name ending in '*' matches by prefix.
	Exclude []string
	// Exts restricts files to these lowercase extensions. Empty means all.
	Exts []string
	// Ignore holds .gitignore patterns, matched relative to IgnoreBase.
	Ignore     []gitignore.Pattern
	IgnoreBase vfs.Path
	// Prune, when set, is asked about every directory below the root; true
	// skips the directory and its subtree.
	Prune func(vfs.Path) bool
	// Files and Dirs select what is returned. The root is never returned.
	Files, Dirs bool
}

// Walk visits root recursively and returns matching entries sorted by
// RelPath. Unreadable subtrees are skipped; an unreadable root is an error.
func Walk(fsys vfs.FileSystem, root vfs.Path, opt Options) ([]Entry, error) {
	fi, err := vfs.Stat(fsys, root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, &fs.PathError{Op: "walk", Path: root.String(), Err: errors.New("not a directory")}
	}
	ws := &walkState{fsys: fsys, root: root, opt: opt, exts: toSet(opt.Exts)}
	if len(opt.Ignore) > 0 {
		ws.ign = gitignore.NewMatcher(opt.Ignore)
	}
	if err := fs.WalkDir(fsys, root.Name(), ws.visit); err != nil {
		return nil, err
	}
	sort.Slice(ws.out, func(i, j int) bool { return ws.out[i].RelPath < ws.out[j].RelPath })
	return ws.out, nil
}

type walkState struct {
	fsys vfs.FileSystem
	root vfs.Path
	opt  Options
	exts map[string]struct{}
	ign  gitignore.Matcher
	out  []Entry
}

func (ws *walkState) visit(name string, d fs.DirEntry, err error) error {
	if err != nil {
		if d != nil && d.IsDir() && name != ws.root.Name() {
			return fs.SkipDir
		}
		if name == ws.root.Name() {
			return err
		}
		return nil
	}
	p, err := vfs.NewPath(ws.root.Scheme(), name)
	if err != nil {
		return nil
	}
	rel, _ := p.Rel(ws.root)
	if rel == "" {
		return nil
	}
	if ws.skip(p, d) {
		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if d.Type()&fs.ModeSymlink != 0 {
		return nil
	}
	if d.IsDir() {
		if ws.opt.Dirs {
			ws.out = append(ws.out, Entry{Path: p, RelPath: rel, IsDir: true})
		}
		return nil
	}
	if !ws.opt.Files {
		return nil
	}
	ext := strings.ToLower(extOf(d.Name()))
	if len(ws.exts) > 0 {
		if _, ok := ws.exts[ext]; !ok {
			return nil
		}
	}
	info, err := d.Info()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	ws.out = append(ws.out, Entry{Path: p, RelPath: rel, Ext: ext, Size: info.Size()})
	return nil
}

func (ws *walkState) skip(p vfs.Path, d fs.DirEntry) bool {
	if Excluded(d.Name(), ws.opt.Exclude) {
		return true
	}
	if d.IsDir() && ws.opt.Prune != nil && ws.opt.Prune(p) {
		return true
	}
	if ws.ign != nil {
		if rel, ok := p.Rel(ws.opt.IgnoreBase); ok && rel != "" {
			return ws.ign.Match(strings.Split(rel, "/"), d.IsDir())
		}
	}
	return false
}

// Excluded reports whether base matches one of the exclude entries.
func Excluded(base string, exclude []string) bool {
	for _, x := range exclude {
		if x == "" {
			continue
		}
		if strings.HasSuffix(x, "*") {
			if strings.HasPrefix(base, strings.TrimSuffix(x, "*")) {
				return true
			}
			continue
		}
		if base == x {
			return true
		}
	}
	return false
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, v := range list {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}

// ---------------- .gitignore support ----------------

// LoadGitignore reads and parses the .gitignore at p. A missing file
// yields no patterns and no error.
func LoadGitignore(fsys vfs.FileSystem, p vfs.Path) ([]gitignore.Pattern, error) {
	data, err := vfs.ReadFile(fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseGitignore(data), nil
}

// ParseGitignore parses .gitignore text with git's matching rules. Blank
// lines and '#' comments are dropped.
func ParseGitignore(data []byte) []gitignore.Pattern {
	var res []gitignore.Pattern
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := strings.TrimRight(s.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, gitignore.ParsePattern(line, nil))
	}
	return res
}
