package project

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-quicktest/qt"

	"project-resolver/internal/vfs"
)

// fixtureSystems loads a txtar fixture from testdata and exposes it through
// every filesystem adapter, keyed by scheme.
func fixtureSystems(t *testing.T, name string) map[string]vfs.FileSystem {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	qt.Assert(t, qt.IsNil(err))
	mem, err := vfs.ParseTxtar(data)
	qt.Assert(t, qt.IsNil(err))

	var buf bytes.Buffer
	qt.Assert(t, qt.IsNil(vfs.WriteZip(&buf, mem)))
	z, err := vfs.NewZip(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	qt.Assert(t, qt.IsNil(err))

	dir := t.TempDir()
	materialize(t, mem, dir)
	disk, err := vfs.OS(dir)
	qt.Assert(t, qt.IsNil(err))

	return map[string]vfs.FileSystem{"mem": mem, "zip": z, "file": disk}
}

// forEachFS runs f as a subtest per adapter, in a stable order.
func forEachFS(t *testing.T, systems map[string]vfs.FileSystem, f func(t *testing.T, fsys vfs.FileSystem)) {
	names := make([]string, 0, len(systems))
	for n := range systems {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fsys := systems[n]
		t.Run(n, func(t *testing.T) { f(t, fsys) })
	}
}

func materialize(t *testing.T, src fs.FS, dir string) {
	t.Helper()
	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	qt.Assert(t, qt.IsNil(err))
}

func at(fsys vfs.FileSystem, name string) vfs.Path {
	return vfs.MustPath(fsys.Scheme(), name)
}
