// Package cache stores package listing snapshots between runs so the CLI
// can report what changed in a project.
//
// Conventions:
//   - The cache root defaults to "tmp/.presolve" unless overridden by the caller.
//   - A per-project cache lives at: <baseTmp>/<pathKey>/
//   - The snapshot is stored at:    <baseTmp>/<pathKey>/packages.json
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"project-resolver/internal/project"
	"project-resolver/internal/vfs"
)

const (
	defaultCacheRoot = "tmp/.presolve"
	snapshotFileName = "packages.json"
)

// PathKey returns a short, stable identifier for a project root.
// We use sha256(root) and keep the first 12 hex chars.
func PathKey(root string) string {
	sum := sha256.Sum256([]byte(root))
	return hex.EncodeToString(sum[:])[:12]
}

// CacheDir resolves the cache directory for the given project root.
// If baseTmp is empty, it falls back to the default "tmp/.presolve".
func CacheDir(baseTmp string, root vfs.Path) string {
	dir := baseTmp
	if dir == "" {
		dir = defaultCacheRoot
	}
	return filepath.Join(dir, PathKey(root.String()))
}

// Take builds a snapshot of pkgs, which must all belong to proj.
func Take(fsys vfs.FileSystem, proj *project.Project, pkgs []*project.Package, now time.Time) (*Snapshot, error) {
	s := &Snapshot{
		Project:       proj.Root.String(),
		Module:        proj.Name(),
		Build:         string(proj.Info.Build),
		Created:       now.UTC().Format(time.RFC3339),
		FormatVersion: FormatVersion,
		Packages:      make([]SnapPackage, 0, len(pkgs)),
	}
	for _, pkg := range pkgs {
		sp, err := hashPackage(fsys, pkg)
		if err != nil {
			return nil, err
		}
		s.Packages = append(s.Packages, sp)
	}
	sortPackages(s.Packages)
	return s, nil
}

// hashPackage digests the regular files directly inside every directory of
// pkg. Missing directories contribute nothing.
func hashPackage(fsys vfs.FileSystem, pkg *project.Package) (SnapPackage, error) {
	h := sha256.New()
	sp := SnapPackage{Name: pkg.Caption}
	for _, d := range pkg.Dirs {
		ents, err := vfs.ReadDir(fsys, d.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return sp, fmt.Errorf("snapshot %s: %w", pkg.Caption, err)
		}
		sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })
		for _, e := range ents {
			if !e.Type().IsRegular() {
				continue
			}
			data, err := vfs.ReadFile(fsys, d.Path.Join(e.Name()))
			if err != nil {
				return sp, fmt.Errorf("snapshot %s: %w", pkg.Caption, err)
			}
			sum := sha256.Sum256(data)
			fmt.Fprintf(h, "%s/%s\x00%x\n", d.Kind, e.Name(), sum)
			sp.Files++
		}
	}
	sp.Hash = hex.EncodeToString(h.Sum(nil))
	return sp, nil
}

// Listing renders the snapshot one package per line, the form fed to the
// unified differ.
func (s *Snapshot) Listing() []byte {
	if s == nil {
		return nil
	}
	var b strings.Builder
	for _, p := range s.Packages {
		fmt.Fprintf(&b, "%s\t%d files\n", p.Name, p.Files)
	}
	return []byte(b.String())
}

// Load reads the snapshot from <dir>/packages.json.
// If the file does not exist, it returns (nil, nil) so callers can treat it
// as "no previous snapshot" without branching on errors.
func Load(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, snapshotFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot in %s: %w", dir, err)
	}
	return &s, nil
}

// Save writes the snapshot atomically to <dir>/packages.json.
// The write goes into a temporary file within the same directory, then is
// renamed so readers never observe a partially-written file.
func Save(dir string, s *Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tmp-"+snapshotFileName+"-")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, snapshotFileName))
}

// Clear removes the entire cache directory for the project.
// Safe to call even if the directory does not exist.
func Clear(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
