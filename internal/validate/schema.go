// Package validate checks configuration and cached artifacts before they are
// used. It is not a schema validator; it checks structural and semantic
// constraints that commonly catch bad input, and aggregates every issue
// found into a single error.
package validate

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"project-resolver/internal/cache"
	"project-resolver/internal/project"
	"project-resolver/internal/vfs"
)

// Roots validates extra source roots configured for one build:
//
//   - Kind must be a known root kind.
//   - Dir must be a clean, relative, slash separated path without "..".
//   - Dir must not repeat within the list.
func Roots(field string, roots []project.SourceRoot) error {
	var errs errlist
	seen := make(map[string]struct{}, len(roots))
	for i, r := range roots {
		prefix := fmt.Sprintf("%s[%d] (%s)", field, i, r.Dir)
		if !r.Kind.Valid() {
			errs.add("%s: unknown kind %q", prefix, r.Kind)
		}
		checkRelDir(&errs, prefix, r.Dir)
		if _, dup := seen[r.Dir]; dup {
			errs.add("%s: duplicate dir %q", prefix, r.Dir)
		}
		seen[r.Dir] = struct{}{}
	}
	return errs.err()
}

// Patterns validates exclude patterns: each is a single non-empty base
// name, and '*' may only appear as the final character.
func Patterns(field string, pats []string) error {
	var errs errlist
	for i, p := range pats {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		switch {
		case strings.TrimSpace(p) == "":
			errs.add("%s: pattern must be non-empty", prefix)
		case strings.ContainsAny(p, `/\`):
			errs.add("%s: pattern %q must be a base name", prefix, p)
		case strings.Contains(strings.TrimSuffix(p, "*"), "*"):
			errs.add("%s: pattern %q may only end with '*'", prefix, p)
		}
	}
	return errs.err()
}

// Snapshot validates a package listing snapshot read back from the cache:
//
//   - Project must be a scheme:///path URI.
//   - FormatVersion must be the current one.
//   - Every package has a non-empty name, a sha256 hash and files >= 0.
//   - Packages are sorted by name without duplicates.
func Snapshot(s *cache.Snapshot) error {
	if s == nil {
		return errors.New("snapshot is nil")
	}
	var errs errlist
	if _, err := vfs.ParseURI(s.Project); err != nil {
		errs.add("snapshot.project: %v", err)
	}
	if s.FormatVersion != cache.FormatVersion {
		errs.add("snapshot.formatVersion must be %q (got %q)", cache.FormatVersion, s.FormatVersion)
	}
	seen := make(map[string]struct{}, len(s.Packages))
	for i, p := range s.Packages {
		prefix := fmt.Sprintf("packages[%d] (%s)", i, p.Name)
		if strings.TrimSpace(p.Name) == "" {
			errs.add("%s: name must be non-empty", prefix)
		}
		if !reHex64.MatchString(p.Hash) {
			errs.add("%s: hash must be 64 lowercase hex chars (sha256), got %q", prefix, p.Hash)
		}
		if p.Files < 0 {
			errs.add("%s: files must be >= 0 (got %d)", prefix, p.Files)
		}
		if _, dup := seen[p.Name]; dup {
			errs.add("%s: duplicate package", prefix)
		}
		seen[p.Name] = struct{}{}
	}
	if !sort.SliceIsSorted(s.Packages, func(i, j int) bool { return s.Packages[i].Name < s.Packages[j].Name }) {
		errs.add("snapshot.packages should be sorted by name")
	}
	return errs.err()
}

// --- helpers -----------------------------------------------------------------

var reHex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func checkRelDir(errs *errlist, prefix, dir string) {
	switch {
	case dir == "":
		errs.add("%s: dir must be non-empty", prefix)
	case strings.Contains(dir, `\`):
		errs.add("%s: dir must use forward slashes ('/'), found backslash", prefix)
	case strings.HasPrefix(dir, "/"):
		errs.add("%s: dir must be relative, got %q", prefix, dir)
	case hasDotDot(dir):
		errs.add("%s: dir must not contain '..' segments", prefix)
	case path.Clean(dir) != dir:
		errs.add("%s: dir must be clean (want %q)", prefix, path.Clean(dir))
	}
}

func hasDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(e.msgs, "\n"))
}
