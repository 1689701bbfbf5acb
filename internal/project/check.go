package project

import (
	"fmt"
	"sort"
	"strings"

	"project-resolver/internal/index"
	"project-resolver/internal/vfs"
	"project-resolver/internal/walkwalk"
)

// Mismatch is a source file whose package clause disagrees with the
// package implied by its directory.
type Mismatch struct {
	Path     vfs.Path `json:"path"`
	Declared string   `json:"declared"`
	Expected string   `json:"expected"`
	Line     int      `json:"line,omitempty"`
	// Kind and Type name the primary top-level type, when the file has one.
	Kind string `json:"kind,omitempty"`
	Type string `json:"type,omitempty"`
}

func (m Mismatch) String() string { return m.Format(m.Path.String()) }

// Format renders m naming the file as path.
func (m Mismatch) Format(path string) string {
	declared := m.Declared
	if declared == "" {
		declared = DefaultCaption
	}
	expected := m.Expected
	if expected == "" {
		expected = DefaultCaption
	}
	subject := "declares"
	if m.Type != "" {
		subject = m.Kind + " " + m.Type + " declares"
	}
	return fmt.Sprintf("%s:%d: %s package %s, directory implies %s", path, m.Line, subject, declared, expected)
}

// CheckDeclarations scans the Java and Kotlin sources under the source
// roots of proj and reports every file declared in the wrong package.
func (s *Service) CheckDeclarations(proj *Project) ([]Mismatch, error) {
	if proj.Layout.Style != JavaStyle {
		return nil, nil
	}
	opt, err := s.walkOptions(proj)
	if err != nil {
		return nil, err
	}
	opt.Files = true
	opt.Exts = []string{".java", ".kt"}

	var out []Mismatch
	for _, r := range proj.Layout.Roots {
		root := proj.Root.Join(r.Dir)
		if !r.Kind.HoldsSources() || !vfs.IsDir(s.fsys, root) {
			continue
		}
		files, err := walkwalk.Walk(s.fsys, root, pruneInner(proj, r, opt))
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", root, err)
		}
		for _, f := range files {
			dirRel := parentRel(f.RelPath)
			if !proj.Layout.validRel(dirRel) {
				continue
			}
			data, err := vfs.ReadFile(s.fsys, f.Path)
			if err != nil {
				s.log.Warn("skipping unreadable source", "path", f.Path.String(), "err", err)
				continue
			}
			decl := index.Scan(index.LangByExt(f.Ext), data)
			expected := strings.ReplaceAll(dirRel, "/", ".")
			if decl.Package != expected {
				out = append(out, Mismatch{
					Path:     f.Path,
					Declared: decl.Package,
					Expected: expected,
					Line:     decl.Line,
					Kind:     decl.Kind,
					Type:     decl.Type,
				})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path.Name() < out[j].Path.Name() })
	return out, nil
}
