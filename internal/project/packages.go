package project

import (
	"fmt"
	"sort"

	"project-resolver/internal/descriptor"
	"project-resolver/internal/vfs"
	"project-resolver/internal/walkwalk"
)

// ListPackages returns every package found under the source roots of proj:
// the default package first, then by name. Directories that are roots of
// nested projects are not descended into.
func (s *Service) ListPackages(proj *Project) ([]*Package, error) {
	opt, err := s.walkOptions(proj)
	if err != nil {
		return nil, err
	}
	opt.Dirs = true

	rels := map[string]struct{}{"": {}}
	for _, r := range proj.Layout.Roots {
		root := proj.Root.Join(r.Dir)
		if !vfs.IsDir(s.fsys, root) {
			continue
		}
		entries, err := walkwalk.Walk(s.fsys, root, pruneInner(proj, r, opt))
		if err != nil {
			return nil, fmt.Errorf("list packages of %s: %w", proj.Root, err)
		}
		for _, e := range entries {
			if proj.Layout.validRel(e.RelPath) {
				rels[e.RelPath] = struct{}{}
			}
		}
	}

	out := make([]*Package, 0, len(rels))
	for rel := range rels {
		out = append(out, proj.packageFor(rel))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault() != out[j].IsDefault() {
			return out[i].IsDefault()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// NewPackage creates the package name beneath parent. name is relative to
// parent: dotted for Java layouts, slash separated for Go. The package
// directory is created under every source root of the project.
func (s *Service) NewPackage(parent *Package, name string) (*Package, error) {
	if parent == nil || parent.Project == nil {
		return nil, fmt.Errorf("new package %q: no parent package", name)
	}
	proj := parent.Project
	rel, err := proj.Layout.relFromName(name)
	if err != nil {
		return nil, err
	}
	if parent.RelPath != "" {
		rel = parent.RelPath + "/" + rel
	}
	pkg := proj.packageFor(rel)
	for _, d := range pkg.Dirs {
		if err := vfs.MkdirAll(s.fsys, d.Path); err != nil {
			return nil, fmt.Errorf("new package %s: %w", pkg.Caption, err)
		}
	}
	s.log.Info("created package", "package", pkg.Caption, "project", proj.Root.String())
	return pkg, nil
}

// walkOptions assembles the filters shared by listing and scanning.
func (s *Service) walkOptions(proj *Project) (walkwalk.Options, error) {
	opt := walkwalk.Options{
		Exclude: s.opt.Exclude,
		Prune: func(p vfs.Path) bool {
			_, nested := descriptor.Detect(s.fsys, p, s.opt.Builds)
			return nested
		},
	}
	if s.opt.UseGitignore {
		pats, err := walkwalk.LoadGitignore(s.fsys, proj.Root.Join(".gitignore"))
		if err != nil {
			return opt, fmt.Errorf("read .gitignore of %s: %w", proj.Root, err)
		}
		opt.Ignore = pats
		opt.IgnoreBase = proj.Root
	}
	return opt, nil
}

// pruneInner extends opt so that a walk of r does not descend into the
// deeper roots of proj.
func pruneInner(proj *Project, r SourceRoot, opt walkwalk.Options) walkwalk.Options {
	dirs := proj.Layout.inner(r)
	if len(dirs) == 0 {
		return opt
	}
	stop := make(map[vfs.Path]struct{}, len(dirs))
	for _, d := range dirs {
		stop[proj.Root.Join(d)] = struct{}{}
	}
	base := opt.Prune
	opt.Prune = func(p vfs.Path) bool {
		if _, ok := stop[p]; ok {
			return true
		}
		return base != nil && base(p)
	}
	return opt
}
