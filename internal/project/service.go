package project

import (
	"fmt"
	"log/slog"

	"project-resolver/internal/descriptor"
	"project-resolver/internal/vfs"
)

// Options configures a Service. The zero value enables every build with its
// conventional layout.
type Options struct {
	// Builds lists the enabled builds in detection priority order.
	Builds []descriptor.Build
	// ExtraRoots adds source roots per build.
	ExtraRoots map[descriptor.Build][]SourceRoot
	// Exclude holds directory base names skipped when listing packages or
	// scanning sources. A trailing '*' matches by prefix.
	Exclude []string
	// UseGitignore honors the project root .gitignore when listing.
	UseGitignore bool
	Logger       *slog.Logger
}

// Service answers project and package queries against one filesystem.
// It keeps no state between calls and is safe for concurrent use.
type Service struct {
	fsys vfs.FileSystem
	opt  Options
	log  *slog.Logger
}

// New returns a Service over fsys.
func New(fsys vfs.FileSystem, opt Options) *Service {
	if len(opt.Builds) == 0 {
		opt.Builds = descriptor.DefaultBuilds
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{fsys: fsys, opt: opt, log: log.With("fs", fsys.Scheme())}
}

// FileSystem returns the filesystem the service reads.
func (s *Service) FileSystem() vfs.FileSystem { return s.fsys }

// ResolveProject returns the closest project enclosing p, or nil when p
// lies in no project.
func (s *Service) ResolveProject(p vfs.Path) (*Project, error) {
	dir, _, err := s.dirOf(p)
	if err != nil {
		return nil, fmt.Errorf("resolve project %s: %w", p, err)
	}
	return s.projectFrom(dir), nil
}

// ResolvePackage returns the package p belongs to. A directory resolves to
// the package it names; a file resolves to the package of its directory.
// It returns nil, nil when p is in no project, is a build descriptor, or
// lies outside every source root of its project. Errors are reserved for
// paths that cannot be evaluated.
func (s *Service) ResolvePackage(p vfs.Path) (*Package, error) {
	dir, isDir, err := s.dirOf(p)
	if err != nil {
		return nil, fmt.Errorf("resolve package %s: %w", p, err)
	}
	proj := s.projectFrom(dir)
	if proj == nil {
		s.log.Debug("no enclosing project", "path", p.String())
		return nil, nil
	}
	if !isDir && dir == proj.Root && descriptor.IsDescriptorName(p.Base(), s.opt.Builds) {
		s.log.Debug("build descriptor is not in a package", "path", p.String())
		return nil, nil
	}
	pkg := s.packageAt(proj, dir)
	if pkg == nil {
		s.log.Debug("outside source roots", "path", p.String(), "project", proj.Root.String())
		return nil, nil
	}
	s.log.Debug("resolved package", "path", p.String(), "package", pkg.Caption)
	return pkg, nil
}

// ResolveDefaultPackage returns the default package of proj.
func (s *Service) ResolveDefaultPackage(proj *Project) *Package {
	return proj.packageFor("")
}

// ResolveParentPackage returns the package enclosing pkg, or nil for the
// default package.
func (s *Service) ResolveParentPackage(pkg *Package) *Package {
	if pkg == nil || pkg.IsDefault() || pkg.Project == nil {
		return nil
	}
	return pkg.Project.packageFor(parentRel(pkg.RelPath))
}

// IsDescriptor reports whether p is the build descriptor of a project. When
// a directory holds several descriptors only the one that defines the
// project counts.
func (s *Service) IsDescriptor(p vfs.Path) bool {
	if !vfs.IsFile(s.fsys, p) || !descriptor.IsDescriptorName(p.Base(), s.opt.Builds) {
		return false
	}
	inf, ok := descriptor.Detect(s.fsys, p.Parent(), s.opt.Builds)
	return ok && inf.Path == p
}

// dirOf stats p and returns the directory queries should start from.
func (s *Service) dirOf(p vfs.Path) (dir vfs.Path, isDir bool, err error) {
	fi, err := vfs.Stat(s.fsys, p)
	if err != nil {
		return vfs.Path{}, false, err
	}
	if fi.IsDir() {
		return p, true, nil
	}
	return p.Parent(), false, nil
}

func (s *Service) projectFrom(dir vfs.Path) *Project {
	for d := dir; ; d = d.Parent() {
		if inf, ok := descriptor.Detect(s.fsys, d, s.opt.Builds); ok {
			if inf.ParseError != "" {
				s.log.Warn("unreadable build descriptor", "path", inf.Path.String(), "err", inf.ParseError)
			}
			return &Project{
				Root:       d,
				Descriptor: inf.Path,
				Info:       inf,
				Layout:     LayoutFor(inf.Build, s.opt.ExtraRoots[inf.Build]),
			}
		}
		if d.IsRoot() {
			return nil
		}
	}
}

// packageAt maps dir to a package of proj using the innermost source root
// containing it.
func (s *Service) packageAt(proj *Project, dir vfs.Path) *Package {
	for _, r := range proj.Layout.byDepth() {
		rel, ok := dir.Rel(proj.Root.Join(r.Dir))
		if !ok {
			continue
		}
		if !proj.Layout.validRel(rel) {
			return nil
		}
		return proj.packageFor(rel)
	}
	return nil
}
