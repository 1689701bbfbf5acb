// Package project implements the project service: it locates the build
// project enclosing a path and resolves the package a path belongs to.
//
// A directory is a project root when it holds an enabled build descriptor
// (pom.xml, build.gradle, go.mod). Packages exist only inside a project and
// only beneath one of its source roots; everything else resolves to no
// package, which is reported as a nil *Package and a nil error.
package project

import (
	"strings"

	"project-resolver/internal/descriptor"
	"project-resolver/internal/vfs"
)

// Project is a directory carrying a build descriptor.
type Project struct {
	Root       vfs.Path        `json:"root"`
	Descriptor vfs.Path        `json:"descriptor"`
	Info       descriptor.Info `json:"info"`
	Layout     Layout          `json:"layout"`
}

// Name returns the module name declared by the descriptor.
func (p *Project) Name() string { return p.Info.Module }

// PackageDir is the directory a package occupies under one source root.
// The directory need not exist.
type PackageDir struct {
	Kind RootKind `json:"kind"`
	Path vfs.Path `json:"path"`
}

// Package describes a package of a project.
type Package struct {
	Project         *Project     `json:"-"`
	ProjectRoot     vfs.Path     `json:"projectRoot"`
	Name            string       `json:"name"`
	Caption         string       `json:"caption"`
	RelativeCaption string       `json:"relativeCaption"`
	RelPath         string       `json:"relPath"`
	Dirs            []PackageDir `json:"dirs"`
}

// IsDefault reports whether p is the default (unnamed) package.
func (p *Package) IsDefault() bool { return p.RelPath == "" }

// Dir returns the package directory under the first root of kind k.
func (p *Package) Dir(k RootKind) (vfs.Path, bool) {
	for _, d := range p.Dirs {
		if d.Kind == k {
			return d.Path, true
		}
	}
	return vfs.Path{}, false
}

func (p *Package) MainSrc() vfs.Path       { d, _ := p.Dir(MainJava); return d }
func (p *Package) TestSrc() vfs.Path       { d, _ := p.Dir(TestJava); return d }
func (p *Package) MainResources() vfs.Path { d, _ := p.Dir(MainResources); return d }
func (p *Package) TestResources() vfs.Path { d, _ := p.Dir(TestResources); return d }

// packageFor builds the descriptor for the slash separated rel. rel must
// already be valid for the project's layout.
func (p *Project) packageFor(rel string) *Package {
	pkg := &Package{
		Project:     p,
		ProjectRoot: p.Root,
		RelPath:     rel,
	}
	for _, r := range p.Layout.Roots {
		pkg.Dirs = append(pkg.Dirs, PackageDir{Kind: r.Kind, Path: p.Root.Join(r.Dir, rel)})
	}

	switch p.Layout.Style {
	case GoStyle:
		pkg.Name = p.Info.Module
		if rel != "" {
			pkg.Name += "/" + rel
		}
		pkg.Caption = pkg.Name
		pkg.RelativeCaption = lastSegment(pkg.Name, "/")
	default:
		pkg.Name = strings.ReplaceAll(rel, "/", ".")
		pkg.Caption = pkg.Name
		pkg.RelativeCaption = lastSegment(pkg.Name, ".")
	}
	if rel == "" && pkg.Name == "" {
		pkg.Caption = DefaultCaption
		pkg.RelativeCaption = DefaultCaption
	}
	return pkg
}

func lastSegment(name, sep string) string {
	if i := strings.LastIndex(name, sep); i >= 0 {
		return name[i+len(sep):]
	}
	return name
}

func parentRel(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return ""
}
