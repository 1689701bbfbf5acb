package project

import (
	"sort"
	"strings"

	"project-resolver/internal/descriptor"
)

// RootKind classifies a source root.
type RootKind string

const (
	MainJava      RootKind = "main-java"
	TestJava      RootKind = "test-java"
	MainResources RootKind = "main-resources"
	TestResources RootKind = "test-resources"
	MainKotlin    RootKind = "main-kotlin"
	TestKotlin    RootKind = "test-kotlin"
	GoSources     RootKind = "go"
)

// HoldsSources reports whether files under roots of kind k carry a package
// clause that must match their directory.
func (k RootKind) HoldsSources() bool {
	switch k {
	case MainJava, TestJava, MainKotlin, TestKotlin:
		return true
	}
	return false
}

// Valid reports whether k is a known root kind.
func (k RootKind) Valid() bool {
	switch k {
	case MainJava, TestJava, MainResources, TestResources, MainKotlin, TestKotlin, GoSources:
		return true
	}
	return false
}

// SourceRoot is a directory, relative to the project root, beneath which
// package paths are computed.
type SourceRoot struct {
	Kind RootKind `json:"kind" yaml:"kind"`
	Dir  string   `json:"dir" yaml:"dir"`
}

// Style selects how package names are spelled.
type Style int

const (
	// JavaStyle names packages with dots: org.kie.test.
	JavaStyle Style = iota
	// GoStyle names packages by import path: example.com/m/sub.
	GoStyle
)

// Layout is the set of source roots of one build kind.
type Layout struct {
	Build descriptor.Build `json:"build"`
	Style Style            `json:"-"`
	Roots []SourceRoot     `json:"roots"`
}

var mavenRoots = []SourceRoot{
	{MainJava, "src/main/java"},
	{MainResources, "src/main/resources"},
	{TestJava, "src/test/java"},
	{TestResources, "src/test/resources"},
}

// LayoutFor returns the conventional layout for b followed by extra roots.
// Extra roots whose directory duplicates an existing root are dropped.
func LayoutFor(b descriptor.Build, extra []SourceRoot) Layout {
	l := Layout{Build: b}
	switch b {
	case descriptor.Maven:
		l.Roots = append(l.Roots, mavenRoots...)
	case descriptor.Gradle:
		l.Roots = append(l.Roots, mavenRoots...)
		l.Roots = append(l.Roots,
			SourceRoot{MainKotlin, "src/main/kotlin"},
			SourceRoot{TestKotlin, "src/test/kotlin"},
		)
	case descriptor.Go:
		l.Style = GoStyle
		l.Roots = []SourceRoot{{GoSources, "."}}
	}
	seen := make(map[string]struct{}, len(l.Roots)+len(extra))
	for _, r := range l.Roots {
		seen[r.Dir] = struct{}{}
	}
	for _, r := range extra {
		if _, dup := seen[r.Dir]; dup {
			continue
		}
		seen[r.Dir] = struct{}{}
		l.Roots = append(l.Roots, r)
	}
	return l
}

// byDepth returns the roots ordered deepest first, so that the innermost
// root containing a path wins.
func (l Layout) byDepth() []SourceRoot {
	out := append([]SourceRoot(nil), l.Roots...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Dir) > len(out[j].Dir) })
	return out
}

// inner returns the roots strictly beneath r. A walk of r stops at them:
// packages under an inner root are named relative to it.
func (l Layout) inner(r SourceRoot) []string {
	var out []string
	for _, o := range l.Roots {
		if o.Dir == r.Dir {
			continue
		}
		if r.Dir == "." || strings.HasPrefix(o.Dir, r.Dir+"/") {
			out = append(out, o.Dir)
		}
	}
	return out
}
