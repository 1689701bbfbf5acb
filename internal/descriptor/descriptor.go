// Package descriptor detects the build descriptor of a project directory
// (Maven, Gradle, Go) and extracts a small summary of it.
//
// Detection is by presence: a directory holding an enabled descriptor file is
// a project root. Parsing is best-effort; a descriptor that cannot be parsed
// still marks the directory as a project and the summary falls back to
// directory-derived defaults.
package descriptor

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"project-resolver/internal/textutil"
	"project-resolver/internal/vfs"
)

// Build names a build system.
type Build string

const (
	Maven  Build = "maven"
	Gradle Build = "gradle"
	Go     Build = "go"
)

// DefaultBuilds lists every supported build in detection priority order.
var DefaultBuilds = []Build{Maven, Gradle, Go}

// ParseBuild maps a configuration string to a Build.
func ParseBuild(s string) (Build, error) {
	switch b := Build(strings.ToLower(strings.TrimSpace(s))); b {
	case Maven, Gradle, Go:
		return b, nil
	}
	return "", fmt.Errorf("unknown build %q", s)
}

// FileNames returns the descriptor file names recognized for b.
func FileNames(b Build) []string {
	switch b {
	case Maven:
		return []string{"pom.xml"}
	case Gradle:
		return []string{"build.gradle", "build.gradle.kts"}
	case Go:
		return []string{"go.mod"}
	}
	return nil
}

// IsDescriptorName reports whether base is a descriptor file name of one of builds.
func IsDescriptorName(base string, builds []Build) bool {
	for _, b := range builds {
		for _, n := range FileNames(b) {
			if n == base {
				return true
			}
		}
	}
	return false
}

// Info summarizes a detected descriptor.
type Info struct {
	Build   Build    `json:"build"`
	Path    vfs.Path `json:"-"`
	Group   string   `json:"group,omitempty"`
	Module  string   `json:"module"`
	Version string   `json:"version,omitempty"`
	JDK     string   `json:"jdk,omitempty"`
	// ParseError is set when the descriptor exists but could not be read
	// or parsed; the remaining fields then hold fallbacks.
	ParseError string `json:"parseError,omitempty"`
}

// Detect checks dir for the descriptors of builds, in order. The first
// descriptor present wins. ok is false when dir holds none.
func Detect(fsys vfs.FileSystem, dir vfs.Path, builds []Build) (inf Info, ok bool) {
	for _, b := range builds {
		for _, n := range FileNames(b) {
			p := dir.Join(n)
			if !vfs.IsFile(fsys, p) {
				continue
			}
			return parse(fsys, dir, p, b), true
		}
	}
	return Info{}, false
}

func parse(fsys vfs.FileSystem, dir, p vfs.Path, b Build) Info {
	inf := Info{Build: b, Path: p, Module: fallbackName(dir)}
	data, err := vfs.ReadFile(fsys, p)
	if err != nil {
		inf.ParseError = err.Error()
		return inf
	}
	switch b {
	case Maven:
		err = parseMaven(data, &inf)
	case Gradle:
		parseGradle(fsys, dir, data, &inf)
	case Go:
		err = parseGoMod(p.Name(), data, &inf)
	}
	if err != nil {
		inf.ParseError = err.Error()
	}
	return inf
}

func fallbackName(dir vfs.Path) string {
	if dir.IsRoot() {
		return "root"
	}
	return dir.Base()
}

// ------------------------------ Maven ----------------------------------------

type pomXML struct {
	XMLName    xml.Name  `xml:"project"`
	GroupID    string    `xml:"groupId"`
	ArtifactID string    `xml:"artifactId"`
	Version    string    `xml:"version"`
	Parent     pomParent `xml:"parent"`
	Props      pomProps  `xml:"properties"`
}

type pomParent struct {
	GroupID string `xml:"groupId"`
	Version string `xml:"version"`
}

type pomProps struct {
	Source  string `xml:"maven.compiler.source"`
	Target  string `xml:"maven.compiler.target"`
	Release string `xml:"maven.compiler.release"`
	JavaVer string `xml:"java.version"`
}

func parseMaven(data []byte, inf *Info) error {
	var p pomXML
	if err := xml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse pom: %w", err)
	}
	inf.Group = firstNonEmpty(p.GroupID, p.Parent.GroupID)
	inf.Version = firstNonEmpty(p.Version, p.Parent.Version)
	inf.JDK = normalizeJDK(firstNonEmpty(p.Props.Release, p.Props.Target, p.Props.Source, p.Props.JavaVer))
	if a := strings.TrimSpace(p.ArtifactID); a != "" {
		inf.Module = a
	}
	return nil
}

// ------------------------------ Gradle ---------------------------------------

var (
	reGradleCompatQuoted = regexp.MustCompile(`(?m)^\s*(?:sourceCompatibility|targetCompatibility)\s*=\s*["']?(\d{1,2}(?:\.\d+)?)["']?`)
	reGradleCompatEnum   = regexp.MustCompile(`(?m)^\s*(?:sourceCompatibility|targetCompatibility)\s*=\s*JavaVersion\.VERSION_(\d{1,2})`)
	reGradleRootName     = regexp.MustCompile(`(?m)^\s*rootProject\.name\s*=\s*["']([^"']+)["']`)
	reGradleGroup        = regexp.MustCompile(`(?m)^\s*group\s*=\s*["']([^"']+)["']`)
	reGradleVersion      = regexp.MustCompile(`(?m)^\s*version\s*=\s*["']([^"']+)["']`)
)

func parseGradle(fsys vfs.FileSystem, dir vfs.Path, data []byte, inf *Info) {
	text := string(textutil.NormalizeUTF8LF(data))
	if m := reGradleCompatQuoted.FindStringSubmatch(text); m != nil {
		inf.JDK = normalizeJDK(m[1])
	} else if m := reGradleCompatEnum.FindStringSubmatch(text); m != nil {
		inf.JDK = normalizeJDK(m[1])
	}
	if m := reGradleGroup.FindStringSubmatch(text); m != nil {
		inf.Group = m[1]
	}
	if m := reGradleVersion.FindStringSubmatch(text); m != nil {
		inf.Version = m[1]
	}
	if inf.JDK == "" {
		if b, err := vfs.ReadFile(fsys, dir.Join("gradle.properties")); err == nil {
			inf.JDK = scanGradleProperties(string(textutil.NormalizeUTF8LF(b)))
		}
	}
	for _, n := range []string{"settings.gradle", "settings.gradle.kts"} {
		b, err := vfs.ReadFile(fsys, dir.Join(n))
		if err != nil {
			continue
		}
		if m := reGradleRootName.FindStringSubmatch(string(b)); m != nil {
			inf.Module = m[1]
			return
		}
	}
}

func scanGradleProperties(text string) string {
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		key, val, ok := strings.Cut(ln, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "java.version", "jdk":
			if v := normalizeJDK(strings.TrimSpace(val)); v != "" {
				return v
			}
		}
	}
	return ""
}

// ------------------------------ Go ------------------------------------------

func parseGoMod(name string, data []byte, inf *Info) error {
	f, err := modfile.ParseLax(name, data, nil)
	if err != nil {
		return err
	}
	if f.Module == nil {
		return fmt.Errorf("%s: no module directive", name)
	}
	mp := f.Module.Mod.Path
	if err := module.CheckImportPath(mp); err != nil {
		return err
	}
	inf.Module = mp
	return nil
}

// ---------------------------- helpers ---------------------------------------

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

// normalizeJDK coerces "21", "1.8", "17.0.1" into "21", "8", "17".
func normalizeJDK(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "1.")
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			break
		}
		out.WriteByte(s[i])
	}
	return out.String()
}
