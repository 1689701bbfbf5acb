package project

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/mod/module"
)

// ErrInvalidName is returned for package names that cannot name a package
// in the project's layout.
var ErrInvalidName = errors.New("invalid package name")

// DefaultCaption is shown for the default (unnamed) package.
const DefaultCaption = "<default>"

var javaReserved = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		abstract assert boolean break byte case catch char class const continue
		default do double else enum extends final finally float for goto if
		implements import instanceof int interface long native new package
		private protected public return short static strictfp super switch
		synchronized this throw throws transient try void volatile while
		_ true false null`) {
		javaReserved[w] = struct{}{}
	}
}

// IsJavaIdentifier reports whether s is a legal Java identifier and not a
// reserved word or literal.
func IsJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, bad := javaReserved[s]; bad {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		default:
			return false
		}
	}
	return true
}

// validSegment reports whether one directory name can be part of a package
// path under layout l.
func (l Layout) validSegment(seg string) bool {
	if l.Style == GoStyle {
		if seg == "testdata" || seg == "vendor" {
			return false
		}
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "_") {
			return false
		}
		return module.CheckImportPath("x/"+seg) == nil
	}
	return IsJavaIdentifier(seg)
}

// validRel reports whether every segment of the slash separated rel is valid.
func (l Layout) validRel(rel string) bool {
	if rel == "" {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if !l.validSegment(seg) {
			return false
		}
	}
	return true
}

// relFromName converts a package name as typed by a user into a slash
// separated path below a source root.
func (l Layout) relFromName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	sep := "."
	if l.Style == GoStyle {
		sep = "/"
	}
	segs := strings.Split(name, sep)
	for _, seg := range segs {
		if !l.validSegment(seg) {
			return "", fmt.Errorf("%w: %q (segment %q)", ErrInvalidName, name, seg)
		}
	}
	return strings.Join(segs, "/"), nil
}
