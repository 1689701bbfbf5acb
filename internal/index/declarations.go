// Package index scans Java and Kotlin sources for their package declaration
// and primary top-level type. It is regex based: good enough to compare a
// file's declared package with the package implied by its directory.
package index

import (
	"bytes"
	"regexp"
	"strings"

	"project-resolver/internal/textutil"
)

// Declaration is what a source file says about itself.
type Declaration struct {
	Package string // dotted package name, "" when the file has no package clause
	Kind    string // "class"|"interface"|"enum"|"record"|"object"|"file"
	Type    string // primary top-level type name, "" when Kind == "file"
	Line    int    // 1-based line of the package clause, 0 when absent
}

var (
	// package com.acme.foo;
	reJavaPkg  = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z_$][\w$]*(?:\s*\.\s*[A-Za-z_$][\w$]*)*)\s*;`)
	reJavaType = regexp.MustCompile(`(?m)^\s*(?:(?:public|abstract|final|sealed|non-sealed|strictfp)\s+)*(class|interface|enum|record|@interface)\s+([A-Za-z_$][\w$]*)`)

	// package foo.bar (no semicolon required)
	reKotlinPkg  = regexp.MustCompile("(?m)^\\s*package\\s+([A-Za-z_`][\\w`]*(?:\\.[A-Za-z_`][\\w`]*)*)")
	reKotlinType = regexp.MustCompile(`(?m)^\s*(?:(?:public|internal|private|data|sealed|abstract|open|enum|annotation)\s+)*(class|interface|object)\s+([A-Za-z_][\w]*)`)

	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`(?m)//.*$`)
)

// LangByExt maps a lowercase file extension to "java", "kt" or "".
func LangByExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".java":
		return "java"
	case ".kt", ".kts":
		return "kt"
	}
	return ""
}

// Scan extracts the declaration of a source file in lang.
func Scan(lang string, data []byte) Declaration {
	data = stripComments(textutil.NormalizeUTF8LF(data))
	var rePkg, reType *regexp.Regexp
	switch lang {
	case "java":
		rePkg, reType = reJavaPkg, reJavaType
	case "kt":
		rePkg, reType = reKotlinPkg, reKotlinType
	default:
		return Declaration{Kind: "file"}
	}

	d := Declaration{Kind: "file"}
	if m := rePkg.FindSubmatchIndex(data); m != nil {
		d.Package = compactName(string(data[m[2]:m[3]]))
		// the match may start on a preceding blank line
		kw := m[0] + bytes.Index(data[m[0]:m[1]], []byte("package"))
		d.Line = 1 + bytes.Count(data[:kw], []byte("\n"))
	}
	if m := reType.FindSubmatch(data); m != nil {
		d.Kind = strings.TrimPrefix(string(m[1]), "@")
		d.Type = string(m[2])
	}
	return d
}

func compactName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '`':
			return -1
		}
		return r
	}, s)
	return s
}

// stripComments blanks out comments while keeping line structure, so that
// commented-out package clauses are not picked up.
func stripComments(b []byte) []byte {
	b = reBlockComment.ReplaceAllFunc(b, func(c []byte) []byte {
		return bytes.Repeat([]byte("\n"), bytes.Count(c, []byte("\n")))
	})
	return reLineComment.ReplaceAll(b, nil)
}
