// Package main provides the project-resolver CLI. It locates the build
// project enclosing a path and resolves the Java-style (or Go import path)
// package a path belongs to.
//
// Commands:
//   - resolve     : project-resolver resolve <path>...
//   - project     : project-resolver project <path>
//   - packages    : project-resolver packages <dir> [--diff] [--no-save] [--reset]
//   - check       : project-resolver check <dir>
//   - new-package : project-resolver new-package <dir> <name>
//   - config      : project-resolver config [--init]
//   - version     : project-resolver version
//
// Paths are native host paths, or archive entry names with --zip.
package main

import "os"

func main() {
	os.Exit(Main())
}
