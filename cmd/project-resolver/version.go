package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print project-resolver version",
		Args:  cobra.NoArgs,
		RunE:  mkRunE(c, runVersion),
	}
}

const defaultVersion = "(devel)"

// version can be set by a builder using
// -ldflags='-X main.version=<version>'.
var version = defaultVersion

func runVersion(c *Command, args []string) error {
	v := version
	if bi, ok := debug.ReadBuildInfo(); ok && v == defaultVersion && bi.Main.Version != "" {
		v = bi.Main.Version
	}
	w := c.OutOrStdout()
	fmt.Fprintf(w, "project-resolver version %s\n\n", v)
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	return nil
}
