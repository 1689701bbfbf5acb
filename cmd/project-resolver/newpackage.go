package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewPackageCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "new-package <dir> <name>",
		Short: "create a package below the package at dir",
		Long: `new-package creates the directories of package name, relative to the
package dir belongs to, under every source root of the project. name is
dotted for Maven and Gradle projects (rules.extra) and slash separated for
Go modules (internal/cache).`,
		Args: cobra.ExactArgs(2),
		RunE: mkRunE(c, runNewPackage),
	}
}

func runNewPackage(c *Command, args []string) error {
	w, err := c.open()
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.path(args[0])
	if err != nil {
		return err
	}
	parent, err := w.svc.ResolvePackage(p)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%s: no package", args[0])
	}
	pkg, err := w.svc.NewPackage(parent, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), pkg.Caption)
	return nil
}
