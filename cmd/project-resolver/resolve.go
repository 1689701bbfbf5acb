package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"project-resolver/internal/project"
)

func newResolveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "print the package each path belongs to",
		Long: `resolve prints, for every path, the package it belongs to or
"no package" when it belongs to none: outside any project, in a project
without a build descriptor, or outside the source roots of its project.`,
		Args: cobra.MinimumNArgs(1),
		RunE: mkRunE(c, runResolve),
	}
	cmd.Flags().Bool("json", false, "print package descriptors as JSON")
	return cmd
}

type resolved struct {
	Path    string           `json:"path"`
	Package *project.Package `json:"package"`
}

func runResolve(c *Command, args []string) error {
	w, err := c.open()
	if err != nil {
		return err
	}
	defer w.Close()

	asJSON, _ := c.Flags().GetBool("json")
	out := make([]resolved, 0, len(args))
	for _, arg := range args {
		p, err := w.path(arg)
		if err != nil {
			return err
		}
		pkg, err := w.svc.ResolvePackage(p)
		if err != nil {
			return err
		}
		out = append(out, resolved{Path: arg, Package: pkg})
	}
	if asJSON {
		return printJSON(c, out)
	}
	for _, r := range out {
		if r.Package == nil {
			fmt.Fprintf(c.OutOrStdout(), "%s: no package\n", r.Path)
			continue
		}
		fmt.Fprintf(c.OutOrStdout(), "%s: %s\n", r.Path, r.Package.Caption)
	}
	return nil
}
